/*
Package domain holds the value types of a benchmark sweep.

A Grid is the Cartesian product of an outer range (the solver's count
parameter) and an inner range (the exponent of its scale parameter). Every
cell becomes a Trial, and a CommandTemplate turns the trial's Params into the
Invocation that is handed to the solver:

	<solver> -t <2^j> -c <i> -s 42

Nothing in this package performs I/O.
*/
package domain
