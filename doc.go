/*
Package gridsweep drives a benchmark solver over a fixed two-dimensional
parameter grid.

For every i in 0..12 and j in 0..14, in that nesting order, the solver is run
once as

	<solver> -t 2^j -c i -s 42

and the driver waits for it to exit before starting the next trial. Exit codes
are logged and otherwise not acted upon, including the 127 reported for a
missing solver, so all 195 trials are always issued. Only cancellation or a
fault in starting processes at all stops the sweep early. The driver reads
none of the solver's output.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/gridsweep"
	)

	func main() {
		if err := gridsweep.RunSweep(context.Background(), "./parallel"); err != nil {
			log.Fatal(err)
		}
	}

For tests, swap the process invoker for the recording one:

	rec := memory.NewRecorder()
	err := sweep.New(rec).Run(ctx)
	// rec.Invocations() now holds all 195 command lines, in order.

The gridsweep command (cmd/gridsweep) adds config files, structured logging,
a Prometheus /metrics endpoint and an optional Redis lock around the same loop.
*/
package gridsweep
