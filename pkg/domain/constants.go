package domain

// Fixed sweep bounds. The grid is exhausted in full on every run.
const (
	// OuterMax is the last value of the outer (count) index, inclusive.
	OuterMax = 12
	// InnerMax is the last value of the inner (scale exponent) index, inclusive.
	InnerMax = 14
	// DefaultSeed is passed to every trial so solver randomness is reproducible.
	DefaultSeed = 42
)

// Solver flag names.
const (
	FlagScale = "-t"
	FlagCount = "-c"
	FlagSeed  = "-s"
)

// DefaultSolverPath is the solver the sweep runs when none is configured.
const DefaultSolverPath = "./parallel"
