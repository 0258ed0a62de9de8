package domain

import "fmt"

// Params are the values handed to the solver for one trial.
type Params struct {
	Scale int `json:"scale"`
	Count int `json:"count"`
	Seed  int `json:"seed"`
}

// Trial is one grid cell scheduled for execution.
type Trial struct {
	// Ordinal is the 1-based position in enumeration order.
	Ordinal int    `json:"ordinal"`
	Cell    Cell   `json:"cell"`
	Params  Params `json:"params"`
}

func (t Trial) String() string {
	return fmt.Sprintf("#%d (i=%d, j=%d) scale=%d count=%d seed=%d",
		t.Ordinal, t.Cell.I, t.Cell.J, t.Params.Scale, t.Params.Count, t.Params.Seed)
}

// Exit codes reported when the solver cannot be executed, following the
// POSIX shell convention.
const (
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// ExitStatus is what the driver learns about a finished solver process.
type ExitStatus struct {
	Code int `json:"code"`
}

// Success reports whether the process exited with code 0.
func (s ExitStatus) Success() bool {
	return s.Code == 0
}
