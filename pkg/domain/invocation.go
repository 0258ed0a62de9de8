package domain

import (
	"strconv"
	"strings"
)

// Invocation is a single external process call: executable plus arguments.
type Invocation struct {
	Path string   `json:"path"`
	Args []string `json:"args"`
}

// String renders the invocation as a shell-like command line.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Path)
	parts = append(parts, inv.Args...)
	return strings.Join(parts, " ")
}

// CommandTemplate binds trial parameters to solver flags.
type CommandTemplate struct {
	Path      string
	ScaleFlag string
	CountFlag string
	SeedFlag  string
}

// NewCommandTemplate returns the standard "-t -c -s" template for a solver path.
func NewCommandTemplate(path string) CommandTemplate {
	if path == "" {
		path = DefaultSolverPath
	}
	return CommandTemplate{
		Path:      path,
		ScaleFlag: FlagScale,
		CountFlag: FlagCount,
		SeedFlag:  FlagSeed,
	}
}

// Build produces "<path> -t <scale> -c <count> -s <seed>".
func (t CommandTemplate) Build(p Params) Invocation {
	return Invocation{
		Path: t.Path,
		Args: []string{
			t.ScaleFlag, strconv.Itoa(p.Scale),
			t.CountFlag, strconv.Itoa(p.Count),
			t.SeedFlag, strconv.Itoa(p.Seed),
		},
	}
}
