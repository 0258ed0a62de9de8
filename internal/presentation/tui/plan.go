package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// PlanEntry is one row of a sweep plan.
type PlanEntry struct {
	Trial      domain.Trial
	Invocation domain.Invocation
}

// WritePlan writes one command line per trial, in execution order.
func WritePlan(w io.Writer, entries []PlanEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Invocation.String()); err != nil {
			return err
		}
	}
	return nil
}

// PlanMarkdown renders the plan as a markdown table.
func PlanMarkdown(solver string, entries []PlanEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sweep plan\n\nSolver `%s`, %d trials, executed top to bottom.\n\n", solver, len(entries))
	b.WriteString("| # | i | j | -t | -c | -s | command |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d | `%s` |\n",
			e.Trial.Ordinal, e.Trial.Cell.I, e.Trial.Cell.J,
			e.Trial.Params.Scale, e.Trial.Params.Count, e.Trial.Params.Seed,
			e.Invocation.String())
	}
	return b.String()
}
