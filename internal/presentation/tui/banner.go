package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the gridsweep banner and a one-line run summary to w.
func PrintBanner(w io.Writer, solver string, trials int) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{"               _     _", "#818cf8"},
		{"    __ _ _ __ (_) __| |_____      _____  ___ _ __", "#a78bfa"},
		{"   / _` | '__|| |/ _` / __\\ \\ /\\ / / _ \\/ _ \\ '_ \\", "#c084fc"},
		{"  | (_| | |   | | (_| \\__ \\\\ V  V /  __/  __/ |_) |", "#e879f9"},
		{"   \\__, |_|   |_|\\__,_|___/ \\_/\\_/ \\___|\\___| .__/", "#f472b6"},
		{"   |___/                                    |_|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %d trials\n\n",
		termenv.String(solver).Bold(),
		trials,
	)
}
