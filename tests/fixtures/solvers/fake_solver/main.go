// Command fake_solver stands in for the benchmark solver in tests.
//
// It accepts the solver's -t/-c/-s flags, appends "t c s" to the file named
// by FAKE_SOLVER_LOG, and exits with FAKE_SOLVER_EXIT. With FAKE_SOLVER_BLOCK
// set it waits for SIGINT/SIGTERM, cleans up briefly and exits 0.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

func main() {
	scale := flag.Int("t", -1, "scale")
	count := flag.Int("c", -1, "count")
	seed := flag.Int("s", -1, "seed")
	flag.Parse()

	if path := os.Getenv("FAKE_SOLVER_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(3)
		}
		fmt.Fprintf(f, "%d %d %d\n", *scale, *count, *seed)
		f.Close()
	}

	if os.Getenv("FAKE_SOLVER_BLOCK") != "" {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		fmt.Fprintln(os.Stderr, "fake solver blocking")
		<-sigs
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}

	code, _ := strconv.Atoi(os.Getenv("FAKE_SOLVER_EXIT"))
	os.Exit(code)
}
