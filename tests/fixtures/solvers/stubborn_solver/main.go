// Command stubborn_solver ignores SIGINT/SIGTERM and never exits on its own.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fmt.Fprintln(os.Stderr, "stubborn solver started")

	go func() {
		for s := range sigs {
			fmt.Fprintf(os.Stderr, "ignoring signal: %v\n", s)
		}
	}()

	for {
		time.Sleep(time.Second)
	}
}
