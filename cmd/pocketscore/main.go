// Package main provides the pocketscore entry point.
package main

import (
	"fmt"
	"os"

	"github.com/pocketscore/pocketscore/internal/cli"
	"github.com/pocketscore/pocketscore/internal/singleinstance"
)

func main() {
	// Single instance check (Windows: mutex, other: no-op). Two processes
	// racing the record store would silently lose writes.
	release, ok, err := singleinstance.AcquireLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "Another instance is already running")
		os.Exit(1)
	}
	defer release()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
