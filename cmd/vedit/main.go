// Package main is the entry point for vedit.
package main

import (
	"fmt"
	"os"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd(runApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vedit:", err)
		os.Exit(1)
	}
}
