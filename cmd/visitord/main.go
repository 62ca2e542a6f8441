// Package main is the entry point for visitord.
// Its sole responsibility is handing control to the command tree.
package main

import (
	"fmt"
	"os"

	"github.com/gopinathan2007/office-visitor-flow/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
