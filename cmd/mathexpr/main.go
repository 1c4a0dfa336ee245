// Command mathexpr parses mathematical expressions and prints their syntax trees.
package main

import (
	"os"

	"github.com/npillmayer/mathexpr/cmd/mathexpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
