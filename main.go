package main

import (
	"fmt"
	"os"

	"chronoscope/cli"
)

func main() {
	if err := cli.RunCLI(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
