package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/mctext/internal/cli"
)

// version is set at build time via -ldflags; defaults to dev.
var version = "dev"

func main() {
	if err := cli.NewCmdRoot(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mctext: %v\n", err)
		os.Exit(1)
	}
}
