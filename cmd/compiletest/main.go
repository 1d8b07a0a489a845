// Package main is the entry point for the compiletest CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/compiletest/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
