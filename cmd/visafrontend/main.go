// Package main is the entry point for the visafrontend binary.
package main

import (
	"os"

	"github.com/Sairam-Chetpelly/visafrontend/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
