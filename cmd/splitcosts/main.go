// Package main is the entry point for the splitcosts CLI.
package main

import (
	"os"

	"github.com/mmynk/splitcosts/cmd/splitcosts/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
