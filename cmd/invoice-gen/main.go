// Package main is the entry point for the invoice-gen CLI.
package main

import (
	"os"

	"github.com/adamluckydo/invoice-generator/cmd/invoice-gen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
