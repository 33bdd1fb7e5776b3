package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/cadence/cmd"
	"github.com/thenoetrevino/cadence/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Errors from commands were already printed; flag and argument
		// errors from cobra were not.
		var exitErr *cli.CodedError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitUsage)
		}
		os.Exit(cli.ExitCode(err))
	}
}
