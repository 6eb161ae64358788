// Package main is the planarik command itself.
package main

import (
	"os"

	"go.viam.com/planarkin/cli"
	"go.viam.com/planarkin/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger := logging.NewLogger("planarik")
		logger.Error(err)
		//nolint:errcheck
		logger.Sync()
		os.Exit(1)
	}
}
