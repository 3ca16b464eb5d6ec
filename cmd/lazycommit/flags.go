package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose progress output",
		},
		&urfavecli.StringFlag{
			Name:    "directory",
			Aliases: []string{"C"},
			Usage:   "Run as if started in this directory",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
	}
}

// completeGlobalFlags lists command names for bare-invocation completion.
// The completion subcommand emits the richer shell-specific scripts.
func completeGlobalFlags(c *urfavecli.Context) {
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
	}
}
