// Package main is the entry point for the lazycommit application.
package main

import (
	"fmt"
	"os"

	"github.com/chmouel/lazycommit/internal/buildinfo"
	log "github.com/chmouel/lazycommit/internal/log"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		os.Exit(1)
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
}

func newApp() *urfavecli.App {
	// The default -v alias of --version is reassigned to --verbose.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:  "version",
		Usage: "print version information",
	}
	urfavecli.VersionPrinter = printVersion

	return &urfavecli.App{
		Name:                 "lazycommit",
		Usage:                "Classify pending changes, stage them, and draft numbered commit messages",
		Version:              version,
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			addCommand(),
			commitCommand(),
			generateCommand(),
			initCommand(),
			listStatusCommand(),
			pushCommand(),
			setEditorCommand(),
			statusCommand(),
			completionCommand(),
		},

		// Bare `lazycommit` prints the one-shot status listing.
		Action: runStatus,

		BashComplete: completeGlobalFlags,
	}
}

// printVersion prints version information.
func printVersion(_ *urfavecli.Context) {
	buildinfo.Enrich()
	fmt.Printf("lazycommit version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n",
		buildinfo.Version(), buildinfo.Commit(), buildinfo.Date(), buildinfo.BuiltBy())
}
