package main

import (
	"fmt"
	"os"

	"github.com/chmouel/lazycommit/internal/completion"
	urfavecli "github.com/urfave/cli/v2"
)

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh|fish>",
		Action:    handleCompletion,
	}
}

// handleCompletion emits the completion script for the requested shell.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: lazycommit completion <bash|zsh|fish>")
	}
	script, err := completion.Script(c.Args().First())
	if err != nil {
		return err
	}
	_, _ = os.Stdout.WriteString(script)
	return nil
}
