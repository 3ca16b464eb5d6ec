package main

import (
	"fmt"
	"os"

	"github.com/chmouel/lazycommit/internal/app"
	"github.com/chmouel/lazycommit/internal/cli"
	urfavecli "github.com/urfave/cli/v2"
)

func addCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Stage changed files, honoring exclude patterns",
		ArgsUsage: "[pattern...]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show what would be staged without staging anything",
			},
		},
		Action: func(c *urfavecli.Context) error {
			_, gitSvc := setup(c)
			return cli.Add(c.Context, gitSvc, c.String("directory"),
				c.Args().Slice(), c.Bool("dry-run"), c.Bool("verbose"))
		},
	}
}

func commitCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "commit",
		Aliases:   []string{"c"},
		Usage:     "Commit using the generated message file",
		ArgsUsage: "[git commit args...]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "push",
				Usage: "Push after a successful commit",
			},
			&urfavecli.BoolFlag{
				Name:    "unsigned",
				Aliases: []string{"u"},
				Usage:   "Commit without GPG signing",
			},
			&urfavecli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show the commit plan without committing",
			},
		},
		Action: func(c *urfavecli.Context) error {
			_, gitSvc := setup(c)
			return cli.Commit(c.Context, gitSvc, c.String("directory"), c.Args().Slice(),
				c.Bool("push"), c.Bool("unsigned"), c.Bool("dry-run"), c.Bool("verbose"))
		},
	}
}

func generateCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Write the commit message scaffold and open the editor",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Commit type (chore, feat, fix, test); prompted when omitted",
			},
			&urfavecli.BoolFlag{
				Name:  "no-number",
				Usage: "Omit the commit number from the header",
			},
			&urfavecli.BoolFlag{
				Name:  "no-edit",
				Usage: "Write the scaffold without opening the editor",
			},
		},
		Action: func(c *urfavecli.Context) error {
			cfg, gitSvc := setup(c)
			return cli.Generate(c.Context, gitSvc, cfg, c.String("directory"),
				c.String("type"), c.Bool("no-number"), c.Bool("no-edit"), c.Bool("verbose"))
		},
	}
}

func initCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "init",
		Aliases:   []string{"i"},
		Usage:     "Create the default configuration file",
		ArgsUsage: "[editor]",
		Action: func(c *urfavecli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("usage: lazycommit init [editor]")
			}
			return cli.InitConfig(c.String("config-file"), c.Args().First())
		},
	}
}

func listStatusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "list-status",
		Aliases: []string{"l"},
		Usage:   "Print stageable files, one per line",
		Action: func(c *urfavecli.Context) error {
			_, gitSvc := setup(c)
			return cli.ListStatus(c.Context, gitSvc, c.String("directory"))
		},
	}
}

func pushCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "push",
		Aliases:   []string{"p"},
		Usage:     "Push the current branch",
		ArgsUsage: "[git push args...]",
		Action: func(c *urfavecli.Context) error {
			_, gitSvc := setup(c)
			return cli.Push(c.Context, gitSvc, c.String("directory"),
				c.Args().Slice(), c.Bool("verbose"))
		},
	}
}

func setEditorCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "set-editor",
		Aliases:   []string{"s"},
		Usage:     "Set the editor in the configuration file",
		ArgsUsage: "<editor>",
		Action: func(c *urfavecli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: lazycommit set-editor <editor>")
			}
			return cli.SetEditor(c.String("config-file"), c.Args().First())
		},
	}
}

func statusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "status",
		Aliases: []string{"st"},
		Usage:   "Show categorized changes",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep the view open and refresh on repository changes",
			},
			&urfavecli.BoolFlag{
				Name:  "no-icons",
				Usage: "Disable file type icons",
			},
		},
		Action: func(c *urfavecli.Context) error {
			cfg, gitSvc := setup(c)
			if c.Bool("no-icons") {
				cfg.ShowIcons = false
			}
			dir := c.String("directory")
			if c.Bool("watch") {
				return app.Run(cfg, gitSvc, dir, true)
			}
			return app.PrintStatus(c.Context, gitSvc, cfg, dir, os.Stdout)
		},
	}
}

// runStatus is the default action when no subcommand is given.
func runStatus(c *urfavecli.Context) error {
	cfg, gitSvc := setup(c)
	return app.PrintStatus(c.Context, gitSvc, cfg, c.String("directory"), os.Stdout)
}
