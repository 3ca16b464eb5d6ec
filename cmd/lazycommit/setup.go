package main

import (
	"fmt"
	"os"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	log "github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/utils"
	urfavecli "github.com/urfave/cli/v2"
)

// setup loads the configuration, overlays per-repository git config values
// and wires the debug log. Every repository-touching subcommand goes
// through here. Config problems degrade to defaults rather than aborting.
func setup(c *urfavecli.Context) (*config.AppConfig, *git.Service) {
	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		path := debugLog
		if expanded, err := utils.ExpandPath(debugLog); err == nil {
			path = expanded
		}
		if err := log.SetFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}

	cfg = config.LoadRepoConfig(cfg, c.String("directory"))

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			path := cfg.DebugLog
			if expanded, err := utils.ExpandPath(cfg.DebugLog); err == nil {
				path = expanded
			}
			if err := log.SetFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", path, err)
			}
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}

	return cfg, git.NewService()
}
