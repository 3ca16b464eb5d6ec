package config

import (
	"os/exec"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses `git config --get-regexp` output into the key
// names parseConfig understands. Git config variable names cannot contain
// underscores, so dashed names map to the snake_case YAML keys.
// Input format: "lazycommit.editor vim\nlazycommit.show-icons false\n"
func parseGitConfigOutput(output string) map[string]any {
	configMap := make(map[string]any)
	if output == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// Using SplitN with 2 to handle values containing spaces
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "lazycommit.")
		key = strings.ReplaceAll(key, "-", "_")

		// Later entries win, matching git's own precedence for scalar keys.
		configMap[key] = parts[1]
	}

	return configMap
}

// LoadRepoConfig overlays per-repository `lazycommit.*` git config values
// onto cfg. Lookups never fail the caller; a broken git setup just leaves
// the file-based configuration in place.
func LoadRepoConfig(cfg *AppConfig, repoPath string) *AppConfig {
	output, err := runGitConfig([]string{"config", "--get-regexp", "^lazycommit\\."}, repoPath)
	if err != nil {
		return cfg
	}

	data := parseGitConfigOutput(output)
	if len(data) == 0 {
		return cfg
	}

	if editor, ok := data["editor"].(string); ok {
		if editor = strings.TrimSpace(editor); editor != "" {
			cfg.Editor = editor
		}
	}
	if branch, ok := data["default_branch"].(string); ok {
		if branch = strings.TrimSpace(branch); branch != "" {
			cfg.DefaultBranch = branch
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		cfg.DebugLog = strings.TrimSpace(debugLog)
	}
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)

	return cfg
}
