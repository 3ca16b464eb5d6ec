// Package config loads and stores the lazycommit configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	log "github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/utils"
)

// AppConfig defines the lazycommit configuration options.
type AppConfig struct {
	Editor        string // Editor opened on the generated message (default: nano)
	DefaultBranch string // Branch used when none can be resolved (default: main)
	DebugLog      string // Debug log file path; empty disables file logging
	ShowIcons     bool   // Render Nerd Font icons in the status view (default: true)
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Editor:        "nano",
		DefaultBranch: "main",
		ShowIcons:     true,
	}
}

var knownKeys = map[string]struct{}{
	"editor":         {},
	"default_branch": {},
	"debug_log":      {},
	"show_icons":     {},
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	for key := range data {
		if _, ok := knownKeys[key]; !ok {
			log.Printf("config: ignoring unknown key %q", key)
		}
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

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func configBase() string {
	return filepath.Clean(filepath.Join(getConfigDir(), "lazycommit"))
}

// ResolvePath returns the config file to use. An explicit path is expanded
// and must stay inside the lazycommit config directory; otherwise the
// default config.yaml location is returned, preferring an existing
// config.yml for compatibility.
func ResolvePath(explicit string) (string, error) {
	base := configBase()

	if explicit != "" {
		expanded, err := utils.ExpandPath(explicit)
		if err != nil {
			return "", err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return "", err
		}
		if !utils.IsPathWithin(base, absPath) {
			return "", fmt.Errorf("config path must reside inside %s", base)
		}
		return absPath, nil
	}

	yamlPath := filepath.Join(base, "config.yaml")
	ymlPath := filepath.Join(base, "config.yml")
	if _, err := os.Stat(yamlPath); errors.Is(err, fs.ErrNotExist) {
		if _, err := os.Stat(ymlPath); err == nil {
			return ymlPath, nil
		}
	}
	return yamlPath, nil
}

// LoadConfig reads the configuration, falling back to defaults when the
// file is missing or unparseable.
func LoadConfig(configPath string) (*AppConfig, error) {
	path, err := ResolvePath(configPath)
	if err != nil {
		return DefaultConfig(), err
	}

	// #nosec G304 -- path is constrained to the config directory after validation
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), nil
	}

	var yamlData map[string]any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		log.Printf("config: cannot parse %s: %v", path, err)
		return DefaultConfig(), nil
	}

	return parseConfig(yamlData), nil
}

// Init creates the config file with the given editor and the remaining
// defaults. It refuses to overwrite an existing file.
func Init(configPath, editor string) (string, error) {
	path, err := ResolvePath(configPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), utils.DefaultDirPerms); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	cfg := DefaultConfig()
	if editor = strings.TrimSpace(editor); editor != "" {
		cfg.Editor = editor
	}
	if err := write(path, map[string]any{
		"editor":         cfg.Editor,
		"default_branch": cfg.DefaultBranch,
		"show_icons":     cfg.ShowIcons,
	}); err != nil {
		return "", err
	}
	return path, nil
}

// SetEditor updates the editor key of an existing config file, keeping
// every other key as it is.
func SetEditor(configPath, editor string) (string, error) {
	path, err := ResolvePath(configPath)
	if err != nil {
		return "", err
	}

	// #nosec G304 -- path is constrained to the config directory after validation
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no config file at %s, run init first", path)
		}
		return "", fmt.Errorf("reading config: %w", err)
	}

	yamlData := map[string]any{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return "", fmt.Errorf("parsing config: %w", err)
	}
	if yamlData == nil {
		yamlData = map[string]any{}
	}
	yamlData["editor"] = strings.TrimSpace(editor)

	if err := write(path, yamlData); err != nil {
		return "", err
	}
	return path, nil
}

func write(path string, data map[string]any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, out, utils.DefaultFilePerms); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
