// Package completion generates shell completion scripts. The flag and
// command tables here are the single source of truth the three shell
// renderings are built from.
package completion

import (
	"fmt"
	"strings"
)

// FlagInfo contains metadata about a global command-line flag.
type FlagInfo struct {
	Name        string // Flag name without dashes
	Alias       string // Single-letter alias, empty when none
	Description string // Human-readable description
	HasValue    bool   // true for string flags, false for bool flags
	ValueHint   string // Hint for value type (e.g., "DIR", "PATH", "FILE")
}

// CommandInfo contains metadata about a subcommand.
type CommandInfo struct {
	Name        string
	Alias       string
	Description string
}

// GlobalFlags returns metadata for all global lazycommit flags.
// Note: --version and --help are provided by urfave/cli automatically.
func GlobalFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "verbose",
			Alias:       "v",
			Description: "Enable verbose progress output",
		},
		{
			Name:        "directory",
			Alias:       "C",
			Description: "Run as if started in this directory",
			HasValue:    true,
			ValueHint:   "DIR",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
	}
}

// Commands returns metadata for all lazycommit subcommands.
func Commands() []CommandInfo {
	return []CommandInfo{
		{Name: "add", Alias: "a", Description: "Stage changed files, honoring exclude patterns"},
		{Name: "commit", Alias: "c", Description: "Commit using the generated message file"},
		{Name: "generate", Alias: "g", Description: "Write the commit message scaffold and open the editor"},
		{Name: "init", Alias: "i", Description: "Create the default configuration file"},
		{Name: "list-status", Alias: "l", Description: "Print stageable files, one per line"},
		{Name: "push", Alias: "p", Description: "Push the current branch"},
		{Name: "set-editor", Alias: "s", Description: "Set the editor in the configuration file"},
		{Name: "status", Alias: "st", Description: "Show categorized changes"},
		{Name: "completion", Description: "Generate shell completion scripts"},
	}
}

// Script renders the completion script for the given shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashScript(), nil
	case "zsh":
		return zshScript(), nil
	case "fish":
		return fishScript(), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
}

func commandWords() []string {
	var words []string
	for _, cmd := range Commands() {
		words = append(words, cmd.Name)
		if cmd.Alias != "" {
			words = append(words, cmd.Alias)
		}
	}
	return words
}

func flagWords() []string {
	var words []string
	for _, flag := range GlobalFlags() {
		words = append(words, "--"+flag.Name)
		if flag.Alias != "" {
			words = append(words, "-"+flag.Alias)
		}
	}
	return words
}

func bashScript() string {
	var b strings.Builder
	b.WriteString("# bash completion for lazycommit\n")
	b.WriteString("_lazycommit() {\n")
	b.WriteString("    local cur\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n", strings.Join(commandWords(), " "))
	fmt.Fprintf(&b, "    local flags=%q\n", strings.Join(flagWords(), " "))
	b.WriteString("    if [[ ${cur} == -* ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${flags}\" -- \"${cur}\") )\n")
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _lazycommit lazycommit\n")
	return b.String()
}

func zshScript() string {
	var b strings.Builder
	b.WriteString("#compdef lazycommit\n")
	b.WriteString("_lazycommit() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range Commands() {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Description))
	}
	b.WriteString("    )\n")
	b.WriteString("    _arguments -C \\\n")
	for _, flag := range GlobalFlags() {
		spec := "--" + flag.Name
		if flag.HasValue {
			fmt.Fprintf(&b, "        '%s=[%s]:%s:_files' \\\n", spec, zshEscape(flag.Description), flag.ValueHint)
		} else {
			fmt.Fprintf(&b, "        '%s[%s]' \\\n", spec, zshEscape(flag.Description))
		}
	}
	b.WriteString("        '1: :->cmds' \\\n")
	b.WriteString("        '*:: :->args'\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        cmds) _describe 'command' commands ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("_lazycommit \"$@\"\n")
	return b.String()
}

func fishScript() string {
	var b strings.Builder
	b.WriteString("# fish completion for lazycommit\n")
	b.WriteString("complete -c lazycommit -f\n")
	for _, cmd := range Commands() {
		fmt.Fprintf(&b, "complete -c lazycommit -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
			cmd.Name, fishEscape(cmd.Description))
		if cmd.Alias != "" {
			fmt.Fprintf(&b, "complete -c lazycommit -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
				cmd.Alias, fishEscape(cmd.Description))
		}
	}
	for _, flag := range GlobalFlags() {
		line := fmt.Sprintf("complete -c lazycommit -l %s", flag.Name)
		if flag.Alias != "" {
			line += " -s " + flag.Alias
		}
		if flag.HasValue {
			line += " -r"
		}
		line += fmt.Sprintf(" -d '%s'", fishEscape(flag.Description))
		b.WriteString(line + "\n")
	}
	// Stageable files complete the add patterns.
	b.WriteString("complete -c lazycommit -n '__fish_seen_subcommand_from add a' -a '(lazycommit list-status 2>/dev/null)'\n")
	return b.String()
}

func zshEscape(s string) string {
	return strings.ReplaceAll(s, "'", "'\\''")
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
