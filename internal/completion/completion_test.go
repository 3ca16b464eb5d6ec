package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCoversEveryCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			script, err := Script(shell)
			require.NoError(t, err)
			for _, cmd := range Commands() {
				assert.Contains(t, script, cmd.Name)
			}
			for _, flag := range GlobalFlags() {
				// fish spells long flags as "-l name".
				if shell == "fish" {
					assert.Contains(t, script, "-l "+flag.Name, "flag --%s missing", flag.Name)
				} else {
					assert.Contains(t, script, "--"+flag.Name, "flag --%s missing", flag.Name)
				}
			}
		})
	}
}

func TestScriptUnsupportedShell(t *testing.T) {
	_, err := Script("powershell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestBashScriptShape(t *testing.T) {
	script, err := Script("bash")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(script, "# bash completion"))
	assert.Contains(t, script, "complete -F _lazycommit lazycommit")
	// Aliases complete alongside full names.
	assert.Contains(t, script, "list-status l ")
}

func TestZshScriptShape(t *testing.T) {
	script, err := Script("zsh")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(script, "#compdef lazycommit"))
	assert.Contains(t, script, "'add:Stage changed files")
	assert.Contains(t, script, "_describe 'command' commands")
}

func TestFishScriptUsesListStatus(t *testing.T) {
	script, err := Script("fish")
	require.NoError(t, err)
	assert.Contains(t, script, "__fish_seen_subcommand_from add a")
	assert.Contains(t, script, "(lazycommit list-status 2>/dev/null)")
}
