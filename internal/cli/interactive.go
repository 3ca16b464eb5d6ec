package cli

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// typeSelector abstracts interactive commit-type selection for testability.
type typeSelector func(types []string, stdin io.Reader, stderr io.Writer) (string, error)

// selectTypeFunc is the package-level function variable used by
// SelectCommitType. Tests can replace this to avoid fzf/stdin dependencies.
var selectTypeFunc typeSelector = selectTypeDefault

// fzfLookPath is a package-level variable for exec.LookPath, replaceable in tests.
var fzfLookPath = exec.LookPath

// SelectCommitType presents an interactive commit-type selector. When fzf
// is installed, the types are piped through it; otherwise a numbered list
// is printed to stderr and the user is prompted to type a selection.
func SelectCommitType(types []string, stdin io.Reader, stderr io.Writer) (string, error) {
	if len(types) == 0 {
		return "", fmt.Errorf("no commit types to select from")
	}
	return selectTypeFunc(types, stdin, stderr)
}

// selectTypeDefault chooses between fzf and the plain fallback.
func selectTypeDefault(types []string, stdin io.Reader, stderr io.Writer) (string, error) {
	if _, err := fzfLookPath("fzf"); err == nil {
		return selectTypeWithFzf(types, stderr)
	}
	return selectTypeWithPrompt(types, stdin, stderr)
}

// selectTypeWithFzf pipes the commit types through fzf.
func selectTypeWithFzf(types []string, stderr io.Writer) (string, error) {
	cmd := exec.Command("fzf",
		"--prompt", "Commit type> ",
		"--header", "Select a commit type",
	)
	cmd.Stdin = strings.NewReader(strings.Join(types, "\n"))
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("commit type selection cancelled")
	}

	selected := strings.TrimSpace(string(out))
	if selected == "" {
		return "", fmt.Errorf("no commit type selected")
	}
	return selected, nil
}

// selectTypeWithPrompt displays a numbered list and reads the user's choice.
// Typing the type name itself is accepted as well.
func selectTypeWithPrompt(types []string, stdin io.Reader, stderr io.Writer) (string, error) {
	fmt.Fprintf(stderr, "\nCommit types:\n\n")
	for i, name := range types {
		fmt.Fprintf(stderr, "  [%d] %s\n", i+1, name)
	}
	fmt.Fprintf(stderr, "\nSelect type [1-%d]: ", len(types))

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("commit type selection cancelled")
	}

	text := strings.TrimSpace(scanner.Text())
	if text == "" {
		return "", fmt.Errorf("no commit type selected")
	}

	idx, err := strconv.Atoi(text)
	if err != nil {
		for _, name := range types {
			if text == name {
				return name, nil
			}
		}
		return "", fmt.Errorf("invalid selection: %q", text)
	}

	if idx < 1 || idx > len(types) {
		return "", fmt.Errorf("selection out of range: %d (must be 1-%d)", idx, len(types))
	}

	return types[idx-1], nil
}
