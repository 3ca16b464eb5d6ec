package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/chmouel/lazycommit/internal/ignore"
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/utils"
)

// FormatBranchName strips the first "<type>/" token found in branch,
// trying types in order and stopping after one removal: feat/fix/complex
// becomes fix/complex, not complex.
func FormatBranchName(types []string, branch string) string {
	for _, t := range types {
		token := t + "/"
		if strings.Contains(branch, token) {
			return strings.Replace(branch, token, "", 1)
		}
	}
	return branch
}

// FormatHeader renders the message header line, "[N] (type on branch)", or
// without the bracketed number when it is suppressed.
func FormatHeader(header models.CommitHeader) string {
	if header.Number == nil {
		return fmt.Sprintf("(%s on %s)", header.Type, header.Branch)
	}
	return fmt.Sprintf("[%d] (%s on %s)", *header.Number, header.Type, header.Branch)
}

// BuildMessage renders the commit message scaffold: the header, one
// fill-in block per stageable file that is not ignored, and one fixed
// "deleted" line per staged deletion. Deletions never pass through the
// ignore filter.
func BuildMessage(header models.CommitHeader, stageable, deletions []string, ignores ignore.Entries) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n\n", FormatHeader(header))
	for _, path := range stageable {
		if ignores.Ignored(path) {
			continue
		}
		fmt.Fprintf(&b, "- `%s`:\n\n\t\n\n", path)
	}
	for _, path := range deletions {
		fmt.Fprintf(&b, "- `%s`: deleted\n\n", path)
	}
	return b.String()
}

// WriteMessage rewrites the commit message file from scratch, discarding
// any previous content.
func WriteMessage(path, content string) error {
	if err := os.WriteFile(path, []byte(content), utils.DefaultFilePerms); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadMessage loads the commit message file, trimmed of surrounding
// whitespace. Missing or empty files yield ErrNoCommitMessage.
func ReadMessage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoCommitMessage
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	message := strings.TrimSpace(string(data))
	if message == "" {
		return "", ErrNoCommitMessage
	}
	return message, nil
}
