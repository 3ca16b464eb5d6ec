// Package ignore merges the commit-ignore and gitignore files into a flat
// list of literal path entries and answers containment queries against it.
// Entries are plain paths or directory prefixes: unlike the staging exclude
// patterns, no glob expansion happens here.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
)

// Entries is the merged, order-preserving list of ignore paths.
type Entries []string

// Load merges .commitignore and .gitignore from root. A missing
// .commitignore disables commit-message filtering entirely; a missing
// .gitignore just contributes nothing. Blank lines and # comments are
// skipped, duplicates collapse by exact string match.
func Load(root string) (Entries, error) {
	commitignore := filepath.Join(root, models.CommitIgnoreFile)
	if _, err := os.Stat(commitignore); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", commitignore, err)
	}

	var entries Entries
	seen := make(map[string]struct{})
	for _, file := range []string{commitignore, filepath.Join(root, models.GitIgnoreFile)} {
		lines, err := readLines(file)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			entries = append(entries, line)
		}
	}
	return entries, nil
}

func readLines(file string) ([]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Ignored reports whether file matches an entry exactly or sits below an
// entry treated as a directory. Containment is a literal component-wise
// prefix test on the file's parent, never a filesystem or glob match.
func (e Entries) Ignored(file string) bool {
	for _, entry := range e {
		if file == entry {
			return true
		}
		if withinDir(path.Dir(file), entry) {
			return true
		}
	}
	return false
}

func withinDir(parent, entry string) bool {
	parent = path.Clean(parent)
	entry = path.Clean(entry)
	if parent == entry {
		return true
	}
	return strings.HasPrefix(parent, entry+"/")
}
