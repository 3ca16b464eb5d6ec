package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/utils"
)

// excludeMarker precedes the entries lazycommit appends to the
// repository's local exclude file.
const excludeMarker = "# Added by lazycommit"

// EnsureWorkflowFiles creates the commit message scratch file and the
// commit-ignore file at root when missing, then hides both from git
// through the repository's info/exclude file.
func (s *Service) EnsureWorkflowFiles(ctx context.Context, dir, root string) error {
	for _, name := range []string{models.CommitMessageFile, models.CommitIgnoreFile} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, nil, utils.DefaultFilePerms); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return s.addToGitExclude(ctx, dir, models.CommitMessageFile, models.CommitIgnoreFile)
}

// addToGitExclude appends paths to info/exclude under the lazycommit
// marker, skipping paths the file already lists. Comment lines never count
// as existing entries.
func (s *Service) addToGitExclude(ctx context.Context, dir string, paths ...string) error {
	commonDir, err := s.CommonDir(ctx, dir)
	if err != nil {
		return err
	}
	excludeFile := filepath.Join(commonDir, "info", "exclude")
	content, err := os.ReadFile(excludeFile)
	if err != nil {
		return fmt.Errorf("reading %s (is this a valid git repository?): %w", excludeFile, err)
	}

	existing := make(map[string]struct{})
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		existing[line] = struct{}{}
	}

	var missing []string
	for _, path := range paths {
		if _, ok := existing[path]; !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var b strings.Builder
	if !strings.Contains(string(content), excludeMarker) {
		if len(content) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(excludeMarker + "\n")
	}
	for _, path := range missing {
		b.WriteString(path + "\n")
	}

	f, err := os.OpenFile(excludeFile, os.O_APPEND|os.O_WRONLY, utils.DefaultFilePerms)
	if err != nil {
		return fmt.Errorf("opening %s: %w", excludeFile, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to %s: %w", excludeFile, err)
	}
	return f.Close()
}
