package git

import (
	"context"

	"github.com/gobwas/glob"

	"github.com/chmouel/lazycommit/internal/models"
)

// SelectForStaging applies exclude patterns to the stageable set and pairs
// the survivors with the pending worktree deletions. A path is excluded as
// soon as any pattern matches the full relative path; there is no negation
// and no precedence. Preview and real staging both go through here, only
// ApplySelection mutates.
func SelectForStaging(entries []models.StatusEntry, patterns []string) (models.StageSelection, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return models.StageSelection{}, &PatternError{Pattern: pattern, Err: err}
		}
		globs = append(globs, compiled)
	}

	selection := models.StageSelection{Deletions: DeletionsToStage(entries)}
	for _, path := range StageableFiles(entries) {
		if matchesAny(globs, path) {
			selection.Excluded++
			continue
		}
		selection.Included = append(selection.Included, path)
	}
	return selection, nil
}

func matchesAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// ApplySelection stages the whole selection with one batched git add. An
// empty selection is a no-op, never an error.
func (s *Service) ApplySelection(ctx context.Context, dir string, selection models.StageSelection) error {
	if selection.Empty() {
		return nil
	}
	args := append([]string{"add", "--"}, selection.Included...)
	args = append(args, selection.Deletions...)
	_, err := s.runGit(ctx, args, dir, true)
	return err
}
