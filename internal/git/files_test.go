package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/models"
)

func TestEnsureWorkflowFiles(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	readExclude := func(t *testing.T, dir string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, ".git", "info", "exclude"))
		require.NoError(t, err)
		return string(data)
	}

	t.Run("creates files and exclude entries", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)

		require.NoError(t, svc.EnsureWorkflowFiles(ctx, dir, dir))

		assert.FileExists(t, filepath.Join(dir, models.CommitMessageFile))
		assert.FileExists(t, filepath.Join(dir, models.CommitIgnoreFile))

		exclude := readExclude(t, dir)
		assert.Contains(t, exclude, excludeMarker)
		assert.Contains(t, exclude, models.CommitMessageFile+"\n")
		assert.Contains(t, exclude, models.CommitIgnoreFile+"\n")
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)

		require.NoError(t, svc.EnsureWorkflowFiles(ctx, dir, dir))
		before := readExclude(t, dir)

		require.NoError(t, svc.EnsureWorkflowFiles(ctx, dir, dir))
		assert.Equal(t, before, readExclude(t, dir))
	})

	t.Run("existing scratch content survives", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)

		scratch := filepath.Join(dir, models.CommitMessageFile)
		require.NoError(t, os.WriteFile(scratch, []byte("drafted"), 0o600))

		require.NoError(t, svc.EnsureWorkflowFiles(ctx, dir, dir))

		data, err := os.ReadFile(scratch)
		require.NoError(t, err)
		assert.Equal(t, "drafted", string(data))
	})

	t.Run("only missing entries are appended", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)

		excludePath := filepath.Join(dir, ".git", "info", "exclude")
		require.NoError(t, os.WriteFile(excludePath, []byte(models.CommitMessageFile+"\n"), 0o600))

		require.NoError(t, svc.EnsureWorkflowFiles(ctx, dir, dir))

		exclude := readExclude(t, dir)
		assert.Equal(t, 1, strings.Count(exclude, models.CommitMessageFile))
		assert.Contains(t, exclude, models.CommitIgnoreFile+"\n")
	})
}
