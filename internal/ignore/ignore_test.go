package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/models"
)

func TestIgnored(t *testing.T) {
	tests := []struct {
		name    string
		entries Entries
		path    string
		want    bool
	}{
		{
			name:    "exact match",
			entries: Entries{"commit_message.md"},
			path:    "commit_message.md",
			want:    true,
		},
		{
			name:    "file under ignored folder",
			entries: Entries{"data/year_2015/puzzles"},
			path:    "data/year_2015/puzzles/day_01.md",
			want:    true,
		},
		{
			name:    "file deeper under ignored folder",
			entries: Entries{"data"},
			path:    "data/year_2015/puzzles/day_01.md",
			want:    true,
		},
		{
			name:    "sibling folder stays visible",
			entries: Entries{"data/year_2015/puzzles"},
			path:    "data/year_2016/x.md",
			want:    false,
		},
		{
			name:    "prefix is component-wise, not textual",
			entries: Entries{"data/year"},
			path:    "data/year_2015/x.md",
			want:    false,
		},
		{
			name:    "trailing slash entries normalize",
			entries: Entries{"build/"},
			path:    "build/out.bin",
			want:    true,
		},
		{
			name:    "root file not covered by folder entry",
			entries: Entries{"puzzles"},
			path:    "day_01.md",
			want:    false,
		},
		{
			name:    "no entries",
			entries: nil,
			path:    "anything.md",
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entries.Ignored(tt.path))
		})
	}
}

func TestLoad(t *testing.T) {
	write := func(t *testing.T, dir, name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	t.Run("merges both files and dedupes", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, models.CommitIgnoreFile, "# scratch files\ncommit_message.md\ndata\n\n")
		write(t, dir, models.GitIgnoreFile, "target\ndata\n# comment\n")

		entries, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, Entries{"commit_message.md", "data", "target"}, entries)
	})

	t.Run("missing commitignore disables filtering", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, models.GitIgnoreFile, "target\n")

		entries, err := Load(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing gitignore contributes nothing", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, models.CommitIgnoreFile, "docs\n")

		entries, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, Entries{"docs"}, entries)
	})

	t.Run("blank commitignore keeps gitignore entries", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, models.CommitIgnoreFile, "")
		write(t, dir, models.GitIgnoreFile, "vendor\n")

		entries, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, Entries{"vendor"}, entries)
	})
}
