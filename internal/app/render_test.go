package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/models"
)

func TestRenderStatic(t *testing.T) {
	cfg := testConfig()

	t.Run("clean tree", func(t *testing.T) {
		out := renderStatic(cfg, nil, "main", 100)
		assert.Contains(t, out, "lazycommit")
		assert.Contains(t, out, "on main")
		assert.Contains(t, out, "Clean working tree")
	})

	t.Run("entries with categories", func(t *testing.T) {
		entries := git.ParseStatus(sampleStatus)
		out := renderStatic(cfg, entries, "feat/x", 100)

		assert.Contains(t, out, "a.rs")
		assert.Contains(t, out, "c.md")
		assert.Contains(t, out, "g.rs (from f.rs)")
		assert.Contains(t, out, "4 stageable")
		assert.Contains(t, out, "1 deletion(s) to stage")
		assert.Contains(t, out, "1 deletion(s) staged")
	})

	t.Run("narrow width truncates paths", func(t *testing.T) {
		long := strings.Repeat("d", 60) + ".go"
		entries := []models.StatusEntry{{Index: ' ', Worktree: 'M', Path: long}}
		out := renderStatic(cfg, entries, "main", 30)

		assert.NotContains(t, out, long)
		assert.Contains(t, out, strings.Repeat("d", 22))
	})
}

func TestRenderSummary(t *testing.T) {
	assert.Contains(t, renderSummary(nil), "nothing to stage")

	summary := renderSummary(git.ParseStatus(" M a.rs\n"))
	assert.Contains(t, summary, "1 stageable")
	assert.NotContains(t, summary, "deletion")
}

func TestCodeCell(t *testing.T) {
	assert.Equal(t, " M", codeCell(models.StatusEntry{Index: ' ', Worktree: 'M'}))
	assert.Equal(t, "??", codeCell(models.StatusEntry{Index: '?', Worktree: '?'}))
	assert.Equal(t, "R ", codeCell(models.StatusEntry{Index: 'R', Worktree: ' '}))
}

func TestRenderError(t *testing.T) {
	out := renderError(errors.New("boom"), 0)
	assert.Contains(t, out, "status failed: boom")
}

func TestPrintStatus(t *testing.T) {
	t.Run("writes the listing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		fake := &fakeSource{status: sampleStatus, branch: "feat/x"}

		require.NoError(t, PrintStatus(context.Background(), fake, testConfig(), ".", buf))
		assert.Contains(t, buf.String(), "feat/x")
		assert.Contains(t, buf.String(), "a.rs")
	})

	t.Run("propagates read errors", func(t *testing.T) {
		fake := &fakeSource{statusErr: errors.New("not a repository")}

		err := PrintStatus(context.Background(), fake, testConfig(), ".", &bytes.Buffer{})
		require.Error(t, err)
	})
}
