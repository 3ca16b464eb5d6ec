package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/models"
)

func TestSelectTypeWithPrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "first index", input: "1\n", want: "chore"},
		{name: "last index", input: "4\n", want: "test"},
		{name: "index with surrounding spaces", input: " 2 \n", want: "feat"},
		{name: "type name instead of index", input: "fix\n", want: "fix"},
		{name: "zero is out of range", input: "0\n", wantErr: "out of range"},
		{name: "past the end", input: "9\n", wantErr: "out of range"},
		{name: "empty line", input: "\n", wantErr: "no commit type selected"},
		{name: "eof cancels", input: "", wantErr: "cancelled"},
		{name: "unknown name", input: "wip\n", wantErr: `invalid selection: "wip"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errBuf := &bytes.Buffer{}
			got, err := selectTypeWithPrompt(models.CommitTypes, strings.NewReader(tt.input), errBuf)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, errBuf.String(), "[1] chore")
			assert.Contains(t, errBuf.String(), "Select type [1-4]: ")
		})
	}
}

func TestSelectCommitType(t *testing.T) {
	t.Run("empty type list", func(t *testing.T) {
		_, err := SelectCommitType(nil, strings.NewReader(""), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no commit types")
	})

	t.Run("delegates to the selector seam", func(t *testing.T) {
		orig := selectTypeFunc
		selectTypeFunc = func(types []string, _ io.Reader, _ io.Writer) (string, error) {
			assert.Equal(t, models.CommitTypes, types)
			return "feat", nil
		}
		t.Cleanup(func() { selectTypeFunc = orig })

		got, err := SelectCommitType(models.CommitTypes, strings.NewReader(""), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "feat", got)
	})
}

func TestSelectTypeDefaultWithoutFzf(t *testing.T) {
	origLookPath := fzfLookPath
	fzfLookPath = func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { fzfLookPath = origLookPath })

	errBuf := &bytes.Buffer{}
	got, err := selectTypeDefault(models.CommitTypes, strings.NewReader("3\n"), errBuf)
	require.NoError(t, err)
	assert.Equal(t, "fix", got)
	assert.Contains(t, errBuf.String(), "Commit types:")
}
