package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/logs/debug.log", want: filepath.Join(home, "logs", "debug.log")},
		{name: "absolute untouched", in: "/tmp/x", want: "/tmp/x"},
		{name: "relative cleaned", in: "./a/../b", want: "b"},
		{name: "tilde mid-path untouched", in: "/tmp/~x", want: "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want bool
	}{
		{name: "child", root: "/a/b", path: "/a/b/c", want: true},
		{name: "self", root: "/a/b", path: "/a/b", want: true},
		{name: "sibling", root: "/a/b", path: "/a/bb", want: false},
		{name: "parent escape", root: "/a/b", path: "/a/b/../c", want: false},
		{name: "unrelated", root: "/a/b", path: "/x/y", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPathWithin(tt.root, tt.path))
		})
	}
}
