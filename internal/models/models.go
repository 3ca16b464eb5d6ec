// Package models defines the data objects shared across lazycommit packages.
package models

// FileCategory is the semantic bucket a status entry resolves to. Every
// entry maps to exactly one category; renames keep their category from
// the status codes and only affect which path is reported.
type FileCategory int

const (
	// CategoryModified covers every non-deletion change: modified,
	// typechanged, added, renamed, copied, conflicted and untracked
	// entries all land here for staging purposes.
	CategoryModified FileCategory = iota
	// CategoryUntracked is a display-only refinement of CategoryModified
	// for entries whose both codes are '?'.
	CategoryUntracked
	// CategoryStagedDeletion marks files deleted in the index ("D ", "DD").
	CategoryStagedDeletion
	// CategoryUnstagedDeletion marks files deleted in the working tree but
	// not yet staged as deletions (" D", "MD", "AD").
	CategoryUnstagedDeletion
	// CategoryRenamed is a display-only refinement for rename entries;
	// extraction always resolves them to the new path.
	CategoryRenamed
)

// String returns the short label used in status listings.
func (c FileCategory) String() string {
	switch c {
	case CategoryModified:
		return "modified"
	case CategoryUntracked:
		return "untracked"
	case CategoryStagedDeletion:
		return "deleted (staged)"
	case CategoryUnstagedDeletion:
		return "deleted"
	case CategoryRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// StatusEntry is one parsed porcelain status line. Index and Worktree are
// the two positional status codes; Path is the file path, already resolved
// to the new name for renames (RenamedFrom then holds the old one).
// Entries are built per status read and never persisted.
type StatusEntry struct {
	Index       byte
	Worktree    byte
	Path        string
	RenamedFrom string
}

// Renamed reports whether the entry came from a "old -> new" status line.
func (e StatusEntry) Renamed() bool { return e.RenamedFrom != "" }

// CommitHeader describes the first line of a generated commit message.
// Number is nil when numbering is suppressed.
type CommitHeader struct {
	Number *uint
	Type   string
	Branch string
}

// StageSelection is the outcome of filtering the stageable set against
// exclude patterns. Preview and real staging share the same selection;
// only the final mutation step differs.
type StageSelection struct {
	Included  []string
	Deletions []string
	Excluded  int
}

// Empty reports whether the selection would stage nothing at all.
func (s StageSelection) Empty() bool {
	return len(s.Included) == 0 && len(s.Deletions) == 0
}

// Workflow file names, relative to the repository top level.
const (
	// CommitMessageFile is the scratch file consumed verbatim as the next
	// commit's message body.
	CommitMessageFile = "commit_message.md"
	// CommitIgnoreFile lists paths excluded from generated message bodies.
	CommitIgnoreFile = ".commitignore"
	// GitIgnoreFile is the standard ignore file merged into the ignore set.
	GitIgnoreFile = ".gitignore"
)

// CommitTypes is the fixed commit-type vocabulary, in selection order.
var CommitTypes = []string{"chore", "feat", "fix", "test"}
