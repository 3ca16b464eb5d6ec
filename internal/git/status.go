package git

import (
	"sort"
	"strings"

	log "github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
)

// statusCodes is the porcelain v1 column alphabet. Anything else in the
// first two columns marks the line as malformed.
const statusCodes = "MADRCU?T! "

// changeCodes are the codes that make an entry stageable when neither
// deletion rule claims it first. Untracked (?) and conflict (U, !)
// pairings land in the same bucket as plain modifications.
const changeCodes = "MTARCU?!"

const renameArrow = " -> "

// ParseStatus turns `git status --porcelain` output into typed entries.
// Structurally broken lines and unknown code pairs are logged and dropped
// so a single odd line never aborts the whole read.
func ParseStatus(output string) []models.StatusEntry {
	var entries []models.StatusEntry
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			log.Printf("skipping malformed status line %q", line)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseLine(line string) (models.StatusEntry, bool) {
	if len(line) < 4 || line[2] != ' ' {
		return models.StatusEntry{}, false
	}
	index, worktree := line[0], line[1]
	if !strings.ContainsRune(statusCodes, rune(index)) || !strings.ContainsRune(statusCodes, rune(worktree)) {
		return models.StatusEntry{}, false
	}

	entry := models.StatusEntry{Index: index, Worktree: worktree, Path: line[3:]}
	if from, to, ok := strings.Cut(entry.Path, renameArrow); ok {
		entry.RenamedFrom = from
		entry.Path = to
	}
	if entry.Path == "" {
		return models.StatusEntry{}, false
	}
	if _, ok := Classify(entry); !ok {
		return models.StatusEntry{}, false
	}
	return entry, true
}

// Classify maps an entry to its category. Worktree deletions win over
// everything except an index deletion, an index deletion always means the
// removal is already staged, and any other change code lands in the
// stageable bucket. The bool is false for code pairs that mean nothing,
// such as two spaces.
func Classify(entry models.StatusEntry) (models.FileCategory, bool) {
	switch {
	case entry.Worktree == 'D' && entry.Index != 'D':
		return models.CategoryUnstagedDeletion, true
	case entry.Index == 'D':
		return models.CategoryStagedDeletion, true
	case entry.Renamed() || entry.Index == 'R' || entry.Worktree == 'R':
		return models.CategoryRenamed, true
	case entry.Index == '?':
		return models.CategoryUntracked, true
	case strings.ContainsRune(changeCodes, rune(entry.Index)) || strings.ContainsRune(changeCodes, rune(entry.Worktree)):
		return models.CategoryModified, true
	}
	return 0, false
}

// StageableFiles returns every path a plain `git add` should pick up,
// renames already resolved to their new name. Deletions are staged
// separately and excluded here. The result is deduplicated and sorted.
func StageableFiles(entries []models.StatusEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	var files []string
	for _, entry := range entries {
		switch category, _ := Classify(entry); category {
		case models.CategoryModified, models.CategoryUntracked, models.CategoryRenamed:
			if _, dup := seen[entry.Path]; dup {
				continue
			}
			seen[entry.Path] = struct{}{}
			files = append(files, entry.Path)
		}
	}
	sort.Strings(files)
	return files
}

// DeletionsToStage returns paths deleted in the working tree whose removal
// has not been staged yet.
func DeletionsToStage(entries []models.StatusEntry) []string {
	return categoryPaths(entries, models.CategoryUnstagedDeletion)
}

// StagedDeletions returns paths whose removal is already recorded in the
// index.
func StagedDeletions(entries []models.StatusEntry) []string {
	return categoryPaths(entries, models.CategoryStagedDeletion)
}

func categoryPaths(entries []models.StatusEntry, want models.FileCategory) []string {
	seen := make(map[string]struct{}, len(entries))
	var paths []string
	for _, entry := range entries {
		if category, _ := Classify(entry); category != want {
			continue
		}
		if _, dup := seen[entry.Path]; dup {
			continue
		}
		seen[entry.Path] = struct{}{}
		paths = append(paths, entry.Path)
	}
	return paths
}

// CountRenames counts rename lines in raw porcelain output. Numstat views
// report a rename as two lines, so staged-count consumers subtract this.
func CountRenames(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "R ") || strings.HasPrefix(line, "R\t") {
			count++
		}
	}
	return count
}
