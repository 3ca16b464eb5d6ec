package git

import (
	"errors"
	"fmt"
)

// ErrNoCommitMessage is returned when a commit is requested but the
// commit message file is missing or empty.
var ErrNoCommitMessage = errors.New("commit message file not found, run generate first")

// StatusError reports a failed status invocation together with whatever
// git printed on stderr.
type StatusError struct {
	Stderr string
}

func (e *StatusError) Error() string {
	if e.Stderr == "" {
		return "git status failed"
	}
	return fmt.Sprintf("git status failed: %s", e.Stderr)
}

// PatternError reports an exclude pattern that did not compile. The
// message carries the offending pattern verbatim.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
