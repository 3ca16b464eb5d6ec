// Package git wraps the git commands lazycommit drives and the parsing of
// their porcelain status output.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/chmouel/lazycommit/internal/log"
)

// Service runs git subcommands against an explicitly supplied repository
// directory. The process working directory is never consulted or changed.
type Service struct{}

// NewService constructs a Service.
func NewService() *Service {
	return &Service{}
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// runGit executes a git command in dir and returns its stdout. On a
// non-zero exit the error carries whatever git printed on stderr.
func (s *Service) runGit(ctx context.Context, args []string, dir string, strip bool) (string, error) {
	command := "git " + strings.Join(args, " ")
	s.debugf("run: %s (dir=%s)", command, dir)

	// #nosec G204 -- git arguments come from internal logic and are not shell interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			s.debugf("error: %s (exit %d): %s", command, exitErr.ExitCode(), stderr)
			if stderr != "" {
				return "", fmt.Errorf("%s: %s", command, stderr)
			}
			return "", fmt.Errorf("%s: exit %d", command, exitErr.ExitCode())
		}
		s.debugf("error: %s: %v", command, err)
		return "", fmt.Errorf("%s: %w", command, err)
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out, nil
}

// ReadStatus returns the porcelain status for dir, untracked files
// included. A failure surfaces as a StatusError carrying git's stderr.
// The output is returned unstripped: the leading column of the first
// line is significant.
func (s *Service) ReadStatus(ctx context.Context, dir string) (string, error) {
	s.debugf("run: git status --porcelain -u (dir=%s)", dir)

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain", "-u")
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &StatusError{Stderr: strings.TrimSpace(string(exitErr.Stderr))}
		}
		return "", &StatusError{Stderr: err.Error()}
	}
	return string(output), nil
}

// CurrentBranch resolves the checked-out branch name. rev-parse fails on a
// repository without commits, so the unborn branch is read from
// symbolic-ref; when that fails too the configured fallback wins.
func (s *Service) CurrentBranch(ctx context.Context, dir, fallback string) string {
	if out, err := s.runGit(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"}, dir, true); err == nil && out != "" {
		return out
	}
	if out, err := s.runGit(ctx, []string{"symbolic-ref", "--short", "HEAD"}, dir, true); err == nil && out != "" {
		return out
	}
	if out := s.ConfigValue(ctx, dir, "init.defaultBranch"); out != "" {
		return out
	}
	return fallback
}

// CommitCount returns the number of commits reachable from HEAD, counting
// across all refs when HEAD does not resolve (fresh repository).
func (s *Service) CommitCount(ctx context.Context, dir string) (uint, error) {
	out, err := s.runGit(ctx, []string{"rev-list", "--count", "HEAD"}, dir, true)
	if err != nil {
		out, err = s.runGit(ctx, []string{"rev-list", "--count", "--all"}, dir, true)
		if err != nil {
			return 0, err
		}
	}
	count, err := strconv.ParseUint(out, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, err)
	}
	return uint(count), nil
}

// TopLevel returns the absolute path of the repository root containing dir.
func (s *Service) TopLevel(ctx context.Context, dir string) (string, error) {
	return s.runGit(ctx, []string{"rev-parse", "--show-toplevel"}, dir, true)
}

// CommonDir returns the repository's shared git directory, made absolute
// against dir when git reports a relative path. Inside a linked worktree
// this is the main .git directory, which is where info/exclude and the
// ref files live.
func (s *Service) CommonDir(ctx context.Context, dir string) (string, error) {
	out, err := s.runGit(ctx, []string{"rev-parse", "--git-common-dir"}, dir, true)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return out, nil
}

// ConfigValue reads a git config key, returning "" when the key is unset.
func (s *Service) ConfigValue(ctx context.Context, dir, key string) string {
	out, err := s.runGit(ctx, []string{"config", "--get", key}, dir, true)
	if err != nil {
		return ""
	}
	return out
}

// StagedCount returns the number of entries in the cached diff. Renames
// show up twice in numstat output; CountRenames corrects for that.
func (s *Service) StagedCount(ctx context.Context, dir string) (int, error) {
	out, err := s.runGit(ctx, []string{"diff", "--cached", "--numstat"}, dir, true)
	if err != nil {
		return 0, err
	}
	if out == "" {
		return 0, nil
	}
	return len(strings.Split(out, "\n")), nil
}

// FilterCommitArgs drops pass-through arguments that would fight the
// commit flow itself: anything starting with -c or --commit.
func FilterCommitArgs(args []string) []string {
	filtered := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-c") || strings.HasPrefix(arg, "--commit") {
			continue
		}
		filtered = append(filtered, arg)
	}
	return filtered
}

// Commit records the staged changes with the given message. extra is
// appended to the invocation after FilterCommitArgs has vetted it.
func (s *Service) Commit(ctx context.Context, dir, message string, sign bool, extra []string) (string, error) {
	args := []string{"commit"}
	if sign {
		args = append(args, "-S")
	}
	args = append(args, "-m", message)
	args = append(args, FilterCommitArgs(extra)...)
	return s.runGit(ctx, args, dir, true)
}

// Push pushes the current branch, passing extra arguments through.
func (s *Service) Push(ctx context.Context, dir string, extra []string) (string, error) {
	args := append([]string{"push"}, extra...)
	return s.runGit(ctx, args, dir, true)
}
