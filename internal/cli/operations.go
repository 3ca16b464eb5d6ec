// Package cli implements the lazycommit operations behind each subcommand.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/ignore"
	log "github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	runEditor = func(ctx context.Context, editor, path string) error {
		parts := strings.Fields(editor)
		if len(parts) == 0 {
			return fmt.Errorf("no editor configured")
		}
		// #nosec G204 -- the editor comes from the user's own configuration
		cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

type gitService interface {
	ReadStatus(ctx context.Context, dir string) (string, error)
	CurrentBranch(ctx context.Context, dir, fallback string) string
	CommitCount(ctx context.Context, dir string) (uint, error)
	TopLevel(ctx context.Context, dir string) (string, error)
	StagedCount(ctx context.Context, dir string) (int, error)
	SigningAvailable(ctx context.Context, dir string) bool
	EnsureWorkflowFiles(ctx context.Context, dir, root string) error
	ApplySelection(ctx context.Context, dir string, selection models.StageSelection) error
	Commit(ctx context.Context, dir, message string, sign bool, extra []string) (string, error)
	Push(ctx context.Context, dir string, extra []string) (string, error)
}

var _ gitService = (*git.Service)(nil)

// Add stages every stageable change except paths matched by a glob
// pattern, along with worktree deletions. Dry-run mode computes the
// exact same selection and prints it without touching the repository.
func Add(ctx context.Context, gitSvc gitService, dir string, patterns []string, dryRun, verbose bool) error {
	raw, err := gitSvc.ReadStatus(ctx, dir)
	if err != nil {
		return err
	}

	selection, err := git.SelectForStaging(git.ParseStatus(raw), patterns)
	if err != nil {
		return err
	}

	if selection.Empty() {
		fmt.Fprintln(stderr, "nothing to stage")
		return nil
	}

	if dryRun {
		for _, path := range selection.Included {
			fmt.Fprintf(stdout, "would stage %s\n", path)
		}
		for _, path := range selection.Deletions {
			fmt.Fprintf(stdout, "would remove %s\n", path)
		}
		fmt.Fprintln(stdout, summarize(selection, true))
		return nil
	}

	if verbose {
		for _, path := range selection.Included {
			fmt.Fprintf(stderr, "staging %s\n", path)
		}
		for _, path := range selection.Deletions {
			fmt.Fprintf(stderr, "removing %s\n", path)
		}
	}

	if err := gitSvc.ApplySelection(ctx, dir, selection); err != nil {
		return err
	}
	verifyStagedCount(ctx, gitSvc, dir, selection)

	fmt.Fprintln(stdout, summarize(selection, false))
	return nil
}

func summarize(selection models.StageSelection, preview bool) string {
	verb := "staged"
	if preview {
		verb = "would stage"
	}
	summary := fmt.Sprintf("%s %d file(s)", verb, len(selection.Included))
	if len(selection.Deletions) > 0 {
		summary += fmt.Sprintf(", %d deletion(s)", len(selection.Deletions))
	}
	if selection.Excluded > 0 {
		summary += fmt.Sprintf(", %d excluded", selection.Excluded)
	}
	return summary
}

// verifyStagedCount cross-checks the selection against git's own staged
// view. User-facing numbers come from the categorized sets; a mismatch
// here only lands in the debug log. The numstat count lists a rename as
// two entries, hence the rename correction.
func verifyStagedCount(ctx context.Context, gitSvc gitService, dir string, selection models.StageSelection) {
	count, err := gitSvc.StagedCount(ctx, dir)
	if err != nil {
		return
	}
	after, err := gitSvc.ReadStatus(ctx, dir)
	if err != nil {
		return
	}
	staged := count - len(git.StagedDeletions(git.ParseStatus(after))) - git.CountRenames(after)
	if staged < 0 {
		staged = 0
	}
	if staged != len(selection.Included) {
		log.Printf("add: diff --cached reports %d staged files, selection included %d", staged, len(selection.Included))
	}
}

// Generate rebuilds the commit message scratch file from the current
// repository state and opens it in the configured editor.
func Generate(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, dir, commitType string, noNumber, noEdit, verbose bool) error {
	root, err := gitSvc.TopLevel(ctx, dir)
	if err != nil {
		return err
	}

	if err := gitSvc.EnsureWorkflowFiles(ctx, dir, root); err != nil {
		return err
	}

	if commitType == "" {
		commitType, err = SelectCommitType(models.CommitTypes, stdin, stderr)
		if err != nil {
			return err
		}
	}
	if !slices.Contains(models.CommitTypes, commitType) {
		return fmt.Errorf("unknown commit type %q (known: %s)", commitType, strings.Join(models.CommitTypes, ", "))
	}

	raw, err := gitSvc.ReadStatus(ctx, dir)
	if err != nil {
		return err
	}
	entries := git.ParseStatus(raw)
	stageable := git.StageableFiles(entries)
	deletions := git.StagedDeletions(entries)

	header := models.CommitHeader{
		Type:   commitType,
		Branch: git.FormatBranchName(models.CommitTypes, gitSvc.CurrentBranch(ctx, dir, cfg.DefaultBranch)),
	}
	if !noNumber {
		count, err := gitSvc.CommitCount(ctx, dir)
		if err != nil {
			return fmt.Errorf("counting commits: %w", err)
		}
		next := count + 1
		header.Number = &next
	}

	ignores, err := ignore.Load(root)
	if err != nil {
		return err
	}

	messagePath := filepath.Join(root, models.CommitMessageFile)
	if err := git.WriteMessage(messagePath, git.BuildMessage(header, stageable, deletions, ignores)); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(stderr, "wrote %s (%d files, %d deletions)\n", messagePath, len(stageable), len(deletions))
	}

	if noEdit {
		return nil
	}
	if err := runEditor(ctx, cfg.Editor, messagePath); err != nil {
		return fmt.Errorf("opening editor %q: %w", cfg.Editor, err)
	}
	return nil
}

// Commit commits with the scratch-file content as message, signing when
// a usable GPG key is configured.
func Commit(ctx context.Context, gitSvc gitService, dir string, extra []string, push, unsigned, dryRun, verbose bool) error {
	root, err := gitSvc.TopLevel(ctx, dir)
	if err != nil {
		return err
	}

	message, err := git.ReadMessage(filepath.Join(root, models.CommitMessageFile))
	if err != nil {
		return err
	}

	sign := false
	if !unsigned {
		sign = gitSvc.SigningAvailable(ctx, dir)
		if !sign {
			fmt.Fprintln(stderr, "warning: GPG signing unavailable, committing unsigned")
		}
	}

	extra = git.FilterCommitArgs(extra)

	if dryRun {
		if sign {
			fmt.Fprintln(stdout, "would commit (signed) with message:")
		} else {
			fmt.Fprintln(stdout, "would commit with message:")
		}
		fmt.Fprintln(stdout, message)
		if push {
			fmt.Fprintln(stdout, "would push")
		}
		return nil
	}

	out, err := gitSvc.Commit(ctx, dir, message, sign, extra)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(stdout, out)
	}

	if push {
		return Push(ctx, gitSvc, dir, nil, verbose)
	}
	return nil
}

// Push pushes the current branch, passing any extra arguments through.
func Push(ctx context.Context, gitSvc gitService, dir string, extra []string, verbose bool) error {
	if verbose {
		fmt.Fprintln(stderr, "pushing...")
	}
	out, err := gitSvc.Push(ctx, dir, extra)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(stdout, out)
	}
	return nil
}

// ListStatus prints stageable paths one per line, for scripting and
// shell completion.
func ListStatus(ctx context.Context, gitSvc gitService, dir string) error {
	raw, err := gitSvc.ReadStatus(ctx, dir)
	if err != nil {
		return err
	}
	for _, path := range git.StageableFiles(git.ParseStatus(raw)) {
		fmt.Fprintln(stdout, path)
	}
	return nil
}

// InitConfig creates the configuration file with the given editor.
func InitConfig(configPath, editor string) error {
	path, err := config.Init(configPath, editor)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "created %s\n", path)
	return nil
}

// SetEditor updates the editor in an existing configuration file.
func SetEditor(configPath, editor string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return fmt.Errorf("editor must not be empty")
	}
	path, err := config.SetEditor(configPath, editor)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "editor set to %q in %s\n", editor, path)
	return nil
}
