package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/term"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/models"
)

// PrintStatus writes a single styled status listing to w. This is the
// non-interactive rendition of the live view, used without --watch.
func PrintStatus(ctx context.Context, gitSvc statusSource, cfg *config.AppConfig, dir string, w io.Writer) error {
	raw, err := gitSvc.ReadStatus(ctx, dir)
	if err != nil {
		return err
	}
	entries := git.ParseStatus(raw)
	branch := gitSvc.CurrentBranch(ctx, dir, cfg.DefaultBranch)
	_, err = fmt.Fprint(w, renderStatic(cfg, entries, branch, terminalWidth()))
	return err
}

func renderStatic(cfg *config.AppConfig, entries []models.StatusEntry, branch string, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	branchStyle := lipgloss.NewStyle().Foreground(palette.MutedFg)

	var b strings.Builder
	b.WriteString(titleStyle.Render("lazycommit") + branchStyle.Render(" on "+branch) + "\n\n")

	if len(entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(palette.SuccessFg).Render("Clean working tree") + "\n")
		return b.String()
	}

	nameWidth := uint(maxInt(width-8, 20)) // #nosec G115 -- clamped above zero
	for _, entry := range entries {
		category, ok := git.Classify(entry)
		if !ok {
			continue
		}
		code := categoryStyle(category).Render(codeCell(entry))
		icon := ""
		if cfg.ShowIcons {
			icon = iconWithSpace(deviconForName(entry.Path, false))
		}
		name := entry.Path
		if entry.Renamed() {
			name += " (from " + entry.RenamedFrom + ")"
		}
		b.WriteString(fmt.Sprintf("  %s  %s%s\n", code, icon, truncate.String(name, nameWidth)))
	}

	b.WriteString("\n" + renderSummary(entries) + "\n")
	return b.String()
}

// codeCell shows the raw porcelain code pair for an entry.
func codeCell(entry models.StatusEntry) string {
	return string([]byte{entry.Index, entry.Worktree})
}

func categoryStyle(category models.FileCategory) lipgloss.Style {
	switch category {
	case models.CategoryUntracked:
		return lipgloss.NewStyle().Foreground(palette.Untracked)
	case models.CategoryStagedDeletion:
		return lipgloss.NewStyle().Foreground(palette.AccentDim)
	case models.CategoryUnstagedDeletion:
		return lipgloss.NewStyle().Foreground(palette.ErrorFg)
	case models.CategoryRenamed:
		return lipgloss.NewStyle().Foreground(palette.Accent)
	default:
		return lipgloss.NewStyle().Foreground(palette.WarnFg)
	}
}

func renderSummary(entries []models.StatusEntry) string {
	mutedStyle := lipgloss.NewStyle().Foreground(palette.MutedFg)
	if len(entries) == 0 {
		return mutedStyle.Render("nothing to stage")
	}
	parts := []string{fmt.Sprintf("%d stageable", len(git.StageableFiles(entries)))}
	if pending := len(git.DeletionsToStage(entries)); pending > 0 {
		parts = append(parts, fmt.Sprintf("%d deletion(s) to stage", pending))
	}
	if staged := len(git.StagedDeletions(entries)); staged > 0 {
		parts = append(parts, fmt.Sprintf("%d deletion(s) staged", staged))
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}

func renderError(err error, width int) string {
	msg := "status failed: " + err.Error()
	if width > 4 {
		msg = wrap.String(msg, width-4)
	}
	return lipgloss.NewStyle().Foreground(palette.ErrorFg).Render(msg)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
