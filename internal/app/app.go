// Package app implements the interactive status view: a live table of the
// repository's pending changes, optionally refreshed by a filesystem watcher.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/git"
	log "github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
	"github.com/chmouel/lazycommit/internal/watch"
)

var palette = theme.Default()

const statusColumnWidth = 18

// statusSource is the slice of the git service the status view reads from.
type statusSource interface {
	ReadStatus(ctx context.Context, dir string) (string, error)
	CurrentBranch(ctx context.Context, dir, fallback string) string
	CommonDir(ctx context.Context, dir string) (string, error)
	TopLevel(ctx context.Context, dir string) (string, error)
}

var _ statusSource = (*git.Service)(nil)

type statusLoadedMsg struct {
	entries []models.StatusEntry
	branch  string
	err     error
}

type repoChangedMsg struct{}

// Model is the bubbletea model behind `lazycommit status`.
type Model struct {
	cfg      *config.AppConfig
	gitSvc   statusSource
	dir      string
	watching bool

	ctx    context.Context
	cancel context.CancelFunc

	table   table.Model
	entries []models.StatusEntry
	branch  string
	loadErr error

	watcher *watch.RepoWatcher

	windowWidth  int
	windowHeight int
	quitting     bool
}

// NewModel creates the status view model. The watcher only starts when
// watching is true; without it the view still refreshes on demand.
func NewModel(cfg *config.AppConfig, gitSvc statusSource, dir string, watching bool) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	columns := []table.Column{
		{Title: "File", Width: 50},
		{Title: "Status", Width: statusColumnWidth},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(palette.MutedFg).
		Bold(true)
	s.Cell = s.Cell.Foreground(palette.TextFg)
	s.Selected = s.Selected.
		Foreground(palette.SelectedFg).
		Background(palette.Accent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		cfg:      cfg,
		gitSvc:   gitSvc,
		dir:      dir,
		watching: watching,
		ctx:      ctx,
		cancel:   cancel,
		table:    t,
		branch:   cfg.DefaultBranch,
	}
}

// Init loads the first status snapshot and arms the watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadStatus()}
	if m.watching {
		if cmd := m.startWatcher(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		raw, err := m.gitSvc.ReadStatus(m.ctx, m.dir)
		if err != nil {
			return statusLoadedMsg{err: err}
		}
		branch := m.gitSvc.CurrentBranch(m.ctx, m.dir, m.cfg.DefaultBranch)
		return statusLoadedMsg{entries: git.ParseStatus(raw), branch: branch}
	}
}

func (m *Model) startWatcher() tea.Cmd {
	if m.watcher != nil && m.watcher.Started {
		return nil
	}
	commonDir, err := m.gitSvc.CommonDir(m.ctx, m.dir)
	if err != nil {
		m.debugf("watch: resolving common dir: %v", err)
		return nil
	}
	topLevel, err := m.gitSvc.TopLevel(m.ctx, m.dir)
	if err != nil {
		m.debugf("watch: resolving top level: %v", err)
		return nil
	}
	m.watcher = watch.NewRepoWatcher(commonDir, topLevel, log.Printf)
	started, err := m.watcher.Start()
	if err != nil {
		m.debugf("watch: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return repoChangedMsg{}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.loadStatus()
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.table.MoveUp(1)
			case tea.MouseButtonWheelDown:
				m.table.MoveDown(1)
			}
		}
		return m, nil

	case statusLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.branch = msg.branch
			m.refreshRows()
		}
		return m, nil

	case repoChangedMsg:
		if m.watcher == nil {
			return m, nil
		}
		m.watcher.ResetWaiting()
		cmds := []tea.Cmd{m.waitForChange()}
		if m.watcher.ShouldRefresh(time.Now()) {
			cmds = append(cmds, m.loadStatus())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height

	fileWidth := maxInt(width-statusColumnWidth-6, 20)
	m.table.SetColumns([]table.Column{
		{Title: "File", Width: fileWidth},
		{Title: "Status", Width: statusColumnWidth},
	})
	m.table.SetWidth(width)
	// Title, blank line, table header, summary and hint lines.
	m.table.SetHeight(maxInt(height-6, 3))
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, entry := range m.entries {
		category, ok := git.Classify(entry)
		if !ok {
			continue
		}
		name := entry.Path
		if m.cfg.ShowIcons {
			name = iconWithSpace(deviconForName(entry.Path, false)) + name
		}
		if entry.Renamed() {
			name += fmt.Sprintf(" (from %s)", entry.RenamedFrom)
		}
		rows = append(rows, table.Row{name, category.String()})
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		m.table.SetCursor(maxInt(len(rows)-1, 0))
	}
}

// View renders the full screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(renderError(m.loadErr, m.windowWidth))
	case len(m.entries) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(palette.SuccessFg).Render("Clean working tree"))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	b.WriteString(renderSummary(m.entries))
	b.WriteString("\n")
	b.WriteString(m.renderHints())
	return b.String()
}

func (m *Model) renderTitle() string {
	titleStyle := lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	branchStyle := lipgloss.NewStyle().Foreground(palette.MutedFg)
	title := titleStyle.Render("lazycommit") + branchStyle.Render(" on "+m.branch)
	if m.watcher != nil && m.watcher.Started {
		title += lipgloss.NewStyle().Foreground(palette.BorderDim).Render("  (watching)")
	}
	return title
}

func (m *Model) renderHints() string {
	keyStyle := lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(palette.MutedFg)
	hint := func(key, label string) string {
		return keyStyle.Render(key) + " " + labelStyle.Render(label)
	}
	return strings.Join([]string{
		hint("↑/↓", "move"),
		hint("r", "refresh"),
		hint("q", "quit"),
	}, "  ")
}

// Close releases the watcher and the model context. Safe to call twice.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.cancel()
}

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// Run launches the live status view and blocks until the user quits.
func Run(cfg *config.AppConfig, gitSvc statusSource, dir string, watching bool) error {
	model := NewModel(cfg, gitSvc, dir, watching)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	model.Close()
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
