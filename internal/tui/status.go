package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/muesli/reflow/truncate"
)

const (
	pageColumnWidth   = 40
	outputColumnWidth = 40
	stateColumnWidth  = 12
)

// StatusData holds all the information for the status display
type StatusData struct {
	ContentDir  string
	OutputDir   string
	BasePath    string
	LastBuildID string
	LastBuild   time.Time
	Pages       []site.PageStatus
}

// StatusMsg is sent when status data is ready
type StatusMsg struct {
	Data *StatusData
	Err  error
}

// DiffMsg is sent when a diff preview is ready
type DiffMsg struct {
	Content string
	Err     error
}

// RefreshStatusMsg triggers a status refresh
type RefreshStatusMsg struct{}

type statusModel struct {
	spinner     spinner.Model
	table       table.Model
	viewport    viewport.Model
	data        *StatusData
	err         error
	scanning    bool
	ready       bool
	showingDiff bool
	selected    *site.PageStatus
	diffFunc    func(src string) (string, error)
	refreshFunc func()
}

// InitStatusModel creates a new status display model. diffFunc previews the
// selected page and refreshFunc rescans the site.
func InitStatusModel(diffFunc func(string) (string, error), refreshFunc func()) statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	columns := []table.Column{
		{Title: "Page", Width: pageColumnWidth},
		{Title: "Output", Width: outputColumnWidth},
		{Title: "State", Width: stateColumnWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Amber)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return statusModel{
		spinner:     s,
		table:       t,
		viewport:    vp,
		scanning:    true,
		diffFunc:    diffFunc,
		refreshFunc: refreshFunc,
	}
}

func (m statusModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-14, 5))
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingDiff {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showingDiff = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "r":
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.refresh())
		case "enter", "d":
			if m.data == nil || m.diffFunc == nil {
				return m, nil
			}
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.data.Pages) {
				return m, nil
			}
			m.selected = &m.data.Pages[idx]
			m.showingDiff = true
			m.viewport.SetContent(styles.DimStyle.Render("Rendering..."))
			return m, m.loadDiff(m.selected.Source)
		}

	case DiffMsg:
		content := msg.Content
		if msg.Err != nil {
			content = styles.ErrorStyle.Render("✗ " + msg.Err.Error())
		} else if content == "" {
			content = styles.SuccessStyle.Render("✓ Output is up to date")
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return m, nil

	case RefreshStatusMsg:
		if m.refreshFunc != nil {
			go m.refreshFunc()
		}
		return m, nil

	case StatusMsg:
		m.scanning = false
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		if m.data != nil {
			m.table.SetRows(PageRows(m.data))
		}
		return m, nil

	case spinner.TickMsg:
		if m.scanning {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// PageRows builds the table rows for the pages of a site, with paths
// relative to the content and output directories
func PageRows(data *StatusData) []table.Row {
	rows := make([]table.Row, 0, len(data.Pages))
	for _, p := range data.Pages {
		state := string(p.State)
		rows = append(rows, table.Row{
			truncate.StringWithTail(relPath(data.ContentDir, p.Source), pageColumnWidth, "…"),
			truncate.StringWithTail(relPath(data.OutputDir, p.Output), outputColumnWidth, "…"),
			state,
		})
	}
	return rows
}

func relPath(base, path string) string {
	if path == "" {
		return "-"
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// CountStates tallies pages by state
func CountStates(pages []site.PageStatus) map[site.PageState]int {
	counts := make(map[site.PageState]int)
	for _, p := range pages {
		counts[p.State]++
	}
	return counts
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("mdsite status"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.scanning {
		b.WriteString(fmt.Sprintf("%s Scanning content...\n", m.spinner.View()))
		return b.String()
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingDiff && m.selected != nil {
		b.WriteString(styles.LabelStyle.Render("Diff Preview: " + relPath(m.data.ContentDir, m.selected.Source)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	// Configuration
	b.WriteString(styles.LabelStyle.Render("Site"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Content:   %s\n", styles.ValueStyle.Render(m.data.ContentDir)))
	b.WriteString(fmt.Sprintf("  Output:    %s\n", styles.ValueStyle.Render(m.data.OutputDir)))
	b.WriteString(fmt.Sprintf("  Base path: %s\n", styles.ValueStyle.Render(m.data.BasePath)))
	if m.data.LastBuild.IsZero() {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HelpStyle.Render("Never built")))
	} else {
		since := time.Since(m.data.LastBuild).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Last build: %s ago\n", styles.ValueStyle.Render(since.String())))
	}
	b.WriteString("\n")

	// Summary
	b.WriteString(styles.LabelStyle.Render("Pages"))
	b.WriteString("\n")
	counts := CountStates(m.data.Pages)
	pending := counts[site.PageStale] + counts[site.PageNew]
	if pending == 0 && counts[site.PageInvalid] == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", styles.SuccessStyle.Render(fmt.Sprintf("✓ %d page(s) up to date", counts[site.PageUpToDate]))))
	} else {
		for _, st := range []site.PageState{site.PageUpToDate, site.PageStale, site.PageNew, site.PageDraft, site.PageInvalid} {
			if counts[st] > 0 {
				b.WriteString(fmt.Sprintf("  %s %d\n", styles.PageState(string(st)), counts[st]))
			}
		}
	}
	b.WriteString("\n")

	if len(m.data.Pages) > 0 {
		b.WriteString(styles.TableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter/d diff • r refresh • q quit"))
	} else {
		b.WriteString(styles.HelpStyle.Render("No pages found • r refresh • q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m statusModel) loadDiff(src string) tea.Cmd {
	return func() tea.Msg {
		content, err := m.diffFunc(src)
		return DiffMsg{Content: content, Err: err}
	}
}

func (m statusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshStatusMsg{}
	}
}
