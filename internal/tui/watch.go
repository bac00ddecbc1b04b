package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/mdsite/internal/styles"
)

// WatchData holds the watch loop status
type WatchData struct {
	ContentDir    string
	OutputDir     string
	Interval      time.Duration
	StartTime     time.Time
	Builds        int
	LastBuildTime time.Time
	PagesBuilt    int
	Errors        int
	LogLines      []string
}

// WatchMsg is sent when watch data is ready
type WatchMsg struct {
	Data *WatchData
	Err  error
}

// TickMsg triggers a periodic redraw
type TickMsg time.Time

type watchModel struct {
	data  *WatchData
	err   error
	ready bool
}

// InitWatchModel creates a new watch dashboard model
func InitWatchModel() watchModel {
	return watchModel{}
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case TickMsg:
		// Redraw so relative times stay current
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case WatchMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("mdsite watch"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	b.WriteString(styles.LabelStyle.Render("Watching"))
	b.WriteString("\n")
	uptime := time.Since(m.data.StartTime).Round(time.Second)
	b.WriteString(fmt.Sprintf("  Content:  %s\n", styles.ValueStyle.Render(m.data.ContentDir)))
	b.WriteString(fmt.Sprintf("  Output:   %s\n", styles.ValueStyle.Render(m.data.OutputDir)))
	b.WriteString(fmt.Sprintf("  Interval: %s\n", styles.ValueStyle.Render(m.data.Interval.String())))
	b.WriteString(fmt.Sprintf("  Uptime:   %s\n", styles.ValueStyle.Render(uptime.String())))
	b.WriteString("\n")

	b.WriteString(styles.LabelStyle.Render("Builds"))
	b.WriteString("\n")
	if m.data.LastBuildTime.IsZero() {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HelpStyle.Render("No build completed yet")))
	} else {
		since := time.Since(m.data.LastBuildTime).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Last build:  %s ago\n", styles.ValueStyle.Render(since.String())))
		b.WriteString(fmt.Sprintf("  Pages built: %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", m.data.PagesBuilt))))
		b.WriteString(fmt.Sprintf("  Builds run:  %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", m.data.Builds))))
		if m.data.Errors > 0 {
			b.WriteString(fmt.Sprintf("  %s\n", styles.ErrorStyle.Render(fmt.Sprintf("✗ %d page error(s)", m.data.Errors))))
		}
	}
	b.WriteString("\n")

	b.WriteString(styles.LabelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			if line == "" {
				continue
			}
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(styles.HelpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("q quit • rebuild every %s", m.data.Interval)))
	b.WriteString("\n")

	return b.String()
}

// tick returns a command that sends a TickMsg
func tick() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(time.Now())
	}
}
