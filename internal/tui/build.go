package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
)

// maxListedErrors caps how many page errors the summary prints
const maxListedErrors = 5

// BuildMsg is sent when the build completes
type BuildMsg struct {
	Result *site.BuildResult
	Err    error
}

// BuildProgressMsg reports how many pages have been handled
type BuildProgressMsg struct {
	Done  int
	Total int
}

// buildModel is the Bubble Tea model for the build progress display
type buildModel struct {
	spinner  spinner.Model
	status   string
	done     int
	total    int
	dryRun   bool
	complete bool
	result   *site.BuildResult
	err      error
}

// InitBuildModel creates a new build progress model
func InitBuildModel(dryRun bool) buildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return buildModel{
		spinner: s,
		status:  "Scanning content...",
		dryRun:  dryRun,
	}
}

func (m buildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BuildProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.status = fmt.Sprintf("Rendering pages (%d/%d)...", msg.Done, msg.Total)
		return m, nil

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Build failed: "+m.err.Error()) + "\n"
	}

	r := m.result
	var b strings.Builder
	verb := "Built"
	if m.dryRun {
		verb = "Would build"
	}

	if r.PagesBuilt == 0 && len(r.Errors) == 0 {
		b.WriteString(styles.SuccessStyle.Render("✓ Site is up to date"))
	} else {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s %d page(s)", verb, r.PagesBuilt)))
	}
	if n := len(r.Skipped); n > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(", %d unchanged", n)))
	}
	if n := len(r.Drafts); n > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(", %d draft(s)", n)))
	}
	if n := len(r.Removed); n > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(", %d removed", n)))
	}
	if n := len(r.Errors); n > 0 {
		b.WriteString(", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", n)))
	}
	b.WriteString("\n")

	for i, err := range r.Errors {
		if i == maxListedErrors {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ... and %d more", len(r.Errors)-i)) + "\n")
			break
		}
		b.WriteString(styles.ErrorStyle.Render("  ✗ "+err.Error()) + "\n")
	}

	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", r.EndTime.Sub(r.StartTime).Round(time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}
