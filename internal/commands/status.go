package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
	"github.com/spf13/pflag"
)

// Status displays what the next build would do with every page
func Status(args []string) {
	var sf siteFlags
	flags := pflag.NewFlagSet("status", pflag.ExitOnError)
	sf.register(flags)
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		fail("Configuration not found", err)
	}

	if !isInteractive() {
		data, err := gatherStatus(cfg)
		if err != nil {
			fail("Error reading status", err)
		}
		printStatus(data)
		return
	}

	// Bubble Tea program (will be set after creating sendStatusData)
	var p *tea.Program

	sendStatusData := func() {
		data, err := gatherStatus(cfg)
		p.Send(tui.StatusMsg{Data: data, Err: err})
	}

	diffFunc := func(src string) (string, error) {
		st, err := loadState(cfg)
		if err != nil {
			return "", err
		}
		return diff.Generate(site.NewBuilder(cfg, st), src, diff.FormatRendered)
	}

	m := tui.InitStatusModel(diffFunc, sendStatusData)
	p = tea.NewProgram(m, tea.WithInput(os.Stdin))

	// Send initial status data
	go sendStatusData()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// gatherStatus reloads state and classifies every page
func gatherStatus(cfg *config.Config) (*tui.StatusData, error) {
	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("error loading state: %w", err)
	}

	pages, err := site.NewBuilder(cfg, st).Status()
	if err != nil {
		return nil, err
	}

	return &tui.StatusData{
		ContentDir:  cfg.ContentDir,
		OutputDir:   cfg.OutputDir,
		BasePath:    cfg.BasePath,
		LastBuildID: st.LastBuildID,
		LastBuild:   st.LastBuild,
		Pages:       pages,
	}, nil
}

func printStatus(data *tui.StatusData) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("PAGE", "OUTPUT", "STATE", "ERROR")
	for i, row := range tui.PageRows(data) {
		problem := ""
		if err := data.Pages[i].Err; err != nil {
			problem = err.Error()
		}
		t.Row(row[0], row[1], row[2], problem)
	}
	fmt.Println(t.Render())

	if data.LastBuild.IsZero() {
		fmt.Println("\nNever built")
		return
	}
	fmt.Printf("\nLast build %s at %s\n", data.LastBuildID, data.LastBuild.Format("2006-01-02 15:04:05"))
}
