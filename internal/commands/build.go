package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
	"github.com/spf13/pflag"
)

// Build performs a one-shot site build
func Build(args []string) {
	var (
		sf      siteFlags
		dryRun  bool
		force   bool
		noClean bool
	)
	flags := pflag.NewFlagSet("build", pflag.ExitOnError)
	sf.register(flags)
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "Render pages without writing the output directory")
	flags.BoolVarP(&force, "force", "f", false, "Rebuild every page even when unchanged")
	flags.BoolVar(&noClean, "no-clean", false, "Keep previous output instead of clearing it")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdsite build [flags] [base-path]\n\nFlags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}
	// The base path may also be given positionally
	if flags.NArg() > 0 && sf.basePath == "" {
		sf.basePath = flags.Arg(0)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		fail("Error loading config", err)
	}
	st, err := loadState(cfg)
	if err != nil {
		fail("Error loading state", err)
	}

	interactive := isInteractive()
	var extra io.Writer
	if !interactive {
		extra = os.Stderr
	}
	log, cleanup, err := setupLogger(cfg, sf.level(), extra)
	if err != nil {
		fail("Error setting up logging", err)
	}
	defer cleanup()
	log.ConfigLoaded(cfg.ContentDir, cfg.OutputDir, cfg.BasePath)

	builder := site.NewBuilder(cfg, st)
	builder.SetLogger(log)
	builder.DryRun = dryRun
	builder.Force = force
	if noClean {
		builder.Clean = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *site.BuildResult
	if interactive {
		result, err = buildWithProgress(ctx, builder, dryRun)
	} else {
		result, err = builder.Build(ctx)
	}
	if err != nil {
		if !interactive {
			fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Build failed: "+err.Error()))
		}
		os.Exit(1)
	}

	if !dryRun {
		if err := st.Save(cfg.StateFile); err != nil {
			fail("Error saving state", err)
		}
	}

	if !interactive {
		fmt.Println(result.String())
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// buildWithProgress runs the build behind the spinner UI
func buildWithProgress(ctx context.Context, builder *site.Builder, dryRun bool) (*site.BuildResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.InitBuildModel(dryRun), tea.WithInput(os.Stdin))
	builder.OnProgress = func(done, total int) {
		p.Send(tui.BuildProgressMsg{Done: done, Total: total})
	}

	type outcome struct {
		result *site.BuildResult
		err    error
	}
	finished := make(chan outcome, 1)

	go func() {
		result, err := builder.Build(ctx)
		finished <- outcome{result, err}
		p.Send(tui.BuildMsg{Result: result, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-finished
		return nil, err
	}

	// The user may quit before the build is done
	cancel()
	out := <-finished
	return out.result, out.err
}
