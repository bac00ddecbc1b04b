package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/gerunddev/mdsite/internal/tui"
	"github.com/spf13/pflag"
)

const dashboardLogLines = 20

// Watch rebuilds the site on an interval until interrupted
func Watch(args []string) {
	var (
		sf       siteFlags
		interval time.Duration
	)
	flags := pflag.NewFlagSet("watch", pflag.ExitOnError)
	sf.register(flags)
	flags.DurationVarP(&interval, "interval", "i", 0, "Rebuild interval (default from config)")
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		fail("Error loading config", err)
	}
	if interval > 0 {
		cfg.Interval = interval
	}
	st, err := loadState(cfg)
	if err != nil {
		fail("Error loading state", err)
	}

	interactive := isInteractive()
	tail := newLogTail(dashboardLogLines)
	var extra io.Writer = tail
	if !interactive {
		extra = io.MultiWriter(tail, os.Stderr)
	}
	log, cleanup, err := setupLogger(cfg, sf.level(), extra)
	if err != nil {
		fail("Error setting up logging", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{
		cfg:     cfg,
		st:      st,
		log:     log,
		builder: site.NewBuilder(cfg, st),
		tail:    tail,
		started: time.Now(),
	}
	w.builder.SetLogger(log)

	if !interactive {
		w.run(ctx, nil)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.InitWatchModel(), tea.WithInput(os.Stdin))
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx, func() {
			p.Send(tui.WatchMsg{Data: w.snapshot()})
		})
		// Interrupted by a signal rather than the dashboard
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		cancel()
		<-done
		os.Exit(1)
	}

	cancel()
	<-done
	log.Info("watch stopped")
}

// watcher runs the periodic build loop
type watcher struct {
	cfg     *config.Config
	st      *state.State
	log     *logger.Logger
	builder *site.Builder
	tail    *logTail
	started time.Time

	mu     sync.Mutex
	builds int
	errors int
}

// run builds once, then again on every tick until ctx is done. notify is
// called after each build.
func (w *watcher) run(ctx context.Context, notify func()) {
	w.log.Info("watch started",
		"content_dir", w.cfg.ContentDir,
		"interval", w.cfg.Interval)

	w.buildOnce(ctx)
	// Only the first build may clear the output directory
	w.builder.Clean = false
	if notify != nil {
		notify()
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.buildOnce(ctx)
			if notify != nil {
				notify()
			}
		case <-ctx.Done():
			if err := w.st.Save(w.cfg.StateFile); err != nil {
				w.log.StateError("save on shutdown", err)
			}
			return
		}
	}
}

func (w *watcher) buildOnce(ctx context.Context) {
	result, err := w.builder.Build(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("build failed", "error", err)
		}
		return
	}

	w.mu.Lock()
	w.builds++
	w.errors = len(result.Errors)
	w.mu.Unlock()

	if err := w.st.Save(w.cfg.StateFile); err != nil {
		w.log.StateError("save", err)
	}
}

// snapshot gathers the dashboard data
func (w *watcher) snapshot() *tui.WatchData {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := &tui.WatchData{
		ContentDir: w.cfg.ContentDir,
		OutputDir:  w.cfg.OutputDir,
		Interval:   w.cfg.Interval,
		StartTime:  w.started,
		Builds:     w.builds,
		Errors:     w.errors,
	}

	if w.cfg.LogFile != "" {
		data.LogLines, data.LastBuildTime, data.PagesBuilt = ParseLogFile(w.cfg.LogFile, dashboardLogLines)
	} else {
		data.LogLines, data.LastBuildTime, data.PagesBuilt = ParseLogLines(w.tail.Lines(), dashboardLogLines)
	}
	return data
}
