package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// ParseLogFile reads the last N lines from the log file and extracts build info
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}
	return ParseLogLines(strings.Split(string(content), "\n"), maxLines)
}

// ParseLogLines keeps the last N lines and extracts the time and page count
// of the most recent completed build
func ParseLogLines(lines []string, maxLines int) ([]string, time.Time, int) {
	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastBuild time.Time
	pagesBuilt := 0

	// Look for most recent "build completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "build completed") {
			// Format: 2025-11-27 14:11:57 INFO build completed
			if len(line) > 19 {
				if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
					lastBuild = t
				}
			}

			if idx := strings.Index(line, "pages_built="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "pages_built=%d", &pagesBuilt) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastBuild, pagesBuilt
}

// logTail keeps the most recent lines written to it
type logTail struct {
	mu    sync.Mutex
	limit int
	lines []string
	part  string
}

func newLogTail(limit int) *logTail {
	return &logTail{limit: limit}
}

func (t *logTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := t.part + string(p)
	parts := strings.Split(text, "\n")
	t.part = parts[len(parts)-1]
	t.lines = append(t.lines, parts[:len(parts)-1]...)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines
func (t *logTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// siteFlags are the flags shared by every command that loads the site config
type siteFlags struct {
	configPath string
	basePath   string
	verbose    bool
}

func (f *siteFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.configPath, "config", "c", "", "Config file (default: mdsite.json or the user config)")
	flags.StringVarP(&f.basePath, "base-path", "b", "", "Override the base path the site is served under")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log skipped pages")
}

// loadConfig loads the configuration, applying flag overrides
func (f *siteFlags) loadConfig() (*config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	if f.basePath != "" {
		cfg.BasePath = f.basePath
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

func (f *siteFlags) level() log.Level {
	if f.verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// setupLogger writes structured logs to the configured log file and to
// extra, if any. The returned cleanup closes the log file.
func setupLogger(cfg *config.Config, level log.Level, extra io.Writer) (*logger.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
		cleanup = func() { f.Close() }
	}
	if extra != nil {
		writers = append(writers, extra)
	}

	if len(writers) == 0 {
		return logger.Discard(), cleanup, nil
	}
	l := logger.NewMultiLogger(writers...)
	l.SetLevel(level)
	return l, cleanup, nil
}

func loadState(cfg *config.Config) (*state.State, error) {
	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("error loading state: %w", err)
	}
	return st, nil
}

// isInteractive reports whether stdout is a terminal that can host the TUI
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func fail(msg string, err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg+": "+err.Error()))
	os.Exit(1)
}
