package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a site build
func (l *Logger) BuildStarted(buildID, contentDir, outputDir string) {
	l.Info("build started",
		"build_id", buildID,
		"content_dir", contentDir,
		"output_dir", outputDir)
}

// BuildCompleted logs the end of a site build
func (l *Logger) BuildCompleted(buildID string, pagesBuilt, skipped, errors int, duration time.Duration) {
	l.Info("build completed",
		"build_id", buildID,
		"pages_built", pagesBuilt,
		"skipped", skipped,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// PageGenerated logs a page written to the output directory
func (l *Logger) PageGenerated(source, dest string) {
	l.Info("page generated",
		"source", source,
		"dest", dest)
}

// PageSkipped logs when a page is not regenerated
func (l *Logger) PageSkipped(source, reason string) {
	l.Debug("page skipped",
		"source", source,
		"reason", reason)
}

// PageError logs a page that failed to render
func (l *Logger) PageError(source string, err error) {
	l.Error("page failed",
		"source", source,
		"error", err)
}

// StaticCopied logs the static asset copy
func (l *Logger) StaticCopied(from, to string, files int) {
	l.Info("static copied",
		"from", from,
		"to", to,
		"files", files)
}

// OutputCleared logs the removal of previous output
func (l *Logger) OutputCleared(dir string) {
	l.Info("output cleared",
		"dir", dir)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(contentDir, outputDir, basePath string) {
	l.Debug("config loaded",
		"content_dir", contentDir,
		"output_dir", outputDir,
		"base_path", basePath)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}
