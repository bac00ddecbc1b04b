package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/convert"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/google/uuid"
)

// PageError ties a render failure to its source page
type PageError struct {
	Source string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Builder renders a content directory into a static site
type Builder struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger

	// DryRun renders pages without touching the output directory
	DryRun bool
	// Force regenerates pages even when their sources are unchanged
	Force bool
	// Clean empties the output directory before building
	Clean bool
	// OnProgress is called after every page with the number of pages handled so far
	OnProgress func(done, total int)
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config, st *state.State) *Builder {
	return &Builder{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
		Clean:  cfg.Clean,
	}
}

// SetLogger sets the logger used during builds
func (b *Builder) SetLogger(l *logger.Logger) {
	b.log = l
}

// BuildResult represents the result of a build
type BuildResult struct {
	BuildID    string
	PagesBuilt int
	Pages      []string
	Skipped    []string
	Drafts     []string
	Removed    []string
	Errors     []error
	StartTime  time.Time
	EndTime    time.Time
}

// String returns a human-readable summary of the build result
func (r *BuildResult) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %d pages built, %d unchanged, %d drafts, %d errors (took %v)",
		r.PagesBuilt,
		len(r.Skipped),
		len(r.Drafts),
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}

// Build renders every page of the site. Page failures are collected in the
// result; the returned error is reserved for failures of the build itself.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	result := &BuildResult{
		BuildID:   uuid.New().String(),
		StartTime: time.Now(),
	}
	cfg := b.config
	b.log.BuildStarted(result.BuildID, cfg.ContentDir, cfg.OutputDir)

	template, err := b.loadTemplate()
	if err != nil {
		return nil, err
	}
	templateHash, err := state.ComputeHash(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to hash template: %w", err)
	}

	rebuildAll := b.Force || templateHash != b.state.TemplateHash || cfg.BasePath != b.state.BasePath
	// Outputs of the previous build, kept across a full rebuild so pages
	// deleted since then can still be removed
	previous := b.state.Snapshot()
	if b.Clean && !b.DryRun {
		if err := ClearDir(cfg.OutputDir); err != nil {
			return nil, fmt.Errorf("failed to clear output: %w", err)
		}
		b.log.OutputCleared(cfg.OutputDir)
		rebuildAll = true
	}
	if rebuildAll && !b.DryRun {
		b.state.Reset()
	}

	if !b.DryRun {
		if err := b.copyStatic(); err != nil {
			return nil, err
		}
	}

	pages, err := ScanDirectory(cfg.ContentDir, ".md", cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}
	result.Pages = pages

	b.renderAll(ctx, pages, template, rebuildAll, result)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !b.DryRun {
		b.removeDeleted(pages, previous, result)
		b.state.TemplateHash = templateHash
		b.state.BasePath = cfg.BasePath
	}

	result.EndTime = time.Now()
	if !b.DryRun {
		b.state.RecordBuild(result.BuildID, result.EndTime)
	}
	b.log.BuildCompleted(result.BuildID, result.PagesBuilt, len(result.Skipped)+len(result.Drafts), len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

type pageOutcome int

const (
	pageBuilt pageOutcome = iota
	pageUnchanged
	pageDraft
	pageFailed
)

// renderAll fans pages out to the configured number of workers
func (b *Builder) renderAll(ctx context.Context, pages []string, template string, rebuildAll bool, result *BuildResult) {
	workers := b.config.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		done int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				outcome, err := b.buildPage(src, template, rebuildAll)

				mu.Lock()
				switch outcome {
				case pageBuilt:
					result.PagesBuilt++
				case pageUnchanged:
					result.Skipped = append(result.Skipped, src)
				case pageDraft:
					result.Drafts = append(result.Drafts, src)
				case pageFailed:
					result.Errors = append(result.Errors, &PageError{Source: src, Err: err})
				}
				done++
				if b.OnProgress != nil {
					b.OnProgress(done, len(pages))
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, src := range pages {
		select {
		case jobs <- src:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
}

func (b *Builder) buildPage(src, template string, rebuildAll bool) (pageOutcome, error) {
	dest, err := OutputPath(b.config.ContentDir, b.config.OutputDir, src)
	if err != nil {
		b.log.PageError(src, err)
		return pageFailed, err
	}

	if !rebuildAll {
		changed, err := b.state.HasChanged(src)
		if err != nil {
			b.log.StateError("check "+src, err)
		} else if !changed && fileExists(dest) {
			b.log.PageSkipped(src, "unchanged")
			return pageUnchanged, nil
		}
	}

	page, doc, err := b.renderWith(src, template)
	if err != nil {
		b.log.PageError(src, err)
		return pageFailed, err
	}

	if doc.Meta.Draft {
		b.log.PageSkipped(src, "draft")
		if !b.DryRun {
			b.state.Forget(src)
			if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
				b.log.PageError(src, err)
			}
		}
		return pageDraft, nil
	}

	if b.DryRun {
		return pageBuilt, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		b.log.PageError(src, err)
		return pageFailed, err
	}
	if err := os.WriteFile(dest, []byte(page), 0644); err != nil {
		b.log.PageError(src, err)
		return pageFailed, err
	}
	if err := b.state.Update(src, dest); err != nil {
		b.log.StateError("update "+src, err)
	}

	b.log.PageGenerated(src, dest)
	return pageBuilt, nil
}

// removeDeleted removes the output of pages from the previous build that no
// longer exist
func (b *Builder) removeDeleted(pages []string, previous map[string]state.FileState, result *BuildResult) {
	current := make(map[string]bool, len(pages))
	for _, p := range pages {
		current[p] = true
	}

	var stale []string
	for src := range previous {
		if !current[src] {
			stale = append(stale, src)
		}
	}
	sort.Strings(stale)

	for _, src := range stale {
		if out := previous[src].Output; out != "" {
			if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
				result.Errors = append(result.Errors, &PageError{Source: src, Err: err})
				continue
			}
		}
		b.state.Forget(src)
		result.Removed = append(result.Removed, src)
		b.log.PageSkipped(src, "removed")
	}
}

func (b *Builder) copyStatic() error {
	dir := b.config.StaticDir
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	n, err := CopyDir(dir, b.config.OutputDir)
	if err != nil {
		return err
	}
	b.log.StaticCopied(dir, b.config.OutputDir, n)
	return nil
}

func (b *Builder) loadTemplate() (string, error) {
	data, err := os.ReadFile(b.config.Template)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// RenderPage renders a single markdown file into a full HTML page
func (b *Builder) RenderPage(src string) (string, *convert.Document, error) {
	template, err := b.loadTemplate()
	if err != nil {
		return "", nil, err
	}
	return b.renderWith(src, template)
}

func (b *Builder) renderWith(src, template string) (string, *convert.Document, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := convert.RenderDocument(string(content))
	if err != nil {
		return "", nil, err
	}

	return convert.ApplyTemplate(template, doc, b.config.BasePath), doc, nil
}

// OutputFor returns where src is written by Build
func (b *Builder) OutputFor(src string) (string, error) {
	return OutputPath(b.config.ContentDir, b.config.OutputDir, src)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
