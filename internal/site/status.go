package site

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdsite/internal/convert"
	"github.com/gerunddev/mdsite/internal/state"
)

// PageState describes how a page relates to its last build
type PageState string

const (
	PageUpToDate PageState = "up to date"
	PageStale    PageState = "stale"
	PageNew      PageState = "new"
	PageDraft    PageState = "draft"
	PageInvalid  PageState = "error"
)

// PageStatus is the build status of one source page
type PageStatus struct {
	Source string
	Output string
	State  PageState
	Err    error
}

// Status reports, without building, what the next build would do with
// every page
func (b *Builder) Status() ([]PageStatus, error) {
	cfg := b.config

	pages, err := ScanDirectory(cfg.ContentDir, ".md", cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}

	templateHash, err := state.ComputeHash(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to hash template: %w", err)
	}
	// A new template or base path changes every page
	siteChanged := templateHash != b.state.TemplateHash || cfg.BasePath != b.state.BasePath

	statuses := make([]PageStatus, 0, len(pages))
	for _, src := range pages {
		ps := PageStatus{Source: src}
		ps.Output, ps.Err = b.OutputFor(src)
		if ps.Err == nil {
			ps.State, ps.Err = b.pageState(src, ps.Output, siteChanged)
		}
		if ps.Err != nil {
			ps.State = PageInvalid
		}
		statuses = append(statuses, ps)
	}
	return statuses, nil
}

func (b *Builder) pageState(src, dest string, siteChanged bool) (PageState, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	meta, _, err := convert.ExtractFrontMatter(string(content))
	if err != nil {
		return "", err
	}
	if meta.Draft {
		return PageDraft, nil
	}

	if _, ok := b.state.Lookup(src); !ok || !fileExists(dest) {
		return PageNew, nil
	}
	if siteChanged {
		return PageStale, nil
	}

	changed, err := b.state.HasChanged(src)
	if err != nil {
		return "", err
	}
	if changed {
		return PageStale, nil
	}
	return PageUpToDate, nil
}
