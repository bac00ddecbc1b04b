package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Format represents the output format for diffs
type Format int

const (
	// FormatRendered renders diffs through glamour for the terminal (default)
	FormatRendered Format = iota
	// FormatPlain returns the raw unified diff
	FormatPlain
)

// Generate diffs the page currently in the output directory against a
// fresh render of src. An empty string means the output is up to date.
func Generate(b *site.Builder, src string, format Format) (string, error) {
	dest, err := b.OutputFor(src)
	if err != nil {
		return "", err
	}

	current, err := os.ReadFile(dest)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read output: %w", err)
	}

	page, doc, err := b.RenderPage(src)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", src, err)
	}
	if doc.Meta.Draft {
		// Drafts are never published, so the fresh side is empty
		page = ""
	}

	name := filepath.Base(dest)
	unified := Unified(name+" (current)", name+" (rendered)", string(current), page)
	if unified == "" {
		return "", nil
	}

	switch format {
	case FormatPlain:
		return unified, nil
	case FormatRendered:
		return render(unified), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}
}

// Unified returns a unified diff of two pages, one tag per line
func Unified(oldName, newName, oldPage, newPage string) string {
	before := SplitTags(oldPage)
	after := SplitTags(newPage)
	if before == after {
		return ""
	}

	edits := myers.ComputeEdits(span.URIFromPath(oldName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, before, edits))
}

// SplitTags breaks adjacent tags onto their own lines so single-line pages
// produce readable diffs
func SplitTags(page string) string {
	if page == "" {
		return ""
	}
	page = strings.ReplaceAll(page, "><", ">\n<")
	if !strings.HasSuffix(page, "\n") {
		page += "\n"
	}
	return page
}

func render(unified string) string {
	// Wrap in diff code fence for syntax highlighting (+ in green, - in red)
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}
	return rendered
}
