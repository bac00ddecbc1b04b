package convert

import (
	"errors"
	"strings"
)

// Template placeholders
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrMissingTitle is returned when a document does not open with a level 1 heading
var ErrMissingTitle = errors.New("expecting header 1 as first line")

// Document is a rendered markdown page
type Document struct {
	Title string
	Body  string
	Meta  Meta
}

// ExtractTitle returns the text of the level 1 heading on the first non-blank line
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "# ") {
			return "", ErrMissingTitle
		}
		return strings.TrimSpace(line[2:]), nil
	}
	return "", ErrMissingTitle
}

// RenderDocument renders a markdown page into its title and body HTML.
// Front matter, when present, is removed first and returned in Meta.
func RenderDocument(markdown string) (*Document, error) {
	meta, body, err := ExtractFrontMatter(markdown)
	if err != nil {
		return nil, err
	}

	title, err := ExtractTitle(body)
	if err != nil {
		return nil, err
	}
	if meta.Title != "" {
		title = meta.Title
	}

	root, err := MarkdownToHTMLNode(body)
	if err != nil {
		return nil, err
	}
	html, err := root.Render()
	if err != nil {
		return nil, err
	}

	return &Document{Title: title, Body: html, Meta: meta}, nil
}

// ApplyTemplate fills the template placeholders and points root-relative
// href and src attributes at basePath
func ApplyTemplate(template string, doc *Document, basePath string) string {
	page := strings.ReplaceAll(template, TitlePlaceholder, doc.Title)
	page = strings.ReplaceAll(page, ContentPlaceholder, doc.Body)
	return RewriteBasePath(page, basePath)
}

// RewriteBasePath replaces the leading / of root-relative links with basePath.
// Protocol-relative links (//host/path) are left alone.
func RewriteBasePath(page, basePath string) string {
	if basePath == "" || basePath == "/" {
		return page
	}
	// Earlier pairs win when several match at the same position
	r := strings.NewReplacer(
		`href="//`, `href="//`,
		`src="//`, `src="//`,
		`href=//`, `href=//`,
		`src=//`, `src=//`,
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
		`href=/`, `href=`+basePath,
		`src=/`, `src=`+basePath,
	)
	return r.Replace(page)
}
