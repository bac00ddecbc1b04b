package convert

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gerunddev/mdsite/internal/blocks"
	"github.com/gerunddev/mdsite/internal/inline"
	"github.com/google/go-cmp/cmp"
)

func TestMarkdownToHTMLNodeFixture(t *testing.T) {
	mdContent, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("Failed to read markdown fixture: %v", err)
	}
	expectedHTML, err := os.ReadFile("testdata/sample.html")
	if err != nil {
		t.Fatalf("Failed to read html fixture: %v", err)
	}

	doc, err := RenderDocument(string(mdContent))
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}

	if diff := cmp.Diff(strings.TrimSpace(string(expectedHTML)), doc.Body); diff != "" {
		t.Errorf("Conversion mismatch (-want +got):\n%s", diff)
	}
	if doc.Title != "Tolkien Fan Club" {
		t.Errorf("Title = %q, want Tolkien Fan Club", doc.Title)
	}
	if diff := cmp.Diff([]string{"books", "fantasy"}, doc.Meta.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownToHTMLNode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "paragraphs",
			input: `
This is **bolded** paragraph
text in a p
tag here

This is another paragraph with _italic_ text and ` + "`code`" + ` here

`,
			expected: "<div><p>This is <b>bolded</b> paragraph text in a p tag here</p><p>This is another paragraph with <i>italic</i> text and <code>code</code> here</p></div>",
		},
		{
			name:     "code block",
			input:    "```\nThis is text that _should_ remain\nthe **same** even with inline stuff\n```",
			expected: "<div><pre><code>This is text that _should_ remain\nthe **same** even with inline stuff\n</code></pre></div>",
		},
		{
			name:     "headings are not tokenized",
			input:    "# one\n\n### three **x",
			expected: "<div><h1>one</h1><h3>three **x</h3></div>",
		},
		{
			name:     "quote",
			input:    "> This is a\n> blockquote with **bold**",
			expected: "<div><blockquote>This is a blockquote with <b>bold</b></blockquote></div>",
		},
		{
			name:     "unordered list",
			input:    "- one\n- _two_\n- [three](/3)",
			expected: "<div><ul><li>one</li><li><i>two</i></li><li><a href=/3>three</a></li></ul></div>",
		},
		{
			name:     "ordered list",
			input:    "1. first\n2. **second**\n3. third",
			expected: "<div><ol><li>first</li><li><b>second</b></li><li>third</li></ol></div>",
		},
		{
			name:     "empty document",
			input:    "\n\n",
			expected: "<div></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := MarkdownToHTMLNode(tt.input)
			if err != nil {
				t.Fatalf("MarkdownToHTMLNode failed: %v", err)
			}
			actual, err := node.Render()
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarkdownToHTMLNodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "unbalanced bold", input: "# ok\n\nsome **bold", want: inline.ErrMalformedMarkup},
		{name: "unbalanced in list", input: "- a\n- `b", want: inline.ErrUnterminatedDelimiter},
		{name: "bad heading", input: "####### too deep", want: blocks.ErrInvalidBlockFormat},
		{name: "bad numbering", input: "1. a\n3. b", want: blocks.ErrInvalidBlockFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarkdownToHTMLNode(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("MarkdownToHTMLNode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
