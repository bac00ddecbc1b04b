package convert

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "simple", input: "# Hello", expected: "Hello"},
		{name: "leading blank lines", input: "\n\n# Hello\n\nbody", expected: "Hello"},
		{name: "trailing space", input: "# Hello  \n", expected: "Hello"},
		{name: "level 2", input: "## Hello", wantErr: true},
		{name: "paragraph first", input: "Hello\n\n# Title", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ExtractTitle(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingTitle) {
					t.Errorf("ExtractTitle(%q) error = %v, want ErrMissingTitle", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTitle(%q) returned error: %v", tt.input, err)
			}
			if actual != tt.expected {
				t.Errorf("ExtractTitle(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestRenderDocument(t *testing.T) {
	doc, err := RenderDocument("# Title\n\nHello **world**")
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if doc.Title != "Title" {
		t.Errorf("Title = %q, want Title", doc.Title)
	}
	expected := "<div><h1>Title</h1><p>Hello <b>world</b></p></div>"
	if doc.Body != expected {
		t.Errorf("Body = %q, want %q", doc.Body, expected)
	}

	page := ApplyTemplate("<html>{{ Title }}{{ Content }}</html>", doc, "/")
	if page != "<html>Title"+expected+"</html>" {
		t.Errorf("ApplyTemplate() = %q", page)
	}
}

func TestRenderDocumentMissingTitle(t *testing.T) {
	_, err := RenderDocument("Hello **world**\n\n# Title")
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("expected ErrMissingTitle, got %v", err)
	}
}

func TestRenderDocumentFrontMatterTitle(t *testing.T) {
	doc, err := RenderDocument("---\ntitle: Custom\ndraft: true\n---\n# Heading\n\ntext")
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if doc.Title != "Custom" {
		t.Errorf("Title = %q, want Custom", doc.Title)
	}
	if !doc.Meta.Draft {
		t.Error("expected Draft to be set")
	}
	if doc.Body != "<div><h1>Heading</h1><p>text</p></div>" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestExtractFrontMatter(t *testing.T) {
	t.Run("no front matter", func(t *testing.T) {
		meta, body, err := ExtractFrontMatter("# Title")
		if err != nil {
			t.Fatalf("ExtractFrontMatter failed: %v", err)
		}
		if body != "# Title" || meta.Title != "" {
			t.Errorf("got meta %+v body %q", meta, body)
		}
	})

	t.Run("unterminated", func(t *testing.T) {
		_, _, err := ExtractFrontMatter("---\ntitle: x\n# Title")
		if !errors.Is(err, ErrFrontMatter) {
			t.Errorf("expected ErrFrontMatter, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, _, err := ExtractFrontMatter("---\ntitle: [x\n---\n# Title")
		if !errors.Is(err, ErrFrontMatter) {
			t.Errorf("expected ErrFrontMatter, got %v", err)
		}
	})
}

func TestApplyTemplateBasePath(t *testing.T) {
	template, err := os.ReadFile("testdata/template.html")
	if err != nil {
		t.Fatalf("Failed to read template fixture: %v", err)
	}
	doc := &Document{
		Title: "Docs",
		Body:  "<div><p><a href=/blog/one>one</a><img src=/a.png alt=a></img><img src=//cdn.example.com/b.png alt=b></img></p></div>",
	}
	template = append(template, []byte(`<script src="//cdn.example.com/x.js"></script>`)...)

	page := ApplyTemplate(string(template), doc, "/site/")

	for _, want := range []string{
		"<title>Docs</title>",
		`href="/site/index.css"`,
		"<a href=/site/blog/one>one</a>",
		"<img src=/site/a.png alt=a></img>",
		"<img src=//cdn.example.com/b.png alt=b></img>",
		`<script src="//cdn.example.com/x.js"></script>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, ContentPlaceholder) || strings.Contains(page, TitlePlaceholder) {
		t.Errorf("placeholders left in page:\n%s", page)
	}
}
