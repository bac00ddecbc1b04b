package blocks

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name: "paragraphs and list",
			input: `
This is **bolded** paragraph

This is another paragraph with _italic_ text and ` + "`code`" + ` here
This is the same paragraph on a new line

- This is a list
- with items
`,
			expected: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{
			name:     "extra blank lines",
			input:    "one\n\n\n\n\ntwo\n\n   \n\nthree",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "windows newlines",
			input:    "# Title\r\n\r\nbody\r\nmore",
			expected: []string{"# Title", "body\nmore"},
		},
		{
			name:     "empty",
			input:    "\n\n\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, Split(tt.input)); diff != "" {
				t.Errorf("Split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected Kind
	}{
		{name: "heading 1", block: "# Heading", expected: Heading},
		{name: "heading 6", block: "###### Heading", expected: Heading},
		{name: "code", block: "```\nfunc main() {}\n```", expected: Code},
		{name: "quote", block: "> one\n> two\n>three", expected: Quote},
		{name: "unordered", block: "- one\n- two", expected: UnorderedList},
		{name: "ordered", block: "1. one\n2. two\n3. three", expected: OrderedList},
		{name: "ten items", block: "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h\n9. i\n10. j", expected: OrderedList},
		{name: "paragraph", block: "Just some text\nover two lines", expected: Paragraph},
		{name: "decimal is not a list", block: "1.5 is a number", expected: Paragraph},
		{name: "lone fence", block: "```", expected: Paragraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := Classify(tt.block)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.block, err)
			}
			if actual != tt.expected {
				t.Errorf("Classify(%q) = %s, want %s", tt.block, actual, tt.expected)
			}
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{name: "seven markers", block: "####### x"},
		{name: "mixed markers", block: "#a# heading"},
		{name: "no space", block: "#heading"},
		{name: "ordered skips", block: "1. a\n3. b"},
		{name: "ordered repeats", block: "1. a\n1. b"},
		{name: "quote line missing marker", block: "> a\nb"},
		{name: "unordered line missing marker", block: "- a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.block)
			if !errors.Is(err, ErrInvalidBlockFormat) {
				t.Fatalf("Classify(%q) error = %v, want ErrInvalidBlockFormat", tt.block, err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if fe.Block != tt.block {
				t.Errorf("FormatError.Block = %q, want %q", fe.Block, tt.block)
			}
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	for level := 1; level <= MaxHeadingLevel; level++ {
		block := ""
		for i := 0; i < level; i++ {
			block += "#"
		}
		block += " title"

		got, err := HeadingLevel(block)
		if err != nil {
			t.Fatalf("HeadingLevel(%q) returned error: %v", block, err)
		}
		if got != level {
			t.Errorf("HeadingLevel(%q) = %d, want %d", block, got, level)
		}
	}
}

func TestSplitThenClassifyKeepsOrder(t *testing.T) {
	doc := "# Title\n\npara\n\n- a\n- b\n\n1. x\n2. y\n\n> q\n\n```\ncode\n```"
	want := []Kind{Heading, Paragraph, UnorderedList, OrderedList, Quote, Code}

	var got []Kind
	for _, block := range Split(doc) {
		k, err := Classify(block)
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", block, err)
		}
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}
