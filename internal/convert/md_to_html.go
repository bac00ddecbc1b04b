package convert

import (
	"fmt"
	"strings"

	"github.com/gerunddev/mdsite/internal/blocks"
	"github.com/gerunddev/mdsite/internal/htmlnode"
	"github.com/gerunddev/mdsite/internal/inline"
)

// MarkdownToHTMLNode parses a markdown document into a div holding one child
// per block, in document order
func MarkdownToHTMLNode(markdown string) (*htmlnode.ParentNode, error) {
	children := []htmlnode.Node{}
	for i, block := range blocks.Split(markdown) {
		node, err := BlockToHTMLNode(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, node)
	}
	return htmlnode.NewParent("div", children), nil
}

// BlockToHTMLNode classifies a single block and builds its subtree
func BlockToHTMLNode(block string) (htmlnode.Node, error) {
	kind, err := blocks.Classify(block)
	if err != nil {
		return nil, err
	}

	switch kind {
	case blocks.Heading:
		return headingToHTMLNode(block)
	case blocks.Code:
		return codeToHTMLNode(block), nil
	case blocks.Quote:
		return quoteToHTMLNode(block)
	case blocks.UnorderedList:
		return listToHTMLNode(block, "ul", func(int) string { return "- " })
	case blocks.OrderedList:
		return listToHTMLNode(block, "ol", blocks.OrderedMarker)
	default:
		return paragraphToHTMLNode(block)
	}
}

// textToChildren tokenizes raw text and maps every token to a leaf
func textToChildren(text string) ([]htmlnode.Node, error) {
	tokens, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.FromTokens(tokens)
}

func paragraphToHTMLNode(block string) (htmlnode.Node, error) {
	children, err := textToChildren(strings.ReplaceAll(block, "\n", " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("p", children), nil
}

// Heading text is used as-is, inline markup is not parsed
func headingToHTMLNode(block string) (htmlnode.Node, error) {
	level, err := blocks.HeadingLevel(block)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewLeaf(fmt.Sprintf("h%d", level), block[level+1:]), nil
}

func codeToHTMLNode(block string) htmlnode.Node {
	text := strings.TrimSpace(strings.Trim(block, "`")) + "\n"
	return htmlnode.NewParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", text)})
}

func quoteToHTMLNode(block string) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, ">")
		lines[i] = strings.TrimPrefix(line, " ")
	}
	children, err := textToChildren(strings.Join(lines, " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("blockquote", children), nil
}

// listToHTMLNode builds a list whose n-th line (1-based) starts with marker(n)
func listToHTMLNode(block, tag string, marker func(n int) string) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		children, err := textToChildren(strings.TrimPrefix(line, marker(i+1)))
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i+1, err)
		}
		items = append(items, htmlnode.NewParent("li", children))
	}
	return htmlnode.NewParent(tag, items), nil
}
