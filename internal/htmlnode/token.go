package htmlnode

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mdsite/internal/inline"
)

// ErrUnknownTokenKind is returned for tokens outside the known kinds
var ErrUnknownTokenKind = errors.New("unknown token kind")

// FromToken converts an inline token into a leaf node
func FromToken(tok inline.Token) (Node, error) {
	switch tok.Kind {
	case inline.Plain:
		return NewText(tok.Text), nil
	case inline.Bold:
		return NewLeaf("b", tok.Text), nil
	case inline.Italic:
		return NewLeaf("i", tok.Text), nil
	case inline.Code:
		return NewLeaf("code", tok.Text), nil
	case inline.Link:
		return NewLeaf("a", tok.Text, Attr{Key: "href", Value: tok.URL}), nil
	case inline.Image:
		return NewLeaf("img", "", Attr{Key: "src", Value: tok.URL}, Attr{Key: "alt", Value: tok.Text}), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTokenKind, tok.Kind)
}

// FromTokens converts tokens in order. The result is never nil.
func FromTokens(tokens []inline.Token) ([]Node, error) {
	nodes := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		n, err := FromToken(tok)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
