package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural is the parent of every render error caused by a malformed tree
	ErrStructural = errors.New("structural render error")
	// ErrMissingValue is returned when a leaf has no value
	ErrMissingValue = fmt.Errorf("%w: leaf node must have a value", ErrStructural)
	// ErrMissingTag is returned when a parent has no tag
	ErrMissingTag = fmt.Errorf("%w: parent node must have a tag", ErrStructural)
	// ErrMissingChildren is returned when a parent has no children slice
	ErrMissingChildren = fmt.Errorf("%w: parent node must have children", ErrStructural)
)

// Node is a renderable element of the HTML tree
type Node interface {
	Render() (string, error)
}

// Attr is a single HTML attribute
type Attr struct {
	Key   string
	Value string
}

// Attributes keeps attributes in insertion order
type Attributes []Attr

// HTML renders attributes as ` key=value` pairs. Values are written as-is.
func (a Attributes) HTML() string {
	var b strings.Builder
	for _, attr := range a {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString("=")
		b.WriteString(attr.Value)
	}
	return b.String()
}

// Get returns the value for key
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// LeafNode holds a value and no children. A leaf without a tag renders its
// value as literal text.
type LeafNode struct {
	tag      string
	value    string
	hasValue bool
	attrs    Attributes
}

// NewLeaf creates a tagged leaf
func NewLeaf(tag, value string, attrs ...Attr) *LeafNode {
	return &LeafNode{tag: tag, value: value, hasValue: true, attrs: attrs}
}

// NewText creates a tag-less leaf
func NewText(value string) *LeafNode {
	return &LeafNode{value: value, hasValue: true}
}

func (l *LeafNode) Tag() string { return l.tag }
func (l *LeafNode) Value() string { return l.value }
func (l *LeafNode) Attributes() Attributes { return l.attrs }

// Render returns the HTML for the leaf
func (l *LeafNode) Render() (string, error) {
	if !l.hasValue {
		return "", fmt.Errorf("%w (tag %q)", ErrMissingValue, l.tag)
	}
	if l.tag == "" {
		return l.value, nil
	}
	return fmt.Sprintf("<%s%s>%s</%s>", l.tag, l.attrs.HTML(), l.value, l.tag), nil
}

// ParentNode wraps the rendered output of its children in a tag
type ParentNode struct {
	tag      string
	children []Node
	attrs    Attributes
}

// NewParent creates a parent node. A nil children slice fails at render time;
// an empty one renders an empty element.
func NewParent(tag string, children []Node, attrs ...Attr) *ParentNode {
	return &ParentNode{tag: tag, children: children, attrs: attrs}
}

func (p *ParentNode) Tag() string { return p.tag }
func (p *ParentNode) Children() []Node { return p.children }
func (p *ParentNode) Attributes() Attributes { return p.attrs }

// Append adds children in order
func (p *ParentNode) Append(children ...Node) {
	if p.children == nil {
		p.children = make([]Node, 0, len(children))
	}
	p.children = append(p.children, children...)
}

// Render returns the HTML for the parent and all of its descendants
func (p *ParentNode) Render() (string, error) {
	if p.tag == "" {
		return "", ErrMissingTag
	}
	if p.children == nil {
		return "", fmt.Errorf("%w (tag %q)", ErrMissingChildren, p.tag)
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(p.tag)
	b.WriteString(p.attrs.HTML())
	b.WriteString(">")
	for _, child := range p.children {
		html, err := child.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(html)
	}
	b.WriteString("</")
	b.WriteString(p.tag)
	b.WriteString(">")
	return b.String(), nil
}
