package blocks

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the structural classification of a block
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fence marks the start and end of a code block
const Fence = "```"

// MaxHeadingLevel is the deepest heading supported
const MaxHeadingLevel = 6

// ErrInvalidBlockFormat is wrapped by every classification failure
var ErrInvalidBlockFormat = errors.New("invalid block format")

// FormatError describes which rule a block broke
type FormatError struct {
	Rule  string
	Line  string
	Block string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: %q", ErrInvalidBlockFormat, e.Rule, e.Line)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidBlockFormat
}

var separatorRe = regexp.MustCompile(`\n{2,}`)

// Split breaks a document into trimmed, non-empty blocks
func Split(document string) []string {
	document = strings.ReplaceAll(document, "\r\n", "\n")

	var result []string
	for _, block := range separatorRe.Split(document, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		result = append(result, block)
	}
	return result
}

// Classify returns the kind of block. Blocks that look like a heading, quote
// or list but break that kind's rules fail instead of becoming paragraphs.
func Classify(block string) (Kind, error) {
	if strings.HasPrefix(block, "#") {
		if _, err := HeadingLevel(block); err != nil {
			return Paragraph, err
		}
		return Heading, nil
	}

	if len(block) >= 2*len(Fence) && strings.HasPrefix(block, Fence) && strings.HasSuffix(block, Fence) {
		return Code, nil
	}

	lines := strings.Split(block, "\n")

	if strings.HasPrefix(block, ">") {
		for _, line := range lines {
			if !strings.HasPrefix(line, ">") {
				return Paragraph, &FormatError{Rule: "expecting quote > in each line", Line: line, Block: block}
			}
		}
		return Quote, nil
	}

	if strings.HasPrefix(block, "- ") {
		for _, line := range lines {
			if !strings.HasPrefix(line, "- ") {
				return Paragraph, &FormatError{Rule: "expecting unordered - in each line", Line: line, Block: block}
			}
		}
		return UnorderedList, nil
	}

	if strings.HasPrefix(block, OrderedMarker(1)) {
		for i, line := range lines {
			marker := OrderedMarker(i + 1)
			if !strings.HasPrefix(line, marker) {
				return Paragraph, &FormatError{
					Rule:  fmt.Sprintf("expecting ordered item %q", strings.TrimSpace(marker)),
					Line:  line,
					Block: block,
				}
			}
		}
		return OrderedList, nil
	}

	return Paragraph, nil
}

// HeadingLevel validates the marker run of a heading block and returns its level
func HeadingLevel(block string) (int, error) {
	marker, _, found := strings.Cut(block, " ")
	firstLine, _, _ := strings.Cut(block, "\n")
	if !found || strings.Contains(marker, "\n") {
		return 0, &FormatError{Rule: "expecting space after heading marker", Line: firstLine, Block: block}
	}
	if strings.Trim(marker, "#") != "" {
		return 0, &FormatError{Rule: "expecting heading marker of only #", Line: firstLine, Block: block}
	}
	if len(marker) > MaxHeadingLevel {
		return 0, &FormatError{
			Rule:  "expecting heading level up to " + strconv.Itoa(MaxHeadingLevel),
			Line:  firstLine,
			Block: block,
		}
	}
	return len(marker), nil
}

// OrderedMarker returns the prefix expected on the n-th ordered list line
func OrderedMarker(n int) string {
	return strconv.Itoa(n) + ". "
}
