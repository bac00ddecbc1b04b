package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMalformedMarkup is the parent of every inline parsing error
	ErrMalformedMarkup = errors.New("malformed inline markup")
	// ErrUnterminatedDelimiter reports a delimiter without a closing partner
	ErrUnterminatedDelimiter = fmt.Errorf("%w: formatted section not closed", ErrMalformedMarkup)
	// ErrMalformedReference reports a link or image that could not be located in its text
	ErrMalformedReference = fmt.Errorf("%w: reference not found in text", ErrMalformedMarkup)
)

var (
	imageRe = regexp.MustCompile(`!\[([^\]]+)\]\(([^)]+)\)`)
	linkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Ref is a link or image reference found in text
type Ref struct {
	Text string
	URL  string
}

// SplitDelimiter splits every plain token on delim. Pieces alternate plain and
// kind starting with plain; empty pieces are dropped.
func SplitDelimiter(tokens []Token, delim string, kind Kind) ([]Token, error) {
	var result []Token
	for _, tok := range tokens {
		if tok.Kind != Plain {
			result = append(result, tok)
			continue
		}

		pieces := strings.Split(tok.Text, delim)
		if len(pieces)%2 == 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnterminatedDelimiter, delim, tok.Text)
		}

		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			if i%2 == 0 {
				result = append(result, NewToken(piece, Plain))
			} else {
				result = append(result, NewToken(piece, kind))
			}
		}
	}
	return result, nil
}

// ExtractImages returns every ![alt](url) reference in text, left to right
func ExtractImages(text string) []Ref {
	var refs []Ref
	for _, m := range imageRe.FindAllStringSubmatch(text, -1) {
		refs = append(refs, Ref{Text: m[1], URL: m[2]})
	}
	return refs
}

// ExtractLinks returns every [text](url) reference in text that is not
// preceded by '!'. A rejected match is rescanned from its next byte, so a
// link nested after an image marker is still found.
func ExtractLinks(text string) []Ref {
	var refs []Ref
	for pos := 0; pos < len(text); {
		loc := linkRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if start > 0 && text[start-1] == '!' {
			pos = start + 1
			continue
		}
		refs = append(refs, Ref{Text: text[pos+loc[2] : pos+loc[3]], URL: text[pos+loc[4] : pos+loc[5]]})
		pos += loc[1]
	}
	return refs
}

// SplitImages replaces image references in plain tokens with Image tokens
func SplitImages(tokens []Token) ([]Token, error) {
	return splitRefs(tokens, Image, ExtractImages, func(r Ref) string {
		return fmt.Sprintf("![%s](%s)", r.Text, r.URL)
	})
}

// SplitLinks replaces link references in plain tokens with Link tokens
func SplitLinks(tokens []Token) ([]Token, error) {
	return splitRefs(tokens, Link, ExtractLinks, func(r Ref) string {
		return fmt.Sprintf("[%s](%s)", r.Text, r.URL)
	})
}

func splitRefs(tokens []Token, kind Kind, extract func(string) []Ref, literal func(Ref) string) ([]Token, error) {
	var result []Token
	for _, tok := range tokens {
		if tok.Kind != Plain {
			result = append(result, tok)
			continue
		}

		refs := extract(tok.Text)
		if len(refs) == 0 {
			result = append(result, tok)
			continue
		}

		rest := tok.Text
		for _, ref := range refs {
			sep := literal(ref)
			before, after, found := strings.Cut(rest, sep)
			if !found {
				return nil, fmt.Errorf("%w: %s %q in %q", ErrMalformedReference, kind, sep, tok.Text)
			}
			if before != "" {
				result = append(result, NewToken(before, Plain))
			}
			result = append(result, Token{Text: ref.Text, Kind: kind, URL: ref.URL})
			rest = after
		}
		if rest != "" {
			result = append(result, NewToken(rest, Plain))
		}
	}
	return result, nil
}
