package inline

import "fmt"

// Kind identifies how a run of inline text is styled or referenced
type Kind int

const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var kindNames = map[Kind]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is an inline run of text tagged with one kind.
// URL is only set for Link and Image tokens.
type Token struct {
	Text string
	Kind Kind
	URL  string
}

// NewToken creates a token without a URL
func NewToken(text string, kind Kind) Token {
	return Token{Text: text, Kind: kind}
}

func (t Token) String() string {
	if t.URL == "" {
		return fmt.Sprintf("Token(%q, %s)", t.Text, t.Kind)
	}
	return fmt.Sprintf("Token(%q, %s, %s)", t.Text, t.Kind, t.URL)
}
