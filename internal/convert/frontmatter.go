package convert

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// ErrFrontMatter is returned for unterminated or unparsable front matter
var ErrFrontMatter = errors.New("invalid front matter")

// Meta holds the optional YAML front matter of a page
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
}

// ExtractFrontMatter splits a leading --- delimited YAML section from the body.
// Content without front matter is returned unchanged.
func ExtractFrontMatter(content string) (Meta, string, error) {
	var meta Meta

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterDelimiter+"\n") {
		return meta, content, nil
	}

	lines := strings.Split(normalized, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return meta, "", fmt.Errorf("%w: missing closing %s", ErrFrontMatter, frontMatterDelimiter)
	}

	raw := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return meta, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	body := strings.Join(lines[end+1:], "\n")
	return meta, body, nil
}
