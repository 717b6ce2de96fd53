// Package richtext classifies plain multi-line text into typed blocks
// for document rendering. Classification is line by line; the first
// matching rule wins.
package richtext

import (
	"regexp"
	"strings"
)

// Kind is the block type of a classified line.
type Kind string

const (
	Spacer     Kind = "spacer"
	Heading    Kind = "heading"
	Subheading Kind = "subheading"
	Bullet     Kind = "bullet"
	Paragraph  Kind = "paragraph"
)

// Block is one classified line of input.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

var (
	headingRe    = regexp.MustCompile(`^\d+\.\s`)
	subheadingRe = regexp.MustCompile(`^[A-Z\s&()]+:$`)
)

// Classify splits text into lines and assigns each a block kind.
// Rules apply in order: a blank line is a spacer, a numbered line is a
// heading, an all-caps line ending in a colon is a subheading, a line
// starting with "*" or "-" is a bullet with the marker stripped, and
// anything else is a paragraph.
func Classify(text string) []Block {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

func classifyLine(line string) Block {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Block{Kind: Spacer}
	case headingRe.MatchString(trimmed):
		return Block{Kind: Heading, Text: trimmed}
	case subheadingRe.MatchString(trimmed):
		return Block{Kind: Subheading, Text: trimmed}
	case strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "-"):
		return Block{Kind: Bullet, Text: strings.TrimSpace(trimmed[1:])}
	default:
		return Block{Kind: Paragraph, Text: trimmed}
	}
}
