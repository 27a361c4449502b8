// Package block splits a markdown document into blocks and classifies each
// block by its structure.
package block

import (
	"strconv"
	"strings"
)

// Type is the structural type of a block.
type Type int

// Block types. Paragraph is the fallback.
const (
	Paragraph Type = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

var typeNames = [...]string{
	Paragraph:     "paragraph",
	Heading:       "heading",
	Code:          "code",
	Quote:         "quote",
	UnorderedList: "unordered_list",
	OrderedList:   "ordered_list",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Fence delimits a code block.
const Fence = "```"

// MaxHeadingLevel is the deepest heading level (h6).
const MaxHeadingLevel = 6

// Split splits document on blank lines ("\n\n"), trims each piece and drops
// pieces that are empty after trimming.
func Split(document string) []string {
	pieces := strings.Split(document, "\n\n")
	blocks := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}

// Classify returns the type of a trimmed block. Rules are checked in order:
// heading, code, quote, unordered list, ordered list; anything else is a
// paragraph.
func Classify(block string) Type {
	if HeadingLevel(block) > 0 {
		return Heading
	}
	if strings.HasPrefix(block, Fence) && strings.HasSuffix(block, Fence) {
		return Code
	}

	lines := strings.Split(block, "\n")
	switch {
	case allLines(lines, func(_ int, line string) bool { return strings.HasPrefix(line, ">") }):
		return Quote
	case allLines(lines, func(_ int, line string) bool { return strings.HasPrefix(line, "- ") }):
		return UnorderedList
	case allLines(lines, func(i int, line string) bool { return strings.HasPrefix(line, OrderedPrefix(i+1)) }):
		return OrderedList
	}
	return Paragraph
}

// HeadingLevel returns the number of leading '#' when block starts with 1-6
// of them followed by a space, and 0 otherwise.
func HeadingLevel(block string) int {
	level := 0
	for level < len(block) && block[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel {
		return 0
	}
	if level >= len(block) || block[level] != ' ' {
		return 0
	}
	return level
}

// OrderedPrefix returns the list marker expected for item n, e.g. "3. ".
func OrderedPrefix(n int) string {
	return strconv.Itoa(n) + ". "
}

func allLines(lines []string, pred func(i int, line string) bool) bool {
	for i, line := range lines {
		if !pred(i, line) {
			return false
		}
	}
	return len(lines) > 0
}
