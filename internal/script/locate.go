package script

import (
	"fmt"
	"strings"
)

// Level is the structural level of a fragment. It determines which return
// shapes are valid and how the fragment's text is found in the source.
type Level int

const (
	LevelBlock Level = iota
	LevelInline
)

func (l Level) String() string {
	if l == LevelInline {
		return "inline"
	}
	return "block"
}

// Position is a best-effort location in the original source. The zero value is
// the unknown sentinel. Line is 1-based; Col is 1-based and set for inline
// fragments only.
type Position struct {
	Line int
	Col  int
}

// Known reports whether the position was resolved.
func (p Position) Known() bool {
	return p.Line > 0
}

func (p Position) String() string {
	switch {
	case !p.Known():
		return "unknown position"
	case p.Col > 0:
		return fmt.Sprintf("line %d, column %d", p.Line, p.Col)
	default:
		return fmt.Sprintf("line %d", p.Line)
	}
}

// Locator maps fragment text back to a position in the original source, for
// diagnostics only. The cursor advances monotonically: once an occurrence has
// been matched, earlier text is never rematched, so fragments with identical
// text resolve to successive occurrences. A miss (indentation changed the
// stored text, source unavailable) yields the unknown sentinel and leaves the
// cursor where it was.
type Locator struct {
	src    string
	cursor int
}

// NewLocator creates a locator over the normalized source text. An empty
// source is valid and makes every lookup return the unknown sentinel.
func NewLocator(src string) *Locator {
	return &Locator{src: src}
}

// Locate finds the first occurrence of text at or after the cursor. Inline
// lookups search for the text wrapped in its backtick delimiters, so an inline
// fragment is not mistaken for a block fragment with identical content.
func (l *Locator) Locate(text string, level Level) Position {
	if l.src == "" || text == "" {
		return Position{}
	}
	needle := text
	if level == LevelInline {
		needle = "`" + text + "`"
	}
	idx := strings.Index(l.src[l.cursor:], needle)
	if idx < 0 {
		return Position{}
	}
	start := l.cursor + idx
	l.cursor = start + len(needle)

	pos := Position{Line: strings.Count(l.src[:start], "\n") + 1}
	if level == LevelInline {
		lineStart := strings.LastIndexByte(l.src[:start], '\n') + 1
		pos.Col = start - lineStart + 1
	}
	return pos
}
