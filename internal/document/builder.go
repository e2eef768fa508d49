package document

import "fmt"

// Builder helpers. These are the constructors exposed to executing fragments
// (under the package alias "doc"), so fragment code can assemble replacement
// nodes without composite literals of interface type.

// Str builds a literal text inline.
func Str(s string) *Text {
	return &Text{Value: s}
}

// Strf builds a text inline from a format string.
func Strf(format string, args ...any) *Text {
	return &Text{Value: fmt.Sprintf(format, args...)}
}

// Para builds a paragraph from inline content.
func Para(content ...Inline) *Paragraph {
	return &Paragraph{Content: content}
}

// Head builds a heading of the given level.
func Head(level int, content ...Inline) *Heading {
	return &Heading{Level: level, Content: content}
}

// CodeBlk builds a fenced code block with a single language class.
func CodeBlk(lang, text string) *CodeBlock {
	var classes []string
	if lang != "" {
		classes = []string{lang}
	}
	return &CodeBlock{Classes: classes, Text: text}
}

// Quote builds a block quote.
func Quote(blocks ...Block) *BlockQuote {
	return &BlockQuote{Blocks: blocks}
}

// Raw builds a verbatim markdown block.
func Raw(text string) *RawBlock {
	return &RawBlock{Text: text}
}

// Em builds emphasized inline content.
func Em(content ...Inline) *Emph {
	return &Emph{Content: content}
}

// Bold builds strongly emphasized inline content.
func Bold(content ...Inline) *Strong {
	return &Strong{Content: content}
}

// Rule builds a thematic break.
func Rule() *ThematicBreak {
	return &ThematicBreak{}
}

// Blocks collects block nodes into a list.
func Blocks(blocks ...Block) []Block {
	return blocks
}

// Inlines collects inline nodes into a list.
func Inlines(inlines ...Inline) []Inline {
	return inlines
}
