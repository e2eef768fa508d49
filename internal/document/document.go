// Package document defines the block/inline tree that mdrun parses, transforms
// and serializes. The tree is deliberately small: it covers the node kinds the
// fragment engine can produce and the markdown serializer can round-trip, with
// RawBlock as the verbatim fallback for everything else.
package document

// Attributes holds the string-keyed attributes of a code node, e.g. exec and
// include on an executable fragment.
type Attributes map[string]string

// Node is any element of the document tree.
type Node interface {
	node()
}

// Block is a block-level node.
type Block interface {
	Node
	block()
}

// Inline is an inline-level node.
type Inline interface {
	Node
	inline()
}

// Document is a parsed markdown file.
type Document struct {
	// Source is the input path the document was read from. Used only to
	// construct diagnostics; may be empty.
	Source string
	// FrontMatter is the raw front-matter section including its delimiters,
	// kept verbatim for re-emission. Empty when the document has none.
	FrontMatter string
	// Meta is the parsed front matter.
	Meta map[string]any
	Blocks []Block
}

// Heading is an ATX heading.
type Heading struct {
	Level   int
	Content []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Inline
}

// CodeBlock is a fenced code block. Classes come from the info string; a block
// whose classes include the fragment marker is executable.
type CodeBlock struct {
	Classes []string
	Attrs   Attributes
	Text    string
}

// BlockQuote is a quoted group of blocks.
type BlockQuote struct {
	Blocks []Block
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// RawBlock carries a span of markdown source the parser does not model
// structurally (lists, HTML blocks, ...). It is re-emitted verbatim.
type RawBlock struct {
	Text string
}

// Text is a literal inline string.
type Text struct {
	Value string
}

// Code is an inline code span, optionally carrying pandoc-style attributes.
type Code struct {
	Classes []string
	Attrs   Attributes
	Text    string
}

// Emph is emphasized inline content.
type Emph struct {
	Content []Inline
}

// Strong is strongly emphasized inline content.
type Strong struct {
	Content []Inline
}

func (*Heading) node()       {}
func (*Paragraph) node()     {}
func (*CodeBlock) node()     {}
func (*BlockQuote) node()    {}
func (*ThematicBreak) node() {}
func (*RawBlock) node()      {}
func (*Text) node()          {}
func (*Code) node()          {}
func (*Emph) node()          {}
func (*Strong) node()        {}

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*CodeBlock) block()     {}
func (*BlockQuote) block()    {}
func (*ThematicBreak) block() {}
func (*RawBlock) block()      {}

func (*Text) inline()   {}
func (*Code) inline()   {}
func (*Emph) inline()   {}
func (*Strong) inline() {}

// HasClass reports whether name is among classes.
func HasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}
