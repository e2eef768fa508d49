package markdown

import (
	"strings"

	"mdrun/internal/document"
)

// Render serializes a document tree back to markdown. The front-matter block
// is re-emitted verbatim; blocks are separated by blank lines.
func Render(d *document.Document) []byte {
	var sb strings.Builder
	if d.FrontMatter != "" {
		sb.WriteString(d.FrontMatter)
		sb.WriteString("\n")
	}
	writeBlocks(&sb, d.Blocks)
	return []byte(sb.String())
}

func writeBlocks(sb *strings.Builder, blocks []document.Block) {
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeBlock(sb, b)
	}
}

func writeBlock(sb *strings.Builder, b document.Block) {
	switch t := b.(type) {
	case *document.Heading:
		sb.WriteString(strings.Repeat("#", t.Level))
		sb.WriteString(" ")
		sb.WriteString(renderInlines(t.Content))
		sb.WriteString("\n")
	case *document.Paragraph:
		sb.WriteString(strings.TrimRight(renderInlines(t.Content), "\n"))
		sb.WriteString("\n")
	case *document.CodeBlock:
		writeCodeBlock(sb, t)
	case *document.BlockQuote:
		var inner strings.Builder
		writeBlocks(&inner, t.Blocks)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			if line == "" {
				sb.WriteString(">\n")
			} else {
				sb.WriteString("> " + line + "\n")
			}
		}
	case *document.ThematicBreak:
		sb.WriteString("---\n")
	case *document.RawBlock:
		sb.WriteString(strings.TrimRight(t.Text, "\n"))
		sb.WriteString("\n")
	}
}

func writeCodeBlock(sb *strings.Builder, cb *document.CodeBlock) {
	fence := "```"
	for strings.Contains(cb.Text, fence) {
		fence += "`"
	}
	sb.WriteString(fence)
	sb.WriteString(attrString(cb.Classes, cb.Attrs))
	sb.WriteString("\n")
	sb.WriteString(cb.Text)
	if cb.Text != "" && !strings.HasSuffix(cb.Text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence)
	sb.WriteString("\n")
}

func renderInlines(inlines []document.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch t := in.(type) {
		case *document.Text:
			sb.WriteString(t.Value)
		case *document.Code:
			writeCodeSpan(&sb, t)
		case *document.Emph:
			sb.WriteString("*" + renderInlines(t.Content) + "*")
		case *document.Strong:
			sb.WriteString("**" + renderInlines(t.Content) + "**")
		}
	}
	return sb.String()
}

func writeCodeSpan(sb *strings.Builder, c *document.Code) {
	delim := "`"
	for strings.Contains(c.Text, delim) {
		delim += "`"
	}
	pad := ""
	if strings.HasPrefix(c.Text, "`") || strings.HasSuffix(c.Text, "`") {
		pad = " "
	}
	sb.WriteString(delim + pad + c.Text + pad + delim)
	if s := attrString(c.Classes, c.Attrs); s != "" {
		// A bare word is only valid fence syntax; the inline form always
		// takes braces.
		if !strings.HasPrefix(s, "{") {
			s = "{." + s + "}"
		}
		sb.WriteString(s)
	}
}
