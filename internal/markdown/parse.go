// Package markdown parses markdown source into the document tree and renders
// the tree back to markdown. Fenced code blocks take pandoc-style attributes
// in their info string, inline code spans take them as an immediately
// following brace group; YAML front matter becomes the document metadata. The
// parser is built on goldmark; block constructs the tree does not model are
// kept as verbatim raw spans.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"mdrun/internal/document"
)

// Parse builds a document tree from markdown source. path is recorded as the
// document's input location for diagnostics. Line endings are normalized to LF
// before parsing so textual offsets agree with what the fragment engine sees.
func Parse(src []byte, path string) (*document.Document, error) {
	s := normalizeNewlines(string(src))
	raw, meta, body, err := splitFrontMatter(s)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(gtext.NewReader([]byte(body)))
	return &document.Document{
		Source:      path,
		FrontMatter: raw,
		Meta:        meta,
		Blocks:      convertChildren(root, []byte(body)),
	}, nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitFrontMatter extracts a leading YAML block delimited by --- lines (the
// closing delimiter may be ... per the YAML document-end marker). The raw
// section, delimiters included, is preserved for verbatim re-emission.
func splitFrontMatter(s string) (raw string, meta map[string]any, body string, err error) {
	lines := strings.Split(s, "\n")
	if len(lines) == 0 || lines[0] != "---" {
		return "", nil, s, nil
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] != "---" && lines[i] != "..." {
			continue
		}
		inner := strings.Join(lines[1:i], "\n")
		meta = map[string]any{}
		if err := yaml.Unmarshal([]byte(inner), &meta); err != nil {
			return "", nil, "", fmt.Errorf("parse front matter: %w", err)
		}
		raw = strings.Join(lines[:i+1], "\n") + "\n"
		body = strings.Join(lines[i+1:], "\n")
		return raw, meta, body, nil
	}
	// Unterminated front matter is treated as content.
	return "", nil, s, nil
}

func convertChildren(n ast.Node, src []byte) []document.Block {
	var out []document.Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if b := convertBlock(c, src); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func convertBlock(n ast.Node, src []byte) document.Block {
	switch t := n.(type) {
	case *ast.Heading:
		return &document.Heading{Level: t.Level, Content: convertInlines(t, src)}
	case *ast.Paragraph:
		return &document.Paragraph{Content: convertInlines(t, src)}
	case *ast.TextBlock:
		return &document.Paragraph{Content: convertInlines(t, src)}
	case *ast.FencedCodeBlock:
		var info string
		if t.Info != nil {
			info = string(t.Info.Segment.Value(src))
		}
		classes, attrs := parseInfo(info)
		return &document.CodeBlock{Classes: classes, Attrs: attrs, Text: blockLines(t, src)}
	case *ast.CodeBlock:
		return &document.CodeBlock{Text: blockLines(t, src)}
	case *ast.Blockquote:
		return &document.BlockQuote{Blocks: convertChildren(t, src)}
	case *ast.ThematicBreak:
		return &document.ThematicBreak{}
	default:
		// Lists, HTML blocks and anything else the tree does not model are
		// carried as their verbatim source span.
		start, stop, ok := sourceSpan(n, src)
		if !ok {
			return nil
		}
		return &document.RawBlock{Text: strings.TrimRight(string(src[start:stop]), "\n")}
	}
}

// blockLines joins the line segments of a code block, trailing newlines
// included, exactly as they appear in source.
func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// sourceSpan computes the source byte range covered by a node and its
// descendants, widened left to the start of the first line so list markers and
// quote prefixes are included.
func sourceSpan(n ast.Node, src []byte) (int, int, bool) {
	start, stop := -1, -1
	var visit func(ast.Node)
	visit = func(m ast.Node) {
		// Lines panics on inline nodes; their positions live in segments on
		// the enclosing block, which is already visited.
		if m.Type() != ast.TypeInline {
			l := m.Lines()
			for i := 0; i < l.Len(); i++ {
				seg := l.At(i)
				if start < 0 || seg.Start < start {
					start = seg.Start
				}
				if seg.Stop > stop {
					stop = seg.Stop
				}
			}
		}
		for c := m.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	if start < 0 {
		return 0, 0, false
	}
	if i := strings.LastIndexByte(string(src[:start]), '\n'); i >= 0 {
		start = i + 1
	} else {
		start = 0
	}
	return start, stop, true
}

func convertInlines(n ast.Node, src []byte) []document.Inline {
	var out []document.Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			val := string(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				val += "\n"
			}
			if val != "" {
				out = append(out, &document.Text{Value: val})
			}
		case *ast.String:
			out = append(out, &document.Text{Value: string(t.Value)})
		case *ast.CodeSpan:
			code := &document.Code{Text: codeSpanText(t, src)}
			if next, ok := c.NextSibling().(*ast.Text); ok {
				val := string(next.Segment.Value(src))
				if classes, attrs, rest, ok := parseAttrSuffix(val); ok {
					code.Classes, code.Attrs = classes, attrs
					out = append(out, code)
					if next.SoftLineBreak() || next.HardLineBreak() {
						rest += "\n"
					}
					if rest != "" {
						out = append(out, &document.Text{Value: rest})
					}
					c = next
					continue
				}
			}
			out = append(out, code)
		case *ast.Emphasis:
			content := convertInlines(t, src)
			if t.Level >= 2 {
				out = append(out, &document.Strong{Content: content})
			} else {
				out = append(out, &document.Emph{Content: content})
			}
		default:
			// Links, images, raw HTML: flatten to the inline content they
			// carry.
			out = append(out, convertInlines(c, src)...)
		}
	}
	return out
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}
