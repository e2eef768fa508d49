package document

// BlockTransform inspects a block and returns its replacement. The second
// return value reports whether a replacement happened: (nil, true) removes the
// block, (nodes, true) splices nodes in its place, (_, false) keeps the block
// and lets the walk descend into its children.
type BlockTransform func(Block) ([]Block, bool)

// InlineTransform is the inline counterpart of BlockTransform.
type InlineTransform func(Inline) ([]Inline, bool)

// Transform rewrites the document in place, visiting blocks in document order
// (a block before its descendants) and inlines left-to-right within their
// parent. Replacement nodes are spliced in and not visited again.
func (d *Document) Transform(bf BlockTransform, inf InlineTransform) {
	d.Blocks = transformBlocks(d.Blocks, bf, inf)
}

func transformBlocks(blocks []Block, bf BlockTransform, inf InlineTransform) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if repl, ok := bf(b); ok {
			out = append(out, repl...)
			continue
		}
		switch t := b.(type) {
		case *BlockQuote:
			t.Blocks = transformBlocks(t.Blocks, bf, inf)
		case *Paragraph:
			t.Content = TransformInlines(t.Content, inf)
		case *Heading:
			t.Content = TransformInlines(t.Content, inf)
		}
		out = append(out, b)
	}
	return out
}

// TransformInlines rewrites an inline list in place, left-to-right.
func TransformInlines(inlines []Inline, inf InlineTransform) []Inline {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		if repl, ok := inf(in); ok {
			out = append(out, repl...)
			continue
		}
		switch t := in.(type) {
		case *Emph:
			t.Content = TransformInlines(t.Content, inf)
		case *Strong:
			t.Content = TransformInlines(t.Content, inf)
		}
		out = append(out, in)
	}
	return out
}
