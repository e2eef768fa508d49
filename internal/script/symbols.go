package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"mdrun/internal/document"
)

// documentSymbols exposes the document package to interpreted fragments.
// The map is hand-written in the shape yaegi's extract tool generates.
func documentSymbols() interp.Exports {
	return interp.Exports{
		"mdrun/internal/document/document": {
			// functions
			"Str":      reflect.ValueOf(document.Str),
			"Strf":     reflect.ValueOf(document.Strf),
			"Para":     reflect.ValueOf(document.Para),
			"Head":     reflect.ValueOf(document.Head),
			"CodeBlk":  reflect.ValueOf(document.CodeBlk),
			"Quote":    reflect.ValueOf(document.Quote),
			"Raw":      reflect.ValueOf(document.Raw),
			"Em":       reflect.ValueOf(document.Em),
			"Bold":     reflect.ValueOf(document.Bold),
			"Rule":     reflect.ValueOf(document.Rule),
			"Blocks":   reflect.ValueOf(document.Blocks),
			"Inlines":  reflect.ValueOf(document.Inlines),
			"HasClass": reflect.ValueOf(document.HasClass),

			// types
			"Attributes":    reflect.ValueOf((*document.Attributes)(nil)),
			"Node":          reflect.ValueOf((*document.Node)(nil)),
			"Block":         reflect.ValueOf((*document.Block)(nil)),
			"Inline":        reflect.ValueOf((*document.Inline)(nil)),
			"Document":      reflect.ValueOf((*document.Document)(nil)),
			"Heading":       reflect.ValueOf((*document.Heading)(nil)),
			"Paragraph":     reflect.ValueOf((*document.Paragraph)(nil)),
			"CodeBlock":     reflect.ValueOf((*document.CodeBlock)(nil)),
			"BlockQuote":    reflect.ValueOf((*document.BlockQuote)(nil)),
			"ThematicBreak": reflect.ValueOf((*document.ThematicBreak)(nil)),
			"RawBlock":      reflect.ValueOf((*document.RawBlock)(nil)),
			"Text":          reflect.ValueOf((*document.Text)(nil)),
			"Code":          reflect.ValueOf((*document.Code)(nil)),
			"Emph":          reflect.ValueOf((*document.Emph)(nil)),
			"Strong":        reflect.ValueOf((*document.Strong)(nil)),
		},
	}
}
