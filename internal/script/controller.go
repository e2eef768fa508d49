package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mdrun/internal/document"
)

// MetaKey is the front-matter key gating fragment execution. It must be the
// boolean true; any other value, including the string "true" or an absent key,
// bypasses the whole document.
const MetaKey = "mdrun"

// Enabled reports whether a document's metadata opts in to fragment execution.
func Enabled(meta map[string]any) bool {
	v, ok := meta[MetaKey]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Process executes every fragment of the document in document order, mutating
// the tree in place. The gate is checked once: a document that does not opt in
// comes back untouched without any fragment being inspected. The only error is
// a failure to construct the execution environment; fragment failures are
// warnings and never abort the run.
func Process(doc *document.Document, log *zap.Logger) error {
	if !Enabled(doc.Meta) {
		return nil
	}

	env, err := NewEnvironment()
	if err != nil {
		return fmt.Errorf("create environment: %w", err)
	}
	log = log.With(
		zap.String("path", doc.Source),
		zap.String("run", uuid.NewString()),
	)
	exec := NewExecutor(env, NewLocator(loadSource(doc.Source, log)), log)

	doc.Transform(
		func(b document.Block) ([]document.Block, bool) {
			cb, ok := b.(*document.CodeBlock)
			if !ok {
				return nil, false
			}
			out := exec.Block(cb)
			switch out.Kind {
			case OutcomeRemoved:
				return nil, true
			case OutcomeSubstituted:
				return out.Nodes, true
			}
			return nil, false
		},
		func(in document.Inline) ([]document.Inline, bool) {
			code, ok := in.(*document.Code)
			if !ok {
				return nil, false
			}
			out := exec.Inline(code)
			switch out.Kind {
			case OutcomeRemoved:
				return nil, true
			case OutcomeSubstituted:
				return out.Nodes, true
			}
			return nil, false
		},
	)
	return nil
}

// loadSource reads the document's original text for diagnostics. An unreadable
// source degrades every position to the unknown sentinel; it never fails the
// run.
func loadSource(path string, log *zap.Logger) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Debug("source unavailable for diagnostics", zap.Error(err))
		return ""
	}
	return NormalizeNewlines(string(b))
}

// NormalizeNewlines rewrites CRLF and lone CR line endings to LF, so locator
// offsets agree with the parser's line splitting.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
