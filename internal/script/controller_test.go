package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mdrun/internal/document"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want bool
	}{
		{"Boolean True", map[string]any{MetaKey: true}, true},
		{"Boolean False", map[string]any{MetaKey: false}, false},
		{"String True", map[string]any{MetaKey: "true"}, false},
		{"Number", map[string]any{MetaKey: 1}, false},
		{"Absent", map[string]any{}, false},
		{"Nil Meta", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enabled(tt.meta))
		})
	}
}

func TestProcessBypass(t *testing.T) {
	// Without the enable flag no fragment may even be inspected: a fragment
	// that would fail to parse must produce no warning and no change.
	build := func() *document.Document {
		return &document.Document{
			Meta: map[string]any{"title": "x"},
			Blocks: []document.Block{
				document.Para(document.Str("hello")),
				fragment("this would never parse (", nil),
			},
		}
	}
	core, logs := observer.New(zapcore.WarnLevel)
	doc := build()

	require.NoError(t, Process(doc, zap.New(core)))

	assert.Empty(t, cmp.Diff(build(), doc))
	assert.Zero(t, logs.Len())
}

func TestProcessSharedEnvironment(t *testing.T) {
	doc := &document.Document{
		Meta: map[string]any{MetaKey: true},
		Blocks: []document.Block{
			fragment("answer := 5", nil),
			document.Para(
				document.Str("the answer is "),
				&document.Code{Classes: []string{MarkerClass}, Text: "answer"},
			),
		},
	}

	require.NoError(t, Process(doc, zap.NewNop()))

	// The defining fragment returned nothing and was removed; the later
	// inline fragment read the shared state it left behind.
	require.Len(t, doc.Blocks, 1)
	p := doc.Blocks[0].(*document.Paragraph)
	assert.Equal(t, []document.Inline{
		document.Str("the answer is "),
		document.Str("5"),
	}, p.Content)
}

func TestProcessOutcomesInPlace(t *testing.T) {
	doc := &document.Document{
		Meta: map[string]any{MetaKey: true},
		Blocks: []document.Block{
			fragment(`doc.Blocks(doc.Head(2, doc.Str("generated")), doc.Para(doc.Str("body")))`, nil),
			fragment("x := 1", document.Attributes{"exec": "false"}),
			&document.BlockQuote{Blocks: []document.Block{
				fragment("cleanup := true", nil),
			}},
		},
	}

	require.NoError(t, Process(doc, zap.NewNop()))

	require.Len(t, doc.Blocks, 4)
	assert.Equal(t, document.Head(2, document.Str("generated")), doc.Blocks[0])
	assert.Equal(t, document.Para(document.Str("body")), doc.Blocks[1])
	assert.Equal(t, fragment("x := 1", document.Attributes{"exec": "false"}), doc.Blocks[2])
	// The quoted fragment returned nothing and was removed from inside its
	// quote.
	assert.Empty(t, doc.Blocks[3].(*document.BlockQuote).Blocks)
}

func TestProcessDuplicateFragmentPositions(t *testing.T) {
	src := "---\nmdrun: true\n---\n\n```{.run}\nboom(\n```\n\n```{.run}\nboom(\n```\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	doc := &document.Document{
		Source: path,
		Meta:   map[string]any{MetaKey: true},
		Blocks: []document.Block{
			fragment("boom(\n", nil),
			fragment("boom(\n", nil),
		},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	require.NoError(t, Process(doc, zap.New(core)))

	entries := logs.All()
	require.Len(t, entries, 2)
	first := entries[0].ContextMap()["line"].(int64)
	second := entries[1].ContextMap()["line"].(int64)
	assert.EqualValues(t, 6, first)
	assert.EqualValues(t, 10, second)
}

func TestProcessUnreadableSource(t *testing.T) {
	doc := &document.Document{
		Source: filepath.Join(t.TempDir(), "missing.md"),
		Meta:   map[string]any{MetaKey: true},
		Blocks: []document.Block{fragment("boom(", nil)},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	// An unreadable source degrades positions, it never fails the run.
	require.NoError(t, Process(doc, zap.New(core)))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown position", entries[0].ContextMap()["position"])
	_, hasLine := entries[0].ContextMap()["line"]
	assert.False(t, hasLine)
}
