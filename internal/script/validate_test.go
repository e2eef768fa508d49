package script

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdrun/internal/document"
)

func nilValue() reflect.Value {
	var v any
	return reflect.ValueOf(&v).Elem()
}

func TestNormalizeBlocks(t *testing.T) {
	para := document.Para(document.Str("p"))

	t.Run("Nil Means Delete", func(t *testing.T) {
		for _, rv := range []reflect.Value{{}, nilValue()} {
			nodes, verr := NormalizeBlocks(rv)
			require.Nil(t, verr)
			assert.Empty(t, nodes)
		}
	})

	t.Run("Single Node", func(t *testing.T) {
		nodes, verr := NormalizeBlocks(reflect.ValueOf(para))
		require.Nil(t, verr)
		assert.Equal(t, []document.Block{para}, nodes)
	})

	t.Run("Node Lists", func(t *testing.T) {
		tests := []struct {
			name string
			raw  any
			want int
		}{
			{"Typed List", []document.Block{para, document.Rule()}, 2},
			{"Generic List", []any{para, document.Rule()}, 2},
			{"Concrete List", []*document.Paragraph{para}, 1},
			{"Empty List", []any{}, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				nodes, verr := NormalizeBlocks(reflect.ValueOf(tt.raw))
				require.Nil(t, verr)
				assert.Len(t, nodes, tt.want)
			})
		}
	})

	t.Run("Invalid Shapes", func(t *testing.T) {
		tests := []struct {
			name string
			raw  any
		}{
			{"Scalar String", "hi"},
			{"Scalar Number", 5},
			{"Inline Node", document.Str("s")},
			{"Mixed List", []any{para, document.Str("s")}},
			{"Inline List", []document.Inline{document.Str("s")}},
			{"List With Nil Element", []any{para, nil}},
			{"Map", map[string]any{"a": 1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				nodes, verr := NormalizeBlocks(reflect.ValueOf(tt.raw))
				require.NotNil(t, verr)
				assert.Nil(t, nodes)
				assert.Equal(t, LevelBlock, verr.Level)
				assert.Contains(t, verr.Error(), "block fragments must return")
			})
		}
	})
}

func TestNormalizeInlines(t *testing.T) {
	str := document.Str("s")

	t.Run("Nil Is Invalid", func(t *testing.T) {
		// Unlike block level, an inline fragment with no value must warn, not
		// silently vanish.
		for _, rv := range []reflect.Value{{}, nilValue()} {
			nodes, verr := NormalizeInlines(rv)
			require.NotNil(t, verr)
			assert.Nil(t, nodes)
			assert.Contains(t, verr.Error(), "number or a string")
		}
	})

	t.Run("Scalars Become Text", func(t *testing.T) {
		tests := []struct {
			name string
			raw  any
			want string
		}{
			{"Float", 3.14, "3.14"},
			{"Int", 42, "42"},
			{"Uint", uint8(7), "7"},
			{"String", "hello", "hello"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				nodes, verr := NormalizeInlines(reflect.ValueOf(tt.raw))
				require.Nil(t, verr)
				require.Len(t, nodes, 1)
				assert.Equal(t, document.Str(tt.want), nodes[0])
			})
		}
	})

	t.Run("Single Node", func(t *testing.T) {
		nodes, verr := NormalizeInlines(reflect.ValueOf(str))
		require.Nil(t, verr)
		assert.Equal(t, []document.Inline{str}, nodes)
	})

	t.Run("Node List", func(t *testing.T) {
		nodes, verr := NormalizeInlines(reflect.ValueOf([]document.Inline{str, document.Em(str)}))
		require.Nil(t, verr)
		assert.Len(t, nodes, 2)
	})

	t.Run("Invalid Shapes", func(t *testing.T) {
		tests := []struct {
			name string
			raw  any
		}{
			{"Block Node", document.Para(str)},
			{"Mixed List", []any{str, document.Para(str)}},
			{"Bool", true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				nodes, verr := NormalizeInlines(reflect.ValueOf(tt.raw))
				require.NotNil(t, verr)
				assert.Nil(t, nodes)
				assert.Equal(t, LevelInline, verr.Level)
			})
		}
	})
}
