package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	src := "# title\n\nx := 5\n\nsome `x := 5` inline\n"

	t.Run("Block Match", func(t *testing.T) {
		l := NewLocator(src)
		pos := l.Locate("x := 5", LevelBlock)
		assert.Equal(t, 3, pos.Line)
		assert.Zero(t, pos.Col)
		assert.True(t, pos.Known())
	})

	t.Run("Inline Match Uses Delimiters", func(t *testing.T) {
		// The inline lookup must skip the identical block text on line 3.
		l := NewLocator(src)
		pos := l.Locate("x := 5", LevelInline)
		assert.Equal(t, 5, pos.Line)
		assert.Equal(t, 6, pos.Col)
	})

	t.Run("Miss Keeps Cursor", func(t *testing.T) {
		l := NewLocator(src)
		pos := l.Locate("not present", LevelBlock)
		assert.False(t, pos.Known())
		assert.Equal(t, "unknown position", pos.String())
		// The failed search must not have consumed anything.
		assert.Equal(t, 3, l.Locate("x := 5", LevelBlock).Line)
	})

	t.Run("Empty Source", func(t *testing.T) {
		l := NewLocator("")
		assert.False(t, l.Locate("x", LevelBlock).Known())
	})
}

func TestLocateMonotonicCursor(t *testing.T) {
	src := "dup\n\ndup\n\ndup\n"
	l := NewLocator(src)

	first := l.Locate("dup", LevelBlock)
	second := l.Locate("dup", LevelBlock)
	third := l.Locate("dup", LevelBlock)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 3, second.Line)
	assert.Equal(t, 5, third.Line)

	// All occurrences consumed; earlier text is never rematched.
	assert.False(t, l.Locate("dup", LevelBlock).Known())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "line 4", Position{Line: 4}.String())
	assert.Equal(t, "line 4, column 7", Position{Line: 4, Col: 7}.String())
	assert.Equal(t, "unknown position", Position{}.String())
}
