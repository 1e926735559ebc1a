package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHighlighter struct {
	calls int
}

func (h *countingHighlighter) Highlight(language, content string) [][]StyledSpan {
	h.calls++
	return [][]StyledSpan{{{Start: 0, End: len(content)}}}
}

func TestCache_HitsOnRepeatedContent(t *testing.T) {
	inner := &countingHighlighter{}
	c := NewCache(inner)

	c.Highlight("go", "package main")
	c.Highlight("go", "package main")
	assert.Equal(t, 1, inner.calls)
}

func TestCache_MissesOnDifferentContent(t *testing.T) {
	inner := &countingHighlighter{}
	c := NewCache(inner)

	c.Highlight("go", "package main")
	c.Highlight("go", "package other")
	assert.Equal(t, 2, inner.calls)
}

func TestCache_MissesOnDifferentLanguageSameContent(t *testing.T) {
	inner := &countingHighlighter{}
	c := NewCache(inner)

	c.Highlight("go", "x")
	c.Highlight("rust", "x")
	assert.Equal(t, 2, inner.calls)
}

func TestEnclosingScope_FindsNearestOpener(t *testing.T) {
	lines := []string{
		"package main",
		"",
		"func Foo() {",
		"    x := 1",
		"    y := 2",
		"}",
	}
	scope, ok := EnclosingScope(lines, 4)
	require.True(t, ok)
	assert.Equal(t, 2, scope.Line)
	assert.Contains(t, scope.Label, "func Foo")
}

func TestEnclosingScope_NoneAtTopLevel(t *testing.T) {
	lines := []string{"package main", ""}
	_, ok := EnclosingScope(lines, 1)
	assert.False(t, ok)
}
