package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCommentStore_AddAndGet(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)

	id, err := s.Add("main.go", nil, "looks off", Anchor{})
	require.NoError(t, err)

	c, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "main.go", c.Path)
	assert.Equal(t, StatusOpen, c.Status)
	assert.NotZero(t, c.CreatedAtMs)
}

func TestFileCommentStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	id, err := s.Add("main.go", nil, "note", Anchor{})
	require.NoError(t, err)

	reopened, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	c, ok := reopened.Get(id)
	require.True(t, ok)
	assert.Equal(t, "note", c.Message)

	assert.FileExists(t, filepath.Join(dir, ".quickdiff", "comments.json"))
}

func TestFileCommentStore_ResolveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	id, _ := s.Add("main.go", nil, "note", Anchor{})

	ok, err := s.Resolve(id)
	require.NoError(t, err)
	assert.True(t, ok)
	c, _ := s.Get(id)
	firstResolvedAt := c.ResolvedAtMs
	assert.NotZero(t, firstResolvedAt)

	ok, err = s.Resolve(id)
	require.NoError(t, err)
	assert.True(t, ok)
	c2, _ := s.Get(id)
	assert.Equal(t, firstResolvedAt, c2.ResolvedAtMs)
}

func TestFileCommentStore_ResolveUnknownID(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	ok, err := s.Resolve(999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCommentStore_ListFiltersResolved(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	id1, _ := s.Add("a.go", nil, "one", Anchor{})
	_, _ = s.Add("b.go", nil, "two", Anchor{})
	_, _ = s.Resolve(id1)

	open := s.List(false)
	assert.Len(t, open, 1)
	all := s.List(true)
	assert.Len(t, all, 2)
}

func TestFileCommentStore_ListForPath(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)
	_, _ = s.Add("a.go", nil, "one", Anchor{})
	_, _ = s.Add("b.go", nil, "two", Anchor{})

	assert.Len(t, s.ListForPath("a.go", true), 1)
	assert.Len(t, s.ListForPath("c.go", true), 0)
}

func TestCommentContext_Matches(t *testing.T) {
	base := BaseContext("main")
	assert.True(t, base.Matches(BaseContext("main")))
	assert.False(t, base.Matches(BaseContext("develop")))

	var unscoped *CommentContext
	assert.True(t, unscoped.Matches(WorktreeContext()))
	assert.True(t, unscoped.Matches(BaseContext("anything")))
}

func TestFileCommentStore_ListOrdersOpenBeforeResolved(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileCommentStore(dir)
	require.NoError(t, err)

	first, err := s.Add("a.go", nil, "first", Anchor{})
	require.NoError(t, err)
	second, err := s.Add("a.go", nil, "second", Anchor{})
	require.NoError(t, err)
	third, err := s.Add("a.go", nil, "third", Anchor{})
	require.NoError(t, err)

	_, err = s.Resolve(first)
	require.NoError(t, err)

	list := s.List(true)
	require.Len(t, list, 3)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, third, list[1].ID)
	assert.Equal(t, first, list[2].ID)
	assert.Equal(t, StatusOpen, list[0].Status)
	assert.Equal(t, StatusOpen, list[1].Status)
	assert.Equal(t, StatusResolved, list[2].Status)
}

func TestMemoryCommentStore_Basic(t *testing.T) {
	s := NewMemoryCommentStore()
	id, err := s.Add("x.go", nil, "hi", Anchor{})
	require.NoError(t, err)
	ok, err := s.Resolve(id)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Resolve(id)
	require.NoError(t, err)
	assert.True(t, ok)
}
