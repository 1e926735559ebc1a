package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleViewedCurrent_AdvancesToNextUnviewed(t *testing.T) {
	a := testApp(t)
	a.files = []core.ChangedFile{{Path: "a.go"}, {Path: "b.go"}, {Path: "c.go"}}
	a.applyFilter()
	a.selectedIdx = 0

	m, cmd := a.toggleViewedCurrent()
	a = m.(*App)
	assert.True(t, a.viewed.IsViewed("a.go"))
	assert.Equal(t, 1, a.selectedIdx)
	assert.NotNil(t, cmd)
}

func TestToggleViewedCurrent_WrapsOnceWhenTrailingFilesViewed(t *testing.T) {
	a := testApp(t)
	a.files = []core.ChangedFile{{Path: "a.go"}, {Path: "b.go"}, {Path: "c.go"}}
	a.applyFilter()
	a.viewed.MarkViewed("b.go")
	a.viewed.MarkViewed("c.go")
	a.selectedIdx = 2

	m, _ := a.toggleViewedCurrent()
	a = m.(*App)
	assert.True(t, a.viewed.IsViewed("c.go"))
	assert.Equal(t, 0, a.selectedIdx)
}

func TestToggleViewedCurrent_StaysPutWhenAllViewed(t *testing.T) {
	a := testApp(t)
	a.files = []core.ChangedFile{{Path: "a.go"}, {Path: "b.go"}}
	a.applyFilter()
	a.viewed.MarkViewed("a.go")
	a.selectedIdx = 1

	m, cmd := a.toggleViewedCurrent()
	a = m.(*App)
	assert.True(t, a.viewed.IsViewed("b.go"))
	assert.Equal(t, 1, a.selectedIdx)
	assert.Nil(t, cmd)
}

func TestToggleViewedCurrent_UnviewingDoesNotAdvance(t *testing.T) {
	a := testApp(t)
	a.files = []core.ChangedFile{{Path: "a.go"}, {Path: "b.go"}}
	a.applyFilter()
	a.viewed.MarkViewed("a.go")
	a.selectedIdx = 0

	m, cmd := a.toggleViewedCurrent()
	a = m.(*App)
	assert.False(t, a.viewed.IsViewed("a.go"))
	assert.Equal(t, 0, a.selectedIdx)
	assert.Nil(t, cmd)
}

func TestJumpToSelectedComment_ScrollsToHunkAndClosesOverlay(t *testing.T) {
	a := testApp(t)
	a.diff = core.Compute(core.NewTextBuffer([]byte("one\ntwo\nthree\n")), core.NewTextBuffer([]byte("one\nTWO\nthree\n")))
	a.currentPath = "a.go"
	a.scrollY = 0
	ctx := a.commentCtx
	anchor := core.Anchor{Selectors: []core.Selector{core.SelectorFromHunk(a.diff, 0)}}
	_, err := a.comments.Add("a.go", &ctx, "note", anchor)
	require.NoError(t, err)

	a.beginViewComments()
	require.Len(t, a.commentList, 1)
	a.commentSel = 0
	a.focus = FocusSidebar

	a.jumpToSelectedComment()

	assert.Equal(t, ModeNormal, a.mode)
	assert.Equal(t, FocusDiff, a.focus)
	assert.Equal(t, a.diff.Hunks()[0].StartRow, a.scrollY)
}

func TestJumpToSelectedComment_StaleAnchorReportsStatusWithoutJumping(t *testing.T) {
	a := testApp(t)
	a.diff = core.Compute(core.NewTextBuffer([]byte("one\ntwo\nthree\n")), core.NewTextBuffer([]byte("one\nTWO\nthree\n")))
	a.currentPath = "a.go"
	a.scrollY = 5
	ctx := a.commentCtx
	anchor := core.Anchor{Selectors: []core.Selector{{DigestHex: "deadbeefdeadbeef"}}}
	_, err := a.comments.Add("a.go", &ctx, "note", anchor)
	require.NoError(t, err)

	a.beginViewComments()
	require.Len(t, a.commentList, 1)
	a.commentSel = 0
	a.focus = FocusSidebar

	a.jumpToSelectedComment()

	assert.Equal(t, ModeViewComments, a.mode)
	assert.Equal(t, FocusSidebar, a.focus)
	assert.Equal(t, 5, a.scrollY)
	assert.Contains(t, a.status, "stale")
}

func TestHandleViewCommentsKey_QCloses(t *testing.T) {
	a := testApp(t)
	a.mode = ModeViewComments

	m, _ := a.handleViewCommentsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	a = m.(*App)
	assert.Equal(t, ModeNormal, a.mode)
}
