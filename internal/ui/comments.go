package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/highlight"
)

// beginAddComment opens the comment-draft overlay anchored to the hunk
// currently under the cursor.
func (a *App) beginAddComment() {
	if a.diff == nil || !a.diff.HasChanges() {
		a.status = "no hunk to comment on"
		return
	}
	if _, ok := a.diff.HunkAtRow(a.scrollY); !ok {
		a.status = "move to a hunk to add a comment"
		return
	}
	a.commentDraft = ""
	a.mode = ModeAddComment
}

func (a *App) handleAddCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.commentDraft = ""
	case tea.KeyEnter:
		a.saveComment()
		a.mode = ModeNormal
	case tea.KeyBackspace:
		if len(a.commentDraft) > 0 {
			a.commentDraft = a.commentDraft[:len(a.commentDraft)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		a.commentDraft += msg.String()
	}
	a.markDirty()
	return a, nil
}

// saveComment persists the current draft anchored to the hunk the
// cursor sits in, keyed to the diff source's CommentContext.
func (a *App) saveComment() {
	if a.commentDraft == "" || a.diff == nil {
		return
	}
	hunkIdx, ok := a.diff.HunkAtRow(a.scrollY)
	if !ok {
		return
	}
	anchor := core.Anchor{Selectors: []core.Selector{core.SelectorFromHunk(a.diff, hunkIdx)}}
	ctx := a.commentCtx
	if _, err := a.comments.Add(string(a.currentPath), &ctx, a.commentDraft, anchor); err != nil {
		a.errMsg = err.Error()
		return
	}
	a.commentDraft = ""
	a.refreshCommentedHunks()
}

func (a *App) beginViewComments() {
	a.commentList = a.comments.ListForPath(string(a.currentPath), a.includeResolved)
	a.commentSel = 0
	a.mode = ModeViewComments
}

func (a *App) handleViewCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc || msg.String() == "C" || msg.String() == "q":
		a.mode = ModeNormal
	case key.Matches(msg, SidebarKeys.Up):
		if a.commentSel > 0 {
			a.commentSel--
		}
	case key.Matches(msg, SidebarKeys.Down):
		if a.commentSel < len(a.commentList)-1 {
			a.commentSel++
		}
	case msg.Type == tea.KeyEnter:
		a.jumpToSelectedComment()
	case msg.String() == "r":
		a.resolveSelectedComment()
	case msg.String() == "a":
		a.includeResolved = !a.includeResolved
		a.commentList = a.comments.ListForPath(string(a.currentPath), a.includeResolved)
		if a.commentSel >= len(a.commentList) {
			a.commentSel = max(0, len(a.commentList)-1)
		}
	}
	a.markDirty()
	return a, nil
}

// jumpToSelectedComment scrolls the diff to the hunk the selected
// comment's anchor still resolves to, and switches focus to it. If the
// anchor's digest no longer matches any hunk in the current diff, the
// comment is stale: report it in the status line and stay put rather
// than jumping somewhere unrelated.
func (a *App) jumpToSelectedComment() {
	if a.commentSel < 0 || a.commentSel >= len(a.commentList) {
		return
	}
	c := a.commentList[a.commentSel]
	if a.diff == nil {
		a.status = "comment anchor is stale (hunk not found)"
		return
	}
	idx, ok := core.RelocateHunk(a.diff, c.Anchor)
	if !ok {
		a.status = "comment anchor is stale (hunk not found)"
		return
	}
	a.scrollY = a.diff.Hunks()[idx].StartRow
	a.focus = FocusDiff
	a.mode = ModeNormal
}

func (a *App) resolveSelectedComment() {
	if a.commentSel < 0 || a.commentSel >= len(a.commentList) {
		return
	}
	id := a.commentList[a.commentSel].ID
	if _, err := a.comments.Resolve(id); err != nil {
		a.errMsg = err.Error()
		return
	}
	a.commentList = a.comments.ListForPath(string(a.currentPath), a.includeResolved)
	a.refreshCommentedHunks()
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
	case tea.KeyEnter:
		a.mode = ModeNormal
		a.focus = FocusSidebar
	case tea.KeyBackspace:
		if len(a.fileFilter) > 0 {
			a.fileFilter = a.fileFilter[:len(a.fileFilter)-1]
			a.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		a.fileFilter += msg.String()
		a.applyFilter()
	}
	a.markDirty()
	return a, nil
}

func (a *App) handleThemeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		a.theme = a.originalTheme
		a.applyTheme()
		a.mode = ModeNormal
	case msg.Type == tea.KeyEnter:
		a.mode = ModeNormal
	case key.Matches(msg, SidebarKeys.Up):
		if a.themeSel > 0 {
			a.themeSel--
		}
		a.theme = themeNames[a.themeSel]
		a.applyTheme()
	case key.Matches(msg, SidebarKeys.Down):
		if a.themeSel < len(themeNames)-1 {
			a.themeSel++
		}
		a.theme = themeNames[a.themeSel]
		a.applyTheme()
	}
	a.markDirty()
	return a, nil
}

func (a *App) applyTheme() {
	a.highlighter = highlight.NewCache(highlight.NewChromaHighlighter(chromaStyleFor(a.theme)))
	a.cfg.Theme = a.theme
}

func (a *App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.mode = ModeNormal
	a.markDirty()
	return a, nil
}
