package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey dispatches a keypress to the mode-specific handler. Modes
// that take over the whole screen (overlays) get first refusal; Normal
// mode routes further by which pane has focus.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeAddComment:
		return a.handleAddCommentKey(msg)
	case ModeViewComments:
		return a.handleViewCommentsKey(msg)
	case ModeFilterFiles:
		return a.handleFilterKey(msg)
	case ModeSelectTheme:
		return a.handleThemeKey(msg)
	case ModeHelp:
		return a.handleHelpKey(msg)
	case ModePRPicker:
		return a.handlePRPickerKey(msg)
	case ModePRAction:
		return a.handlePRActionKey(msg)
	}
	return a.handleNormalKey(msg)
}

func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, GlobalKeys.Quit):
		a.shouldQuit = true
		return a, tea.Quit
	case key.Matches(msg, GlobalKeys.Help):
		a.mode = ModeHelp
		a.markDirty()
		return a, nil
	case key.Matches(msg, GlobalKeys.Tab):
		a.toggleFocus()
		return a, nil
	case key.Matches(msg, GlobalKeys.ToggleView):
		a.viewMode = a.viewMode.toggled()
		a.markDirty()
		return a, nil
	case key.Matches(msg, GlobalKeys.ToggleSide):
		a.paneMode = PaneBoth
		a.markDirty()
		return a, nil
	case key.Matches(msg, GlobalKeys.ToggleOld):
		a.paneMode = PaneOldOnly
		a.markDirty()
		return a, nil
	case key.Matches(msg, GlobalKeys.ToggleNew):
		a.paneMode = PaneNewOnly
		a.markDirty()
		return a, nil
	case key.Matches(msg, GlobalKeys.ToggleViewed):
		return a.toggleViewedCurrent()
	case key.Matches(msg, GlobalKeys.Reload):
		return a, a.manualReload()
	case key.Matches(msg, GlobalKeys.Theme):
		a.originalTheme = a.theme
		a.themeSel = themeIndex(a.theme)
		a.mode = ModeSelectTheme
		a.markDirty()
		return a, nil
	}

	if a.focus == FocusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleDiffKey(msg)
}

func (a *App) toggleFocus() {
	if a.focus == FocusSidebar {
		a.focus = FocusDiff
	} else {
		a.focus = FocusSidebar
	}
	a.markDirty()
}

func (a *App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SidebarKeys.Up):
		return a.selectPrev()
	case key.Matches(msg, SidebarKeys.Down):
		return a.selectNext()
	case key.Matches(msg, SidebarKeys.Enter):
		a.focus = FocusDiff
		a.markDirty()
		return a, nil
	case key.Matches(msg, SidebarKeys.Filter):
		a.mode = ModeFilterFiles
		a.markDirty()
		return a, nil
	}
	return a, nil
}

func (a *App) selectNext() (tea.Model, tea.Cmd) {
	if len(a.filteredIndices) == 0 {
		return a, nil
	}
	if a.selectedIdx < len(a.filteredIndices)-1 {
		a.selectedIdx++
	}
	a.markDirty()
	return a, a.selectFileCmd(a.filteredIndices[a.selectedIdx])
}

func (a *App) selectPrev() (tea.Model, tea.Cmd) {
	if len(a.filteredIndices) == 0 {
		return a, nil
	}
	if a.selectedIdx > 0 {
		a.selectedIdx--
	}
	a.markDirty()
	return a, a.selectFileCmd(a.filteredIndices[a.selectedIdx])
}

// toggleViewedCurrent toggles the current file's viewed flag. If that
// newly marks it viewed, selection advances to the next un-viewed file
// in the visible (filtered) set, wrapping once; if every visible file
// is already viewed, selection stays put.
func (a *App) toggleViewedCurrent() (tea.Model, tea.Cmd) {
	idx, ok := a.currentFileIndex()
	if !ok {
		return a, nil
	}
	nowViewed := a.viewed.ToggleViewed(a.files[idx].Path)
	a.markDirty()
	if !nowViewed {
		return a, nil
	}

	n := len(a.filteredIndices)
	for step := 1; step <= n; step++ {
		next := (a.selectedIdx + step) % n
		if !a.viewed.IsViewed(a.files[a.filteredIndices[next]].Path) {
			a.selectedIdx = next
			return a, a.selectFileCmd(a.filteredIndices[a.selectedIdx])
		}
	}
	return a, nil
}

func (a *App) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DiffKeys.Up):
		a.scrollDiff(-1)
	case key.Matches(msg, DiffKeys.Down):
		a.scrollDiff(1)
	case key.Matches(msg, DiffKeys.PageUp):
		a.scrollDiff(-a.diffPageSize())
	case key.Matches(msg, DiffKeys.PageDown):
		a.scrollDiff(a.diffPageSize())
	case key.Matches(msg, DiffKeys.Left):
		a.scrollX = max(0, a.scrollX-4)
	case key.Matches(msg, DiffKeys.Right):
		a.scrollX += 4
	case key.Matches(msg, DiffKeys.Top):
		a.scrollY = 0
	case key.Matches(msg, DiffKeys.Bottom):
		if a.diff != nil {
			a.scrollY = max(0, a.diff.RowCount()-a.diffPageSize())
		}
	case key.Matches(msg, DiffKeys.NextHunk):
		a.jumpHunk(1)
	case key.Matches(msg, DiffKeys.PrevHunk):
		a.jumpHunk(-1)
	case key.Matches(msg, DiffKeys.AddComment):
		a.beginAddComment()
	case key.Matches(msg, DiffKeys.ViewComments):
		a.beginViewComments()
	case key.Matches(msg, DiffKeys.PR):
		if a.prActive {
			a.beginPRAction()
		}
	case key.Matches(msg, DiffKeys.CopyPath):
		a.copyCurrentPath()
	case key.Matches(msg, DiffKeys.OpenEditor):
		cmd := a.openInEditor()
		a.markDirty()
		return a, cmd
	default:
		return a, nil
	}
	a.markDirty()
	return a, nil
}

func (a *App) diffPageSize() int {
	h := a.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) scrollDiff(delta int) {
	if a.diff == nil {
		return
	}
	a.scrollY += delta
	if a.scrollY < 0 {
		a.scrollY = 0
	}
	top := a.diff.RowCount() - 1
	if top < 0 {
		top = 0
	}
	if a.scrollY > top {
		a.scrollY = top
	}
}

func (a *App) jumpHunk(dir int) {
	if a.diff == nil {
		return
	}
	var row int
	var ok bool
	if dir > 0 {
		row, ok = a.diff.NextHunkRow(a.scrollY)
	} else {
		row, ok = a.diff.PrevHunkRow(a.scrollY)
	}
	if ok {
		a.scrollY = row
		if idx, hok := a.diff.HunkAtRow(row); hok {
			a.focusedHunk = idx
		}
	}
}
