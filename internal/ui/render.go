package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kdiffteam/quickdiff/internal/core"
)

const sidebarWidth = 32

func (a *App) render() string {
	if a.width == 0 || a.height == 0 {
		return "loading…"
	}

	body := a.renderBody()
	bar := a.renderStatusBar()
	view := lipgloss.JoinVertical(lipgloss.Left, body, bar)

	switch a.mode {
	case ModeAddComment:
		return a.overlayOn(view, a.renderAddCommentOverlay())
	case ModeViewComments:
		return a.overlayOn(view, a.renderCommentListOverlay())
	case ModeSelectTheme:
		return a.overlayOn(view, a.renderThemeOverlay())
	case ModeHelp:
		return a.overlayOn(view, a.renderHelpOverlay())
	case ModePRPicker:
		return a.overlayOn(view, a.renderPRPickerOverlay())
	case ModePRAction:
		return a.overlayOn(view, a.renderPRActionOverlay())
	}
	return view
}

func (a *App) renderBody() string {
	barHeight := 1
	paneHeight := a.height - barHeight
	sidebar := a.renderSidebar(sidebarWidth, paneHeight)
	diffWidth := a.width - sidebarWidth
	if diffWidth < 10 {
		diffWidth = 10
	}
	diff := a.renderDiffPane(diffWidth, paneHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, diff)
}

func (a *App) renderSidebar(width, height int) string {
	focused := a.focus == FocusSidebar
	style := paneStyle(focused, width-2, height-2)
	header := paneHeaderStyle(focused).Render("Files")
	if a.fileFilter != "" || a.mode == ModeFilterFiles {
		header += dimItalicStyle.Render(" /" + a.fileFilter)
	}

	var lines []string
	lines = append(lines, header, "")
	for i, fi := range a.filteredIndices {
		f := a.files[fi]
		label := f.Path
		marker := " "
		if a.comments != nil && len(a.comments.ListForPath(f.Path, false)) > 0 {
			marker = "●"
		}
		line := fmt.Sprintf("%s %s", marker, label)
		switch {
		case i == a.selectedIdx:
			line = sidebarSelectedStyle.Render(line)
		case a.viewed.IsViewed(f.Path):
			line = sidebarViewedStyle.Render(line)
		default:
			line = sidebarUnviewedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a *App) renderDiffPane(width, height int) string {
	focused := a.focus == FocusDiff
	style := paneStyle(focused, width-2, height-2)

	var title string
	if a.currentPath != "" {
		title = string(a.currentPath)
	} else {
		title = "no file selected"
	}
	header := paneHeaderStyle(focused).Render(title)

	if a.diff == nil {
		return style.Render(header + "\n\n" + dimItalicStyle.Render("loading diff…"))
	}
	if !a.diff.HasChanges() {
		return style.Render(header + "\n\n" + dimItalicStyle.Render("no changes"))
	}

	bodyHeight := height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	rows := a.diff.RenderRows(a.scrollY, bodyHeight)
	var b strings.Builder
	for i, row := range rows {
		absRow := a.scrollY + i
		b.WriteString(a.renderDiffRow(absRow, row, width-4))
		b.WriteString("\n")
	}
	return style.Render(header + "\n\n" + strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderDiffRow(absRow int, row core.RenderRow, width int) string {
	cursor := " "
	if absRow == a.scrollY {
		cursor = "▸"
	}
	if hunkIdx, ok := a.diff.HunkAtRow(absRow); ok && a.commentedHunks[hunkIdx] {
		cursor = "▌"
	}

	var oldText, newText string
	if row.Old != nil {
		oldText = row.Old.Content
	}
	if row.New != nil {
		newText = row.New.Content
	}

	var gutter, text string
	switch row.Kind {
	case core.Delete:
		gutter, text = "-", diffRemovedStyle.Render(oldText)
	case core.Insert:
		gutter, text = "+", diffAddedStyle.Render(newText)
	case core.Replace:
		gutter, text = "~", diffRemovedStyle.Render(oldText) + " → " + diffAddedStyle.Render(newText)
	default:
		gutter, text = " ", newText
	}

	line := fmt.Sprintf("%s %s %s", cursor, gutter, text)
	if a.scrollX > 0 && len(line) > a.scrollX {
		line = line[a.scrollX:]
	}
	if len(line) > width && width > 1 {
		line = line[:width]
	}
	return line
}

func (a *App) renderStatusBar() string {
	left := fmt.Sprintf(" %s | %s | %s", a.modeLabel(), a.theme, a.viewModeLabel())
	if a.prActive {
		left += fmt.Sprintf(" | PR #%d", a.prCurrent)
	}
	right := a.status
	if a.errMsg != "" {
		right = "error: " + a.errMsg
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right + " ")
}

func (a *App) modeLabel() string {
	switch a.mode {
	case ModeFilterFiles:
		return "FILTER"
	case ModeAddComment:
		return "COMMENT"
	case ModeViewComments:
		return "COMMENTS"
	case ModeSelectTheme:
		return "THEME"
	case ModeHelp:
		return "HELP"
	case ModePRPicker:
		return "PR PICKER"
	case ModePRAction:
		return "PR ACTION"
	}
	if a.focus == FocusSidebar {
		return "NORMAL/sidebar"
	}
	return "NORMAL/diff"
}

func (a *App) viewModeLabel() string {
	if a.viewMode == ViewFullFile {
		return "full file"
	}
	return "hunks"
}

// overlayOn centers overlay on an otherwise blank full-screen canvas,
// matching the teacher's bordered centered-box idiom for modal content.
// base is not drawn: the overlay replaces the view while it is open.
func (a *App) overlayOn(base, overlay string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "))
}
