package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/worker"
)

func overlayBox(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorderColor).
		Padding(1, 2).
		Width(width)
}

func (a *App) renderAddCommentOverlay() string {
	title := commentOverlayTitleStyle.Render("Add comment")
	hint := commentOverlayHintStyle.Render("enter: save  ·  esc: cancel")
	body := a.commentDraft
	if body == "" {
		body = dimItalicStyle.Render("type your comment…")
	}
	content := strings.Join([]string{title, commentOverlaySepStyle.Render(strings.Repeat("─", 40)), body, "", hint}, "\n")
	return overlayBox(50).Render(content)
}

func (a *App) renderCommentListOverlay() string {
	title := commentOverlayTitleStyle.Render(fmt.Sprintf("Comments — %s", a.currentPath))
	var lines []string
	lines = append(lines, title, commentOverlaySepStyle.Render(strings.Repeat("─", 40)))
	if len(a.commentList) == 0 {
		lines = append(lines, dimItalicStyle.Render("no comments on this file"))
	}
	for i, c := range a.commentList {
		header := commentBoxHeaderStyle.Render(fmt.Sprintf("#%d %s", c.ID, c.Status))
		meta := commentBoxMetaStyle.Render(core.FormatAnchorSummary(c.Anchor))
		line := header + "  " + meta + "\n  " + c.Message
		if i == a.commentSel {
			line = sidebarSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", commentOverlayHintStyle.Render("j/k: move  ·  enter: jump  ·  r: resolve  ·  a: toggle resolved  ·  esc/q: close"))
	return overlayBox(60).Render(strings.Join(lines, "\n"))
}

func (a *App) renderThemeOverlay() string {
	title := commentOverlayTitleStyle.Render("Theme")
	var lines []string
	lines = append(lines, title, commentOverlaySepStyle.Render(strings.Repeat("─", 30)))
	for i, name := range themeNames {
		line := name
		if i == a.themeSel {
			line = sidebarSelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", commentOverlayHintStyle.Render("j/k: move  ·  enter: keep  ·  esc: cancel"))
	return overlayBox(34).Render(strings.Join(lines, "\n"))
}

func (a *App) renderHelpOverlay() string {
	title := commentOverlayTitleStyle.Render("Help")
	var lines []string
	lines = append(lines, title, commentOverlaySepStyle.Render(strings.Repeat("─", 40)))
	groups := []struct {
		label string
		keys  []string
	}{
		{"global", []string{"q quit", "? help", "tab switch pane", "v hunks/full", "s both panes", "[ old only", "] new only", "space toggle viewed", "r reload", "t theme"}},
		{"sidebar", []string{"j/k move", "enter focus diff", "/ filter"}},
		{"diff", []string{"j/k scroll", "ctrl+u/d page", "h/l pan", "g/G top/bottom", "n/N next/prev hunk", "c add comment", "C view comments", "p PR actions"}},
	}
	for _, g := range groups {
		lines = append(lines, commentBoxHeaderStyle.Render(g.label))
		for _, k := range g.keys {
			lines = append(lines, "  "+k)
		}
	}
	lines = append(lines, "", commentOverlayHintStyle.Render("any key: close"))
	return overlayBox(44).Render(strings.Join(lines, "\n"))
}

func (a *App) renderPRPickerOverlay() string {
	title := commentOverlayTitleStyle.Render("Open pull requests")
	var lines []string
	lines = append(lines, title, commentOverlaySepStyle.Render(strings.Repeat("─", 40)))
	if len(a.prList) == 0 {
		lines = append(lines, dimItalicStyle.Render("no open PRs"))
	}
	for i, pr := range a.prList {
		line := fmt.Sprintf("#%d %s", pr.Number, pr.Title)
		if pr.Draft {
			line += " (draft)"
		}
		if i == a.prSel {
			line = sidebarSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", commentOverlayHintStyle.Render("j/k: move  ·  enter: open  ·  esc: close"))
	return overlayBox(54).Render(strings.Join(lines, "\n"))
}

func (a *App) renderPRActionOverlay() string {
	title := commentOverlayTitleStyle.Render(fmt.Sprintf("PR #%d action", a.prCurrent))
	action := "(choose: a approve, c comment, r request changes)"
	switch a.prAction {
	case worker.PRActionApprove:
		action = "approve"
	case worker.PRActionComment:
		action = "comment"
	case worker.PRActionRequestChanges:
		action = "request changes"
	}
	body := a.prActionBody
	if body == "" {
		body = dimItalicStyle.Render("type a review body…")
	}
	lines := []string{title, commentOverlaySepStyle.Render(strings.Repeat("─", 40)), commentBoxMetaStyle.Render(action), body, "", commentOverlayHintStyle.Render("a/c/r: choose  ·  enter: submit  ·  esc: cancel")}
	return overlayBox(50).Render(strings.Join(lines, "\n"))
}
