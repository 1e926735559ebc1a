package ui

import "github.com/charmbracelet/lipgloss"

// Pane border colors
var (
	focusedBorderColor   = lipgloss.Color("62")  // bright purple/blue
	unfocusedBorderColor = lipgloss.Color("240") // dim gray
)

// Diff colors. The diff pane paints removed and added text with these
// fixed styles; the highlight cache's theme styles are not applied to
// diff rows.
var (
	diffAddedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diffRemovedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	diffHunkHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	diffFileHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	dimItalicStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("62")).
				Bold(true)
)

// Sidebar
var (
	sidebarSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	sidebarViewedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sidebarUnviewedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sidebarCommentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Cursor / selection backgrounds for the diff pane
var (
	diffCursorBg      = lipgloss.Color("238")
	diffFocusedHunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
)

// Comment overlay
var (
	commentOverlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	commentOverlaySepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	commentOverlayHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	commentBoxHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	commentBoxMetaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func paneStyle(focused bool, width, height int) lipgloss.Style {
	borderColor := unfocusedBorderColor
	if focused {
		borderColor = focusedBorderColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(height)
}

func paneHeaderStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
}
