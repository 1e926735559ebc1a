package ui

// Mode discriminates the ReviewEngine's input-handling mode. Keys are
// dispatched by Update based on the current Mode, mirroring the
// teacher's AppMode switch in app.go.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddComment
	ModeViewComments
	ModeFilterFiles
	ModeSelectTheme
	ModeHelp
	ModePRPicker
	ModePRAction
)

// Focus names the pane holding keyboard focus.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusDiff
)

// ViewMode is the hunks-only / full-file toggle shown in the status bar.
// renderDiffPane draws the full row stream (every line of the file) in
// both modes; hunks-only mode does not hide unchanged rows.
type ViewMode int

const (
	ViewHunksOnly ViewMode = iota
	ViewFullFile
)

// PaneMode records which side(s) of the diff the user selected (both,
// old only, new only). renderDiffRow draws the same rows in every mode;
// no side is hidden.
type PaneMode int

const (
	PaneBoth PaneMode = iota
	PaneOldOnly
	PaneNewOnly
)

func (m ViewMode) toggled() ViewMode {
	if m == ViewHunksOnly {
		return ViewFullFile
	}
	return ViewHunksOnly
}
