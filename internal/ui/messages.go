package ui

import (
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/prhub"
	"github.com/kdiffteam/quickdiff/internal/worker"
)

// FilesLoadedMsg carries a freshly listed changed-file set for the
// current DiffSource.
type FilesLoadedMsg struct {
	Files []core.ChangedFile
	Err   error
}

// DiffResultMsg wraps a worker.DiffResponse as it crosses into the
// Bubble Tea event loop.
type DiffResultMsg struct {
	Resp worker.DiffResponse
}

// PRResultMsg wraps a worker.PRResponse.
type PRResultMsg struct {
	Resp worker.PRResponse
}

// PRListLoadedMsg carries the result of listing open PRs for the
// picker.
type PRListLoadedMsg struct {
	PRs []prhub.PRSummary
	Err error
}

// WatchChangedMsg fires when the filesystem watcher coalesces one or
// more changes under the repo root.
type WatchChangedMsg struct{}

// pollTickMsg re-arms the idle poll that drives worker/watcher draining,
// mirroring original_source's ~50ms event::poll loop.
type pollTickMsg struct{}

// ErrMsg reports an error from a one-off tea.Cmd (e.g. a suspended
// external editor exiting non-zero) that isn't already carried by a
// more specific result message.
type ErrMsg struct {
	Err error
}
