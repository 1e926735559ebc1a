package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/notify"
	"github.com/kdiffteam/quickdiff/internal/vcs"
	"github.com/kdiffteam/quickdiff/internal/worker"
)

// loadFilesCmd lists the current DiffSource's changed files directly
// (no worker round trip needed, since nothing is selected yet).
func (a *App) loadFilesCmd() tea.Cmd {
	source := a.source
	adaptor := a.adaptor
	return func() tea.Msg {
		files, err := adaptor.ChangedFiles(context.Background(), source)
		return FilesLoadedMsg{Files: files, Err: err}
	}
}

// selectFileCmd submits a DiffWorker request computing the diff for the
// file at idx, superseding any still-queued request.
func (a *App) selectFileCmd(idx int) tea.Cmd {
	if idx < 0 || idx >= len(a.files) {
		return nil
	}
	path := core.NewRelPath(a.files[idx].Path)
	a.nextRequestID++
	id := a.nextRequestID
	a.pendingReqID = id
	req := worker.DiffRequest{ID: id, Source: a.source, SelectedPath: path}
	return func() tea.Msg {
		a.diffWorker.Submit(req)
		return nil
	}
}

// manualReload resubmits a diff request for the currently selected file,
// refreshing both the file list and the diff in one round trip.
func (a *App) manualReload() tea.Cmd {
	a.nextRequestID++
	id := a.nextRequestID
	a.pendingReqID = id
	req := worker.DiffRequest{ID: id, Source: a.source, SelectedPath: a.currentPath}
	return func() tea.Msg {
		a.diffWorker.Submit(req)
		return nil
	}
}

func (a *App) drainDiffWorker() (worker.DiffResponse, bool) {
	select {
	case resp := <-a.diffWorker.Responses():
		return resp, true
	default:
		return worker.DiffResponse{}, false
	}
}

func (a *App) drainPRWorker() (worker.PRResponse, bool) {
	if a.prWorker == nil {
		return worker.PRResponse{}, false
	}
	select {
	case resp := <-a.prWorker.Responses():
		return resp, true
	default:
		return worker.PRResponse{}, false
	}
}

func (a *App) listPRsCmd() tea.Cmd {
	if a.prClient == nil {
		return nil
	}
	client := a.prClient
	return func() tea.Msg {
		prs, err := client.ListPRs(context.Background())
		return PRListLoadedMsg{PRs: prs, Err: err}
	}
}

func (a *App) requestPRDiff(number int) tea.Cmd {
	a.nextPRReqID++
	id := a.nextPRReqID
	a.pendingPRReqID = id
	req := worker.PRRequest{ID: id, Number: number, LoadDiff: true}
	return func() tea.Msg {
		a.prWorker.Submit(req)
		return nil
	}
}

func (a *App) submitPRAction(number int, action worker.PRAction, body string) tea.Cmd {
	a.nextPRReqID++
	id := a.nextPRReqID
	a.pendingPRReqID = id
	req := worker.PRRequest{ID: id, Number: number, Action: action, Body: body, LoadDiff: true}
	return func() tea.Msg {
		a.prWorker.Submit(req)
		return nil
	}
}

func (a *App) handleFilesLoaded(msg FilesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.errMsg = msg.Err.Error()
		a.markDirty()
		return a, nil
	}
	a.files = msg.Files
	a.applyFilter()
	a.markDirty()
	if last, ok := a.viewed.LastSelected(); ok {
		for i, fi := range a.filteredIndices {
			if a.files[fi].Path == last {
				a.selectedIdx = i
				break
			}
		}
	}
	if len(a.filteredIndices) > 0 {
		return a, a.selectFileCmd(a.filteredIndices[a.selectedIdx])
	}
	return a, nil
}

func (a *App) handleDiffResult(resp worker.DiffResponse) (tea.Model, tea.Cmd) {
	if resp.ID != a.pendingReqID {
		return a, nil
	}
	if resp.Err != nil {
		a.errMsg = resp.Err.Error()
		a.markDirty()
		return a, nil
	}
	if resp.Files != nil {
		a.files = resp.Files
		a.applyFilter()
	}
	if resp.Selected != nil {
		a.diff = resp.Selected
		a.scrollY = 0
		a.focusedHunk = 0
		if idx, ok := a.currentFileIndex(); ok {
			a.currentPath = core.NewRelPath(a.files[idx].Path)
			a.currentLang = languageForPath(a.files[idx].Path)
			a.viewed.SetLastSelected(a.files[idx].Path)
		}
		a.refreshCommentedHunks()
	}
	a.errMsg = ""
	a.markDirty()
	return a, nil
}

func (a *App) handlePRResult(resp worker.PRResponse) (tea.Model, tea.Cmd) {
	if resp.ID != a.pendingPRReqID {
		return a, nil
	}
	if resp.Err != nil {
		a.errMsg = resp.Err.Error()
		a.markDirty()
		return a, nil
	}
	if resp.Files != nil {
		// Neither the git nor jj adaptor knows how to resolve a PR's
		// SourcePR diff kind, so reviewing a PR means serving its files
		// from a PatchAdaptor instead, built (or refreshed) here once
		// the worker has actually fetched them.
		if a.patchAdaptor == nil {
			a.patchAdaptor = vcs.NewPatchAdaptor(a.repoRoot, resp.Files)
			a.adaptor = a.patchAdaptor
			a.diffWorker = worker.NewDiffWorker(a.patchAdaptor)
		} else {
			a.patchAdaptor.SetFiles(resp.Files)
		}
		a.source = core.PRSource(a.prCurrent)
		a.commentCtx = a.source.CommentContextFor()
		a.files = resp.Files
		a.applyFilter()
		a.selectedIdx = 0
		a.mode = ModeNormal
		a.markDirty()
		if len(a.filteredIndices) > 0 {
			return a, a.selectFileCmd(a.filteredIndices[0])
		}
	}
	if resp.Action != worker.PRActionNone {
		a.status = "PR action applied"
		go notify.Send("quickdiff", fmt.Sprintf("PR #%d: %s submitted", a.prCurrent, prActionLabel(resp.Action)))
	}
	a.markDirty()
	return a, nil
}

func (a *App) handlePRListLoaded(msg PRListLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.errMsg = msg.Err.Error()
		a.markDirty()
		return a, nil
	}
	a.prList = msg.PRs
	a.prSel = 0
	a.mode = ModePRPicker
	a.markDirty()
	return a, nil
}

func (a *App) currentFileIndex() (int, bool) {
	if a.selectedIdx < 0 || a.selectedIdx >= len(a.filteredIndices) {
		return 0, false
	}
	return a.filteredIndices[a.selectedIdx], true
}

func (a *App) applyFilter() {
	if a.fileFilter == "" {
		a.filteredIndices = make([]int, len(a.files))
		for i := range a.files {
			a.filteredIndices[i] = i
		}
		return
	}
	names := make([]string, len(a.files))
	for i, f := range a.files {
		names[i] = f.Path
	}
	a.filteredIndices = core.FilterSorted(a.fileFilter, names)
	if a.selectedIdx >= len(a.filteredIndices) {
		a.selectedIdx = 0
	}
}

func (a *App) refreshCommentedHunks() {
	a.commentedHunks = make(map[int]bool)
	if a.diff == nil || a.comments == nil {
		return
	}
	list := a.comments.ListForPath(string(a.currentPath), false)
	for _, c := range list {
		if !c.Context.Matches(a.commentCtx) {
			continue
		}
		if idx, ok := core.RelocateHunk(a.diff, c.Anchor); ok {
			a.commentedHunks[idx] = true
		}
	}
}

func (a *App) recalcViewport() {
	if a.selectedIdx >= len(a.filteredIndices) {
		a.selectedIdx = max(0, len(a.filteredIndices)-1)
	}
}

func languageForPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return filepath.Base(path)
	}
	return ext
}

func prActionLabel(action worker.PRAction) string {
	switch action {
	case worker.PRActionApprove:
		return "approval"
	case worker.PRActionComment:
		return "comment"
	case worker.PRActionRequestChanges:
		return "change request"
	}
	return "action"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
