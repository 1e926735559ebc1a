// Package worker runs the single-background-thread request/response
// pipes that keep quickdiff's UI responsive while git/gh calls and diff
// computation happen off the render loop.
package worker

import (
	"context"
	"log/slog"

	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/vcs"
)

// DiffRequest asks the worker to list changed files for source and
// compute the diff for SelectedPath within it. ID is assigned by the
// caller and echoed back on the response so the caller (not the worker)
// can detect and discard superseded responses.
type DiffRequest struct {
	ID           uint64
	Source       core.DiffSource
	SelectedPath core.RelPath
}

// DiffResponse is the result of a DiffRequest.
type DiffResponse struct {
	ID       uint64
	Files    []core.ChangedFile
	Selected *core.DiffResult
	Err      error
}

// DiffWorker owns one background goroutine pulling from a capacity-1
// request channel: a new Submit while a request is still queued (not
// yet picked up) replaces it rather than queuing behind it, since only
// the most recent request's result is ever useful to the UI.
type DiffWorker struct {
	adaptor   vcs.RepositoryAdaptor
	requests  chan DiffRequest
	responses chan DiffResponse
	Logger    *slog.Logger
}

// NewDiffWorker starts the worker's background goroutine.
func NewDiffWorker(adaptor vcs.RepositoryAdaptor) *DiffWorker {
	w := &DiffWorker{
		adaptor:   adaptor,
		requests:  make(chan DiffRequest, 1),
		responses: make(chan DiffResponse, 1),
	}
	go w.run()
	return w
}

func (w *DiffWorker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Submit enqueues req, coalescing with (replacing) any request still
// waiting to be picked up.
func (w *DiffWorker) Submit(req DiffRequest) {
	for {
		select {
		case w.requests <- req:
			return
		default:
			select {
			case <-w.requests:
			default:
			}
		}
	}
}

// Responses returns the channel of computed results. The ui App drains
// it non-blockingly on each poll tick and wraps each result as a tea.Msg.
func (w *DiffWorker) Responses() <-chan DiffResponse { return w.responses }

func (w *DiffWorker) run() {
	ctx := context.Background()
	for req := range w.requests {
		w.logger().Debug("diff request received", "id", req.ID, "selected", req.SelectedPath)
		resp := DiffResponse{ID: req.ID}

		files, err := w.adaptor.ChangedFiles(ctx, req.Source)
		if err != nil {
			resp.Err = err
			w.send(resp)
			continue
		}
		resp.Files = files

		if req.SelectedPath != "" {
			oldContent, newContent, err := w.adaptor.FileContent(ctx, req.Source, req.SelectedPath)
			if err != nil {
				resp.Err = err
				w.send(resp)
				continue
			}
			oldBuf := core.NewTextBuffer(oldContent)
			newBuf := core.NewTextBuffer(newContent)
			resp.Selected = core.Compute(oldBuf, newBuf)
		}

		w.send(resp)
	}
}

// send delivers resp, dropping a still-unread prior response first so
// the worker never blocks waiting on a UI that's busy rendering.
func (w *DiffWorker) send(resp DiffResponse) {
	select {
	case w.responses <- resp:
		return
	default:
		select {
		case <-w.responses:
			w.logger().Warn("stale diff response discarded", "id", resp.ID)
		default:
		}
		w.responses <- resp
	}
}
