package worker

import (
	"context"
	"log/slog"

	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/prhub"
)

// PRAction discriminates the write operations PRWorker can perform.
type PRAction int

const (
	PRActionNone PRAction = iota
	PRActionApprove
	PRActionComment
	PRActionRequestChanges
)

// PRRequest asks the worker to load a PR's diff, or to submit a review
// action on it, or both in sequence (submit, then reload the diff).
type PRRequest struct {
	ID       uint64
	Number   int
	LoadDiff bool
	Action   PRAction
	Body     string
}

// PRResponse is the result of a PRRequest.
type PRResponse struct {
	ID     uint64
	Files  []core.ChangedFile
	Err    error
	Action PRAction
}

// PRWorker runs PR diff/review operations on a single background
// goroutine, with the same capacity-1 coalescing Submit/Responses
// contract as DiffWorker.
type PRWorker struct {
	client    *prhub.Client
	requests  chan PRRequest
	responses chan PRResponse
	Logger    *slog.Logger
}

func NewPRWorker(client *prhub.Client) *PRWorker {
	w := &PRWorker{
		client:    client,
		requests:  make(chan PRRequest, 1),
		responses: make(chan PRResponse, 1),
	}
	go w.run()
	return w
}

func (w *PRWorker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

func (w *PRWorker) Submit(req PRRequest) {
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

func (w *PRWorker) Responses() <-chan PRResponse { return w.responses }

func (w *PRWorker) run() {
	ctx := context.Background()
	for req := range w.requests {
		w.logger().Debug("pr request received", "id", req.ID, "number", req.Number, "action", req.Action)
		resp := PRResponse{ID: req.ID, Action: req.Action}

		switch req.Action {
		case PRActionApprove:
			resp.Err = w.client.Approve(ctx, req.Number, req.Body)
		case PRActionComment:
			resp.Err = w.client.Comment(ctx, req.Number, req.Body)
		case PRActionRequestChanges:
			resp.Err = w.client.RequestChanges(ctx, req.Number, req.Body)
		}

		if resp.Err == nil && req.LoadDiff {
			files, err := w.client.GetPRDiff(ctx, req.Number)
			resp.Files = files
			resp.Err = err
		}

		w.send(resp)
	}
}

func (w *PRWorker) send(resp PRResponse) {
	select {
	case w.responses <- resp:
		return
	default:
		select {
		case <-w.responses:
			w.logger().Warn("stale pr response discarded", "id", resp.ID)
		default:
		}
		w.responses <- resp
	}
}
