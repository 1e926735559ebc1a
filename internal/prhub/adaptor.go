package prhub

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/vcs"
)

// maxPRDiffBytes caps the size of a PR diff payload quickdiff will parse,
// guarding against runaway PRs on huge monorepos.
const maxPRDiffBytes = vcs.MaxReadableFileBytes

// PRSummary is a lightweight PR representation for list views.
type PRSummary struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Author    string    `json:"-"`
	Draft     bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
}

type ghPRListEntry struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	Author    struct {
		Login string `json:"login"`
	} `json:"author"`
}

// ListPRs returns open PRs on the client's repository.
func (c *Client) ListPRs(ctx context.Context) ([]PRSummary, error) {
	var results []ghPRListEntry
	err := c.ghJSON(ctx, &results,
		"pr", "list",
		"-R", c.repoFlag(),
		"--state", "open",
		"--json", "number,title,isDraft,createdAt,author",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list PRs: %w", err)
	}
	out := make([]PRSummary, len(results))
	for i, r := range results {
		out[i] = PRSummary{Number: r.Number, Title: r.Title, Author: r.Author.Login, Draft: r.IsDraft, CreatedAt: r.CreatedAt}
	}
	return out, nil
}

// GetPRDiff fetches the unified diff for a PR and parses it into
// ChangedFiles, returning an error when the payload exceeds
// maxPRDiffBytes.
func (c *Client) GetPRDiff(ctx context.Context, number int) ([]core.ChangedFile, error) {
	raw, err := c.ghExec(ctx, "pr", "diff", strconv.Itoa(number), "-R", c.repoFlag())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diff for PR #%d: %w", number, err)
	}
	limited, err := io.ReadAll(io.LimitReader(strings.NewReader(raw), maxPRDiffBytes+1))
	if err != nil {
		return nil, err
	}
	if len(limited) > maxPRDiffBytes {
		return nil, fmt.Errorf("diff for PR #%d is too large (over %d bytes)", number, maxPRDiffBytes)
	}
	return core.ParseUnifiedDiff(string(limited)), nil
}

// Approve submits an approval review on a PR.
func (c *Client) Approve(ctx context.Context, number int, body string) error {
	args := []string{"pr", "review", strconv.Itoa(number), "-R", c.repoFlag(), "--approve"}
	if body != "" {
		args = append(args, "-b", body)
	}
	if _, err := c.ghExec(ctx, args...); err != nil {
		return fmt.Errorf("failed to approve PR #%d: %w", number, err)
	}
	return nil
}

// Comment posts an issue-level comment on a PR.
func (c *Client) Comment(ctx context.Context, number int, body string) error {
	if _, err := c.ghExec(ctx, "pr", "comment", strconv.Itoa(number), "-R", c.repoFlag(), "--body", body); err != nil {
		return fmt.Errorf("failed to comment on PR #%d: %w", number, err)
	}
	return nil
}

// RequestChanges submits a "request changes" review; GitHub requires a
// body for this review type.
func (c *Client) RequestChanges(ctx context.Context, number int, body string) error {
	args := []string{"pr", "review", strconv.Itoa(number), "-R", c.repoFlag(), "--request-changes", "-b", body}
	if _, err := c.ghExec(ctx, args...); err != nil {
		return fmt.Errorf("failed to request changes on PR #%d: %w", number, err)
	}
	return nil
}
