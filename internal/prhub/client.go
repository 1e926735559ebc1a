// Package prhub adapts quickdiff's PR review operations onto GitHub via
// the gh CLI, following the same CommandRunner-injection idiom its
// teacher uses for its own gh-backed client.
package prhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds any single gh invocation.
const DefaultTimeout = 30 * time.Second

// CommandRunner executes a gh CLI invocation and returns its stdout.
// Tests inject a canned implementation instead of shelling out for
// real.
type CommandRunner func(ctx context.Context, args ...string) (string, error)

// Client wraps the gh CLI for a single repository.
type Client struct {
	Owner, Repo string
	run         CommandRunner
	Timeout     time.Duration
	Logger      *slog.Logger
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// NewClient verifies gh is installed and authenticated, then returns a
// Client scoped to owner/repo.
func NewClient(owner, repo string) (*Client, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, fmt.Errorf("gh CLI not found: install from https://cli.github.com")
	}
	c := &Client{Owner: owner, Repo: repo, run: defaultRunner, Timeout: DefaultTimeout}
	if _, err := c.ghExec(context.Background(), "auth", "status"); err != nil {
		return nil, fmt.Errorf("gh not authenticated: run 'gh auth login' first")
	}
	return c, nil
}

// NewTestClient injects a CommandRunner for tests.
func NewTestClient(owner, repo string, runner CommandRunner) *Client {
	return &Client{Owner: owner, Repo: repo, run: runner}
}

func (c *Client) repoFlag() string { return c.Owner + "/" + c.Repo }

func defaultRunner(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("gh %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *Client) ghExec(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	c.logger().Debug("gh exec", "args", args)
	out, err := c.run(ctx, args...)
	if err != nil {
		c.logger().Warn("gh exec failed", "args", args, "error", err)
	}
	return out, err
}

func (c *Client) ghJSON(ctx context.Context, dest interface{}, args ...string) error {
	out, err := c.ghExec(ctx, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(out), dest); err != nil {
		return fmt.Errorf("failed to parse gh output: %w", err)
	}
	return nil
}

// ResolveCurrentRepo asks gh which owner/repo the working directory's
// git remote maps to, for callers (quickdiff's --pr flag) that don't
// already know it.
func ResolveCurrentRepo(ctx context.Context) (owner, repo string, err error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", "", fmt.Errorf("gh CLI not found: install from https://cli.github.com")
	}
	out, err := defaultRunner(ctx, "repo", "view", "--json", "owner,name")
	if err != nil {
		return "", "", err
	}
	var parsed struct {
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return "", "", fmt.Errorf("failed to parse gh output: %w", err)
	}
	return parsed.Owner.Login, parsed.Name, nil
}
