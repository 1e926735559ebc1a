package vcs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kdiffteam/quickdiff/internal/core"
)

// emptyTreeSHA is git's well-known hash for the empty tree, used as the
// "old side" when diffing a commit with no parent.
const emptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// GitAdaptor implements RepositoryAdaptor by shelling out to the system
// git binary, grounded on the same CommandContext-plus-stderr-buffer
// idiom quickdiff uses for its other CLI adaptors.
type GitAdaptor struct {
	Dir    string
	Logger *slog.Logger
}

// NewGitAdaptor returns a GitAdaptor rooted at dir (any path inside the
// repository works; Root resolves the actual toplevel).
func NewGitAdaptor(dir string) *GitAdaptor {
	return &GitAdaptor{Dir: dir, Logger: slog.Default()}
}

func (g *GitAdaptor) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *GitAdaptor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (g *GitAdaptor) Root(ctx context.Context) (core.RepoRoot, error) {
	out, err := g.runGit(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", ErrNotARepo
	}
	return core.RepoRoot(strings.TrimSpace(out)), nil
}

// mergeBase returns the merge-base between HEAD and baseRef, falling
// back to baseRef itself if merge-base computation fails (e.g. shallow
// clones or unrelated histories) rather than erroring the whole diff.
func (g *GitAdaptor) mergeBase(ctx context.Context, baseRef string) string {
	out, err := g.runGit(ctx, "merge-base", "HEAD", baseRef)
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		g.logger().Debug("merge-base fallback to ref", "baseRef", baseRef)
		return baseRef
	}
	return out
}

// diffArgs resolves a core.DiffSource into the two-sided `git diff`
// invocation that captures it, per the selection-dependent dispatch a
// repository-inspection tool needs (uncommitted vs base vs commit vs
// range diffs each shell out differently).
func (g *GitAdaptor) diffArgs(ctx context.Context, source core.DiffSource) ([]string, error) {
	switch source.Kind {
	case core.SourceWorktree:
		return []string{"diff", "HEAD", "--no-color"}, nil
	case core.SourceBase:
		base := g.mergeBase(ctx, source.Ref)
		return []string{"diff", base, "HEAD", "--no-color"}, nil
	case core.SourceCommit:
		parent := source.Ref + "^"
		if _, err := g.runGit(ctx, "rev-parse", "--verify", parent); err != nil {
			parent = emptyTreeSHA
		}
		return []string{"diff", parent, source.Ref, "--no-color"}, nil
	case core.SourceRange:
		if _, err := g.runGit(ctx, "rev-parse", "--verify", source.From); err != nil {
			return nil, &InvalidRevisionError{Revision: source.From, Cause: err}
		}
		if _, err := g.runGit(ctx, "rev-parse", "--verify", source.To); err != nil {
			return nil, &InvalidRevisionError{Revision: source.To, Cause: err}
		}
		return []string{"diff", source.From, source.To, "--no-color"}, nil
	default:
		return nil, fmt.Errorf("vcs: git adaptor cannot diff source kind %d", source.Kind)
	}
}

func (g *GitAdaptor) ChangedFiles(ctx context.Context, source core.DiffSource) ([]core.ChangedFile, error) {
	args, err := g.diffArgs(ctx, source)
	if err != nil {
		return nil, err
	}
	out, err := g.runGit(ctx, args...)
	if err != nil {
		return nil, err
	}
	return core.ParseUnifiedDiff(out), nil
}

func (g *GitAdaptor) FileContent(ctx context.Context, source core.DiffSource, path core.RelPath) ([]byte, []byte, error) {
	oldRev, newRev, newIsWorktree, err := g.contentRevs(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	oldContent := g.showAt(ctx, oldRev, path)
	var newContent []byte
	if newIsWorktree {
		if info, serr := os.Stat(filepath.Join(g.Dir, string(path))); serr == nil && info.Size() > MaxReadableFileBytes {
			return nil, nil, &FileTooLargeError{Path: string(path), Size: info.Size()}
		}
		newContent = g.readWorktreeFile(path)
	} else {
		newContent = g.showAt(ctx, newRev, path)
	}
	return oldContent, newContent, nil
}

func (g *GitAdaptor) contentRevs(ctx context.Context, source core.DiffSource) (oldRev, newRev string, newIsWorktree bool, err error) {
	switch source.Kind {
	case core.SourceWorktree:
		return "HEAD", "", true, nil
	case core.SourceBase:
		return g.mergeBase(ctx, source.Ref), "HEAD", false, nil
	case core.SourceCommit:
		parent := source.Ref + "^"
		if _, verr := g.runGit(ctx, "rev-parse", "--verify", parent); verr != nil {
			parent = emptyTreeSHA
		}
		return parent, source.Ref, false, nil
	case core.SourceRange:
		return source.From, source.To, false, nil
	default:
		return "", "", false, fmt.Errorf("vcs: git adaptor cannot resolve content for source kind %d", source.Kind)
	}
}

// showAt returns the content of path at rev, or nil if the file didn't
// exist there (added/deleted files resolve one side to nothing).
func (g *GitAdaptor) showAt(ctx context.Context, rev string, path core.RelPath) []byte {
	cmd := exec.CommandContext(ctx, "git", "show", fmt.Sprintf("%s:%s", rev, string(path)))
	cmd.Dir = g.Dir
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	return out
}

func (g *GitAdaptor) readWorktreeFile(path core.RelPath) []byte {
	full := filepath.Join(g.Dir, string(path))
	info, err := os.Stat(full)
	if err != nil {
		return nil
	}
	if info.Size() > MaxReadableFileBytes {
		return nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil
	}
	return data
}

func (g *GitAdaptor) CurrentContext(source core.DiffSource) core.CommentContext {
	return source.CommentContextFor()
}

var _ RepositoryAdaptor = (*GitAdaptor)(nil)
