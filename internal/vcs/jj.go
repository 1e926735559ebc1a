package vcs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/kdiffteam/quickdiff/internal/core"
)

// JJAdaptor implements RepositoryAdaptor for the jj (Jujutsu) VCS,
// covering the working-copy and revision-range subset quickdiff needs.
// It shells out to the jj CLI the same way GitAdaptor shells out to
// git, since jj's `diff --git` output is unified-diff compatible and
// parses with the same core.ParseUnifiedDiff.
type JJAdaptor struct {
	Dir    string
	Logger *slog.Logger
}

func NewJJAdaptor(dir string) *JJAdaptor {
	return &JJAdaptor{Dir: dir, Logger: slog.Default()}
}

func (j *JJAdaptor) runJJ(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "jj", args...)
	cmd.Dir = j.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("jj %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (j *JJAdaptor) Root(ctx context.Context) (core.RepoRoot, error) {
	out, err := j.runJJ(ctx, "root")
	if err != nil {
		return "", ErrNotARepo
	}
	return core.RepoRoot(strings.TrimSpace(out)), nil
}

func (j *JJAdaptor) revArgs(source core.DiffSource) ([]string, error) {
	switch source.Kind {
	case core.SourceWorktree:
		return []string{"diff", "--git", "-r", "@"}, nil
	case core.SourceBase:
		return []string{"diff", "--git", "-f", source.Ref, "-t", "@"}, nil
	case core.SourceCommit:
		return []string{"diff", "--git", "-r", source.Ref}, nil
	case core.SourceRange:
		return []string{"diff", "--git", "-f", source.From, "-t", source.To}, nil
	default:
		return nil, fmt.Errorf("vcs: jj adaptor cannot diff source kind %d", source.Kind)
	}
}

func (j *JJAdaptor) ChangedFiles(ctx context.Context, source core.DiffSource) ([]core.ChangedFile, error) {
	args, err := j.revArgs(source)
	if err != nil {
		return nil, err
	}
	out, err := j.runJJ(ctx, args...)
	if err != nil {
		return nil, err
	}
	return core.ParseUnifiedDiff(out), nil
}

// FileContent reads old/new content for a single path with `jj file
// show` at each side's revision, falling back to an empty side when the
// path didn't exist at that revision.
func (j *JJAdaptor) FileContent(ctx context.Context, source core.DiffSource, path core.RelPath) ([]byte, []byte, error) {
	oldRev, newRev, err := j.contentRevs(source)
	if err != nil {
		return nil, nil, err
	}
	oldContent := j.catAt(ctx, oldRev, path)
	newContent := j.catAt(ctx, newRev, path)
	return oldContent, newContent, nil
}

func (j *JJAdaptor) contentRevs(source core.DiffSource) (oldRev, newRev string, err error) {
	switch source.Kind {
	case core.SourceWorktree:
		return "@-", "@", nil
	case core.SourceBase:
		return source.Ref, "@", nil
	case core.SourceCommit:
		return source.Ref + "-", source.Ref, nil
	case core.SourceRange:
		return source.From, source.To, nil
	default:
		return "", "", fmt.Errorf("vcs: jj adaptor cannot resolve content for source kind %d", source.Kind)
	}
}

func (j *JJAdaptor) catAt(ctx context.Context, rev string, path core.RelPath) []byte {
	cmd := exec.CommandContext(ctx, "jj", "file", "show", "-r", rev, string(path))
	cmd.Dir = j.Dir
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	return out
}

func (j *JJAdaptor) CurrentContext(source core.DiffSource) core.CommentContext {
	return source.CommentContextFor()
}

var _ RepositoryAdaptor = (*JJAdaptor)(nil)
