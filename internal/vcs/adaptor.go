// Package vcs adapts quickdiff's DiffSource model onto concrete version
// control systems, shelling out to the system git/jj binary the way
// quickdiff's teacher shells out to gh.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdiffteam/quickdiff/internal/core"
)

// ErrNotARepo means the working directory isn't inside a repository the
// adaptor recognizes.
var ErrNotARepo = errors.New("vcs: not a repository")

// ErrUnsupportedForPR means the adaptor has no concept of forge PRs
// (e.g. a bare jj repo with no GitHub remote).
var ErrUnsupportedForPR = errors.New("vcs: PR diffing not supported by this backend")

// InvalidRevisionError wraps a revision/ref that the backend couldn't
// resolve.
type InvalidRevisionError struct {
	Revision string
	Cause    error
}

func (e *InvalidRevisionError) Error() string {
	return fmt.Sprintf("vcs: invalid revision %q: %v", e.Revision, e.Cause)
}

func (e *InvalidRevisionError) Unwrap() error { return e.Cause }

// FileTooLargeError reports a file that exceeded the adaptor's read cap
// (50 MiB, matching the forge PR-diff size guard).
type FileTooLargeError struct {
	Path string
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("vcs: %s exceeds the maximum readable size (%d bytes)", e.Path, e.Size)
}

// MaxReadableFileBytes bounds how much of any single file content the
// adaptor will read into memory, matching spec §6's 50 MiB cap on
// PR-diff payloads.
const MaxReadableFileBytes = 50 << 20

// RepositoryAdaptor resolves a core.DiffSource against a concrete repo
// on disk into the set of changed files and their before/after content.
type RepositoryAdaptor interface {
	// Root returns the repository's working-tree root.
	Root(ctx context.Context) (core.RepoRoot, error)

	// ChangedFiles lists the files touched by source, without reading
	// their content.
	ChangedFiles(ctx context.Context, source core.DiffSource) ([]core.ChangedFile, error)

	// FileContent returns the old and new content of path under
	// source. Either side may be empty (e.g. for Added/Deleted files).
	FileContent(ctx context.Context, source core.DiffSource, path core.RelPath) (oldContent, newContent []byte, err error)

	// CurrentContext derives the CommentContext that a comment created
	// while reviewing source should be scoped under.
	CurrentContext(source core.DiffSource) core.CommentContext
}
