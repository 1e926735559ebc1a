package vcs

import (
	"context"

	"github.com/kdiffteam/quickdiff/internal/core"
)

// PatchAdaptor serves a fixed, already-fetched set of ChangedFiles (a
// forge's PR diff, or a raw patch piped over stdin) as a
// RepositoryAdaptor, reconstructing per-file content straight from each
// file's unified-diff hunk text rather than shelling out to git/jj.
type PatchAdaptor struct {
	root  core.RepoRoot
	files []core.ChangedFile
}

// NewPatchAdaptor wraps files for a repository rooted at root.
func NewPatchAdaptor(root core.RepoRoot, files []core.ChangedFile) *PatchAdaptor {
	return &PatchAdaptor{root: root, files: files}
}

// SetFiles replaces the adaptor's file set, e.g. after fetching a newer
// PR diff.
func (p *PatchAdaptor) SetFiles(files []core.ChangedFile) { p.files = files }

func (p *PatchAdaptor) Root(ctx context.Context) (core.RepoRoot, error) {
	return p.root, nil
}

func (p *PatchAdaptor) ChangedFiles(ctx context.Context, source core.DiffSource) ([]core.ChangedFile, error) {
	return p.files, nil
}

func (p *PatchAdaptor) FileContent(ctx context.Context, source core.DiffSource, path core.RelPath) (oldContent, newContent []byte, err error) {
	for _, f := range p.files {
		if f.Path != string(path) {
			continue
		}
		old, new_ := core.ReconstructFromPatch(f.Patch)
		return old, new_, nil
	}
	return nil, nil, nil
}

func (p *PatchAdaptor) CurrentContext(source core.DiffSource) core.CommentContext {
	return source.CommentContextFor()
}

var _ RepositoryAdaptor = (*PatchAdaptor)(nil)
