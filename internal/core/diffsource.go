package core

import "strings"

// RepoRoot is an absolute path to a repository's working-tree root.
type RepoRoot string

// RelPath is a file path relative to a RepoRoot. It never begins with a
// path separator.
type RelPath string

// NewRelPath normalizes p into a RelPath by trimming any leading slash.
func NewRelPath(p string) RelPath {
	return RelPath(strings.TrimPrefix(p, "/"))
}

// DiffSourceKind discriminates the variants of DiffSource.
type DiffSourceKind int

const (
	SourceWorktree DiffSourceKind = iota
	SourceBase
	SourceCommit
	SourceRange
	SourcePR
	SourcePatch
)

// DiffSource identifies what is being diffed: the dirty working tree,
// a base ref, a single commit, a revision range, an open PR, or a raw
// unified-diff patch supplied directly (e.g. over stdin).
type DiffSource struct {
	Kind      DiffSourceKind
	Ref       string // Base, Commit
	From, To  string // Range
	PRNumber  int    // PR
	PatchText string // Patch
}

func WorktreeSource() DiffSource               { return DiffSource{Kind: SourceWorktree} }
func BaseSource(ref string) DiffSource         { return DiffSource{Kind: SourceBase, Ref: ref} }
func CommitSource(ref string) DiffSource       { return DiffSource{Kind: SourceCommit, Ref: ref} }
func RangeSource(from, to string) DiffSource   { return DiffSource{Kind: SourceRange, From: from, To: to} }
func PRSource(number int) DiffSource           { return DiffSource{Kind: SourcePR, PRNumber: number} }
func PatchSource(text string) DiffSource       { return DiffSource{Kind: SourcePatch, PatchText: text} }

// CommentContextFor derives the CommentContext a comment created while
// viewing this DiffSource should be scoped under.
func (s DiffSource) CommentContextFor() CommentContext {
	switch s.Kind {
	case SourceWorktree:
		return WorktreeContext()
	case SourceBase:
		return BaseContext(s.Ref)
	case SourceCommit:
		return CommitContext(s.Ref)
	case SourceRange:
		return RangeContext(s.From, s.To)
	case SourcePR:
		return PRContext(s.PRNumber)
	case SourcePatch:
		return PatchContext()
	default:
		return WorktreeContext()
	}
}
