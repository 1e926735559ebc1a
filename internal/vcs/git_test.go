package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInDir(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=quickdiff-test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=quickdiff-test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "command %v failed: %s", args, out)
}

func initRepoWithOneCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runInDir(t, dir, "git", "init", "-q", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644))
	runInDir(t, dir, "git", "add", ".")
	runInDir(t, dir, "git", "commit", "-q", "-m", "initial")
	return dir
}

func TestGitAdaptor_Root(t *testing.T) {
	dir := initRepoWithOneCommit(t)
	a := NewGitAdaptor(dir)
	root, err := a.Root(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, root)
}

func TestGitAdaptor_WorktreeDiff(t *testing.T) {
	dir := initRepoWithOneCommit(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\nworld\n"), 0o644))

	a := NewGitAdaptor(dir)
	files, err := a.ChangedFiles(context.Background(), core.WorktreeSource())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.txt", files[0].Path)

	oldContent, newContent, err := a.FileContent(context.Background(), core.WorktreeSource(), core.NewRelPath("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(oldContent))
	assert.Equal(t, "hello\nworld\n", string(newContent))
}

func TestGitAdaptor_NotARepo(t *testing.T) {
	dir := t.TempDir()
	a := NewGitAdaptor(dir)
	_, err := a.Root(context.Background())
	assert.ErrorIs(t, err, ErrNotARepo)
}

func TestGitAdaptor_CommitSourceWithNoParent(t *testing.T) {
	dir := initRepoWithOneCommit(t)
	a := NewGitAdaptor(dir)
	files, err := a.ChangedFiles(context.Background(), core.CommitSource("HEAD"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, core.Added, files[0].Kind)
}

func TestGitAdaptor_RangeSourceInvalidRevision(t *testing.T) {
	dir := initRepoWithOneCommit(t)
	a := NewGitAdaptor(dir)
	_, err := a.ChangedFiles(context.Background(), core.RangeSource("nonexistent-ref", "HEAD"))
	require.Error(t, err)
	var invalidRev *InvalidRevisionError
	assert.ErrorAs(t, err, &invalidRev)
}
