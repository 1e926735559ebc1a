package prhub

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPRs(t *testing.T) {
	runner := func(ctx context.Context, args ...string) (string, error) {
		assert.Contains(t, args, "list")
		return `[{"number":42,"title":"Fix bug","isDraft":false,"createdAt":"2026-01-01T00:00:00Z","author":{"login":"octocat"}}]`, nil
	}
	c := NewTestClient("acme", "widgets", runner)
	prs, err := c.ListPRs(context.Background())
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 42, prs[0].Number)
	assert.Equal(t, "octocat", prs[0].Author)
}

func TestGetPRDiff(t *testing.T) {
	diff := "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-a\n+b\n"
	runner := func(ctx context.Context, args ...string) (string, error) {
		assert.Contains(t, args, "diff")
		return diff, nil
	}
	c := NewTestClient("acme", "widgets", runner)
	files, err := c.GetPRDiff(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestApprove_IncludesBodyWhenSet(t *testing.T) {
	var gotArgs []string
	runner := func(ctx context.Context, args ...string) (string, error) {
		gotArgs = args
		return "", nil
	}
	c := NewTestClient("acme", "widgets", runner)
	require.NoError(t, c.Approve(context.Background(), 7, "looks good"))
	assert.Contains(t, strings.Join(gotArgs, " "), "--approve")
	assert.Contains(t, gotArgs, "looks good")
}

func TestRequestChanges_RequiresBody(t *testing.T) {
	var gotArgs []string
	runner := func(ctx context.Context, args ...string) (string, error) {
		gotArgs = args
		return "", nil
	}
	c := NewTestClient("acme", "widgets", runner)
	require.NoError(t, c.RequestChanges(context.Background(), 7, "needs work"))
	assert.Contains(t, gotArgs, "--request-changes")
	assert.Contains(t, gotArgs, "needs work")
}

func TestListPRs_PropagatesError(t *testing.T) {
	runner := func(ctx context.Context, args ...string) (string, error) {
		return "", assert.AnError
	}
	c := NewTestClient("acme", "widgets", runner)
	_, err := c.ListPRs(context.Background())
	assert.Error(t, err)
}
