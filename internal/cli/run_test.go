package cli

import (
	"testing"

	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestParseDiffSource_DefaultsToWorktree(t *testing.T) {
	assert.Equal(t, core.WorktreeSource(), parseDiffSource("", "", ""))
}

func TestParseDiffSource_CommitFlagWins(t *testing.T) {
	assert.Equal(t, core.CommitSource("abc123"), parseDiffSource("abc123", "main", "HEAD~3"))
}

func TestParseDiffSource_BaseFlag(t *testing.T) {
	assert.Equal(t, core.BaseSource("origin/main"), parseDiffSource("", "origin/main", ""))
}

func TestParseDiffSource_PositionalRange(t *testing.T) {
	assert.Equal(t, core.RangeSource("abc123", "def456"), parseDiffSource("", "", "abc123..def456"))
}

func TestParseDiffSource_PositionalTripleDotRange(t *testing.T) {
	assert.Equal(t, core.RangeSource("abc123", "def456"), parseDiffSource("", "", "abc123...def456"))
}

func TestParseDiffSource_PositionalRemoteBranch(t *testing.T) {
	assert.Equal(t, core.BaseSource("origin/main"), parseDiffSource("", "", "origin/main"))
}

func TestParseDiffSource_PositionalCommit(t *testing.T) {
	assert.Equal(t, core.CommitSource("HEAD~3"), parseDiffSource("", "", "HEAD~3"))
}
