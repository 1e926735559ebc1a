package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buf(s string) *TextBuffer { return NewTextBuffer([]byte(s)) }

func TestDiff_IdenticalFiles(t *testing.T) {
	d := Compute(buf("a\nb\nc\n"), buf("a\nb\nc\n"))
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.Hunks())
	for _, row := range d.Rows() {
		assert.Equal(t, Equal, row.Kind)
	}
}

func TestDiff_SimpleInsert(t *testing.T) {
	d := Compute(buf("a\nb\nc\n"), buf("a\nx\nb\nc\n"))
	require.True(t, d.HasChanges())
	var inserted []RenderRow
	for _, row := range d.Rows() {
		if row.Kind == Insert {
			inserted = append(inserted, row)
		}
	}
	require.Len(t, inserted, 1)
	assert.Equal(t, "x", inserted[0].New.Content)
	assert.Nil(t, inserted[0].Old)
}

func TestDiff_SimpleDelete(t *testing.T) {
	d := Compute(buf("a\nb\nc\n"), buf("a\nc\n"))
	var deleted []RenderRow
	for _, row := range d.Rows() {
		if row.Kind == Delete {
			deleted = append(deleted, row)
		}
	}
	require.Len(t, deleted, 1)
	assert.Equal(t, "b", deleted[0].Old.Content)
	assert.Nil(t, deleted[0].New)
}

func TestDiff_ReplacePairing(t *testing.T) {
	d := Compute(buf("foo\n"), buf("bar\n"))
	rows := d.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, Replace, rows[0].Kind)
	assert.Equal(t, "foo", rows[0].Old.Content)
	assert.Equal(t, "bar", rows[0].New.Content)
}

func TestDiff_MultiLineReplace(t *testing.T) {
	d := Compute(buf("one\ntwo\nthree\n"), buf("uno\ndos\ntres\n"))
	var replaced int
	for _, row := range d.Rows() {
		if row.Kind == Replace {
			replaced++
		}
	}
	assert.Equal(t, 3, replaced)
}

func TestDiff_UnbalancedChanges(t *testing.T) {
	// Two deletes, one insert: first delete pairs with the insert into a
	// Replace row, the second delete is left standalone.
	d := Compute(buf("a\nb\nc\nd\n"), buf("a\nx\nd\n"))
	rows := d.Rows()
	var kinds []ChangeKind
	for _, row := range rows {
		kinds = append(kinds, row.Kind)
	}
	assert.Contains(t, kinds, Replace)
	assert.Contains(t, kinds, Delete)
}

func TestDiff_InlineSimilarityGateSkipsDissimilarLines(t *testing.T) {
	d := Compute(buf("the quick brown fox\n"), buf("zzz completely different content here\n"))
	rows := d.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, Replace, rows[0].Kind)
	assert.Nil(t, rows[0].Old.InlineSpans)
	assert.Nil(t, rows[0].New.InlineSpans)
}

func TestDiff_InlineSimilarityKeptForCloseLines(t *testing.T) {
	d := Compute(buf("hello world foo\n"), buf("hello world bar\n"))
	rows := d.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, Replace, rows[0].Kind)
	require.NotNil(t, rows[0].Old.InlineSpans)
	require.NotNil(t, rows[0].New.InlineSpans)

	var oldChanged bool
	for _, span := range rows[0].Old.InlineSpans {
		if span.Changed {
			oldChanged = true
			assert.Equal(t, "foo", rows[0].Old.Content[span.Start:span.End])
		}
	}
	assert.True(t, oldChanged)
}

func TestDiff_InlineDiffSkippedForLargeLines(t *testing.T) {
	big := make([]byte, 600)
	for i := range big {
		big[i] = 'a'
	}
	bigStr := string(big)
	d := Compute(buf(bigStr+"x\n"), buf(bigStr+"y\n"))
	rows := d.Rows()
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Old.InlineSpans)
}

func TestDiff_HunkContextWindow(t *testing.T) {
	// 10 unchanged lines, a change, 10 more unchanged lines: with context=3
	// the hunk should only pad 3 lines on each side of the change.
	old := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\nCHANGE\nm1\nm2\nm3\nm4\nm5\nm6\nm7\nm8\nm9\nm10\n"
	new_ := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\nCHANGED\nm1\nm2\nm3\nm4\nm5\nm6\nm7\nm8\nm9\nm10\n"
	d := ComputeWithContext(buf(old), buf(new_), 3)
	hunks := d.Hunks()
	require.Len(t, hunks, 1)
	h := hunks[0]
	assert.Equal(t, 7, h.StartRow) // 10 - 3
	assert.Equal(t, 7, h.RowCount)
}

func TestDiff_TwoHunksFarApart(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\np\n"
	new_ := "X\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\nY\n"
	d := ComputeWithContext(buf(old), buf(new_), 3)
	assert.Len(t, d.Hunks(), 2)
}

func TestDiff_NextPrevHunkNavigation(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\np\n"
	new_ := "X\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\nY\n"
	d := ComputeWithContext(buf(old), buf(new_), 3)

	next, ok := d.NextHunkRow(0)
	require.True(t, ok)
	assert.Equal(t, d.Hunks()[1].StartRow, next)

	prev, ok := d.PrevHunkRow(d.RowCount() - 1)
	require.True(t, ok)
	assert.Equal(t, d.Hunks()[1].StartRow, prev)

	_, ok = d.NextHunkRow(d.RowCount())
	assert.False(t, ok)
}

func TestDiff_HunkAtRow(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\np\n"
	new_ := "X\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no\nY\n"
	d := ComputeWithContext(buf(old), buf(new_), 3)

	idx, ok := d.HunkAtRow(0)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = d.HunkAtRow(-1)
	assert.False(t, ok)
}

func TestDiff_EmptyToContent(t *testing.T) {
	d := Compute(EmptyTextBuffer(), buf("a\nb\n"))
	for _, row := range d.Rows() {
		assert.Equal(t, Insert, row.Kind)
	}
}

func TestSplitWords_PreservesAllBytes(t *testing.T) {
	s := "hello, world! foo_bar 123"
	tokens := splitWords(s)
	var rebuilt string
	for _, tok := range tokens {
		rebuilt += tok
	}
	assert.Equal(t, s, rebuilt)
}

func TestMergeAdjacentSpans(t *testing.T) {
	spans := []InlineSpan{
		{Start: 0, End: 2, Changed: false},
		{Start: 2, End: 4, Changed: false},
		{Start: 4, End: 6, Changed: true},
	}
	merged := mergeAdjacentSpans(spans)
	require.Len(t, merged, 2)
	assert.Equal(t, InlineSpan{Start: 0, End: 4, Changed: false}, merged[0])
	assert.Equal(t, InlineSpan{Start: 4, End: 6, Changed: true}, merged[1])
}
