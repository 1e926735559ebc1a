package core

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind tags how a RenderRow relates its old and new sides.
type ChangeKind int

const (
	Equal ChangeKind = iota
	Delete
	Insert
	Replace
)

// defaultContextLines is the number of unchanged lines kept around a
// change when no explicit context is requested.
const defaultContextLines = 3

// inlineDiffMaxBytes caps how large a Replace row's sides may be before
// inline (word-level) diffing is skipped in favor of whole-line highlight.
const inlineDiffMaxBytes = 500

// inlineDiffSimilarityFloor is the minimum fraction of unchanged bytes
// (relative to the longer trimmed side) required before inline spans are
// computed; below it the two sides are considered too dissimilar to be
// usefully diffed word-by-word.
const inlineDiffSimilarityFloor = 0.20

// InlineSpan is a byte range within a LineRef's content, tagged with
// whether that range changed relative to the opposite side of a Replace
// row. Spans are ordered, non-overlapping, and cover the full content.
type InlineSpan struct {
	Start   int
	End     int
	Changed bool
}

// LineRef is one side (old or new) of a RenderRow.
type LineRef struct {
	LineNum     int
	Content     string
	InlineSpans []InlineSpan
}

// RenderRow is one row of the two-pane diff view. Equal rows carry both
// sides with no spans; Delete/Insert rows carry only one side; Replace
// rows carry both sides, optionally with inline spans.
type RenderRow struct {
	Old  *LineRef
	New  *LineRef
	Kind ChangeKind
}

// lineRange is a half-open-by-count (start, count) range of 0-based line
// numbers on one side of the diff.
type lineRange struct {
	Start int
	Count int
}

// Hunk is a contiguous span of rows (in DiffResult.rows) containing at
// least one change, padded with up to contextLines of surrounding equal
// rows.
type Hunk struct {
	StartRow int
	RowCount int
	OldRange lineRange
	NewRange lineRange
}

// DiffResult is the computed two-pane diff between an old and new
// TextBuffer: a flat row stream plus the hunk index over it.
type DiffResult struct {
	rows  []RenderRow
	hunks []Hunk
}

// Compute runs the diff with the default context window (3 lines).
func Compute(oldBuf, newBuf *TextBuffer) *DiffResult {
	return ComputeWithContext(oldBuf, newBuf, defaultContextLines)
}

// ComputeWithContext runs the four-stage diff pipeline: line-level Myers
// diff, delete/insert pairing into Replace rows, inline word-level
// diffing of Replace rows, and hunk grouping with the given context.
func ComputeWithContext(oldBuf, newBuf *TextBuffer, context int) *DiffResult {
	oldLines := oldBuf.Lines()
	newLines := newBuf.Lines()

	lineOps := diffLines(oldLines, newLines)
	rows := pairChanges(lineOps)
	for i := range rows {
		if rows[i].Kind == Replace {
			computeInlineDiff(&rows[i])
		}
	}
	hunks := buildHunks(rows, context)

	return &DiffResult{rows: rows, hunks: hunks}
}

func (d *DiffResult) Rows() []RenderRow { return d.rows }
func (d *DiffResult) Hunks() []Hunk     { return d.hunks }
func (d *DiffResult) RowCount() int     { return len(d.rows) }

// HasChanges reports whether any row is non-Equal.
func (d *DiffResult) HasChanges() bool { return len(d.hunks) > 0 }

// RenderRows returns up to height rows starting at start, clamped to the
// row stream's bounds.
func (d *DiffResult) RenderRows(start, height int) []RenderRow {
	if start < 0 {
		start = 0
	}
	if start >= len(d.rows) {
		return nil
	}
	end := start + height
	if end > len(d.rows) {
		end = len(d.rows)
	}
	return d.rows[start:end]
}

// HunkAtRow returns the index of the hunk containing row, if any.
func (d *DiffResult) HunkAtRow(row int) (int, bool) {
	i := sort.Search(len(d.hunks), func(i int) bool {
		return d.hunks[i].StartRow+d.hunks[i].RowCount > row
	})
	if i >= len(d.hunks) || row < d.hunks[i].StartRow {
		return 0, false
	}
	return i, true
}

// NextHunkRow returns the StartRow of the first hunk beginning after
// currentRow.
func (d *DiffResult) NextHunkRow(currentRow int) (int, bool) {
	i := sort.Search(len(d.hunks), func(i int) bool {
		return d.hunks[i].StartRow > currentRow
	})
	if i >= len(d.hunks) {
		return 0, false
	}
	return d.hunks[i].StartRow, true
}

// PrevHunkRow returns the StartRow of the last hunk beginning before
// currentRow.
func (d *DiffResult) PrevHunkRow(currentRow int) (int, bool) {
	i := sort.Search(len(d.hunks), func(i int) bool {
		return d.hunks[i].StartRow >= currentRow
	})
	if i == 0 {
		return 0, false
	}
	return d.hunks[i-1].StartRow, true
}

// lineOp is one element of the flat Stage A diff stream: a single line
// tagged Equal, Delete, or Insert, with its 0-based line number(s) on
// the side(s) it belongs to.
type lineOp struct {
	kind       ChangeKind
	oldLineNum int // -1 if this op has no old side
	newLineNum int // -1 if this op has no new side
	oldContent string
	newContent string
}

// diffLines runs a Myers line-level diff over two line slices using
// diffmatchpatch's core engine, operating on a custom per-line rune
// encoding (rather than DiffLinesToChars/DiffCharsToLines) so the
// decoded stream carries exact 0-based line numbers per side with no
// trailing-newline artifacts.
func diffLines(oldLines, newLines []string) []lineOp {
	enc := newTokenEncoder()
	oldEncoded := enc.encode(oldLines)
	newEncoded := enc.encode(newLines)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMain(oldEncoded, newEncoded, false)

	ops := make([]lineOp, 0, len(oldLines)+len(newLines))
	oldNum, newNum := 0, 0
	for _, d := range diffs {
		for _, r := range d.Text {
			content := enc.tokens[int(r)]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, lineOp{kind: Equal, oldLineNum: oldNum, newLineNum: newNum, oldContent: content, newContent: content})
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, lineOp{kind: Delete, oldLineNum: oldNum, newLineNum: -1, oldContent: content})
				oldNum++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, lineOp{kind: Insert, oldLineNum: -1, newLineNum: newNum, newContent: content})
				newNum++
			}
		}
	}
	return ops
}

// tokenEncoder maps arbitrary strings (lines, or later, inline-diff
// words) to single runes so diffmatchpatch's DiffMain can be reused as a
// generic Myers diff over token sequences instead of characters.
type tokenEncoder struct {
	index  map[string]rune
	tokens []string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{index: make(map[string]rune)}
}

func (e *tokenEncoder) encode(items []string) string {
	runes := make([]rune, len(items))
	for i, s := range items {
		r, ok := e.index[s]
		if !ok {
			r = rune(len(e.tokens))
			e.index[s] = r
			e.tokens = append(e.tokens, s)
		}
		runes[i] = r
	}
	return string(runes)
}

// pairChanges groups contiguous runs of Delete/Insert ops and pairs them
// positionally: the i-th delete in a run merges with the i-th insert
// into a Replace row, and leftover deletes or inserts on either side
// remain standalone Delete/Insert rows.
func pairChanges(ops []lineOp) []RenderRow {
	rows := make([]RenderRow, 0, len(ops))
	i := 0
	for i < len(ops) {
		if ops[i].kind == Equal {
			rows = append(rows, equalRow(ops[i]))
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].kind != Equal {
			j++
		}
		rows = append(rows, emitPairedChanges(ops[i:j])...)
		i = j
	}
	return rows
}

func equalRow(op lineOp) RenderRow {
	return RenderRow{
		Old:  &LineRef{LineNum: op.oldLineNum, Content: op.oldContent},
		New:  &LineRef{LineNum: op.newLineNum, Content: op.newContent},
		Kind: Equal,
	}
}

func emitPairedChanges(run []lineOp) []RenderRow {
	var deletes, inserts []lineOp
	for _, op := range run {
		if op.kind == Delete {
			deletes = append(deletes, op)
		} else {
			inserts = append(inserts, op)
		}
	}

	n := len(deletes)
	if len(inserts) > n {
		n = len(inserts)
	}
	rows := make([]RenderRow, 0, n)
	for k := 0; k < n; k++ {
		switch {
		case k < len(deletes) && k < len(inserts):
			rows = append(rows, RenderRow{
				Old:  &LineRef{LineNum: deletes[k].oldLineNum, Content: deletes[k].oldContent},
				New:  &LineRef{LineNum: inserts[k].newLineNum, Content: inserts[k].newContent},
				Kind: Replace,
			})
		case k < len(deletes):
			rows = append(rows, RenderRow{
				Old:  &LineRef{LineNum: deletes[k].oldLineNum, Content: deletes[k].oldContent},
				Kind: Delete,
			})
		default:
			rows = append(rows, RenderRow{
				New:  &LineRef{LineNum: inserts[k].newLineNum, Content: inserts[k].newContent},
				Kind: Insert,
			})
		}
	}
	return rows
}

// computeInlineDiff fills in word-level InlineSpans on a Replace row's
// Old and New sides, unless the sides are too large or too dissimilar
// to make word diffing useful (in which case the row is left to render
// as a whole-line highlight).
func computeInlineDiff(row *RenderRow) {
	old := row.Old.Content
	new_ := row.New.Content
	if old == new_ {
		return
	}
	if len(old) > inlineDiffMaxBytes || len(new_) > inlineDiffMaxBytes {
		return
	}

	oldTokens := splitWords(old)
	newTokens := splitWords(new_)

	enc := newTokenEncoder()
	oldEncoded := enc.encode(oldTokens)
	newEncoded := enc.encode(newTokens)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMain(oldEncoded, newEncoded, false)

	var oldSpans, newSpans []InlineSpan
	oldOff, newOff := 0, 0
	unchangedBytes := 0
	for _, d := range diffs {
		for _, r := range d.Text {
			tok := enc.tokens[int(r)]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldSpans = append(oldSpans, InlineSpan{Start: oldOff, End: oldOff + len(tok), Changed: false})
				newSpans = append(newSpans, InlineSpan{Start: newOff, End: newOff + len(tok), Changed: false})
				oldOff += len(tok)
				newOff += len(tok)
				unchangedBytes += len(tok)
			case diffmatchpatch.DiffDelete:
				oldSpans = append(oldSpans, InlineSpan{Start: oldOff, End: oldOff + len(tok), Changed: true})
				oldOff += len(tok)
			case diffmatchpatch.DiffInsert:
				newSpans = append(newSpans, InlineSpan{Start: newOff, End: newOff + len(tok), Changed: true})
				newOff += len(tok)
			}
		}
	}

	longest := len(strings.TrimSpace(old))
	if n := len(strings.TrimSpace(new_)); n > longest {
		longest = n
	}
	if longest == 0 || float64(unchangedBytes)/float64(longest) < inlineDiffSimilarityFloor {
		return
	}

	row.Old.InlineSpans = mergeAdjacentSpans(oldSpans)
	row.New.InlineSpans = mergeAdjacentSpans(newSpans)
}

func mergeAdjacentSpans(spans []InlineSpan) []InlineSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]InlineSpan, 0, len(spans))
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.Changed == cur.Changed && s.Start == cur.End {
			cur.End = s.End
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	merged = append(merged, cur)
	return merged
}

// splitWords breaks s into maximal runs of word runes (letters, digits,
// underscore) and maximal runs of non-word runes, preserving every byte
// of s across the concatenation of the returned tokens.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	runes := []rune(s)
	start := 0
	curWord := isWordRune(runes[0])
	for i := 1; i < len(runes); i++ {
		w := isWordRune(runes[i])
		if w != curWord {
			tokens = append(tokens, string(runes[start:i]))
			start = i
			curWord = w
		}
	}
	tokens = append(tokens, string(runes[start:]))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r > 127
}

// buildHunks groups rows into Hunks: a hunk opens at the first non-Equal
// row (padded back by up to context lines), extends through subsequent
// changes, and closes context lines after the last change once an Equal
// gap of at least 2*context rows is seen.
func buildHunks(rows []RenderRow, context int) []Hunk {
	var hunks []Hunk
	var hunkStart, lastChange int
	open := false

	closeHunk := func(endExclusive int) {
		if endExclusive > len(rows) {
			endExclusive = len(rows)
		}
		hunks = append(hunks, makeHunk(rows, hunkStart, endExclusive))
	}

	for i, row := range rows {
		if row.Kind != Equal {
			if !open {
				hunkStart = i - context
				if hunkStart < 0 {
					hunkStart = 0
				}
				open = true
			}
			lastChange = i
			continue
		}
		if open && i-lastChange >= context*2 {
			closeHunk(lastChange + context + 1)
			open = false
		}
	}
	if open {
		closeHunk(lastChange + context + 1)
	}
	return hunks
}

func makeHunk(rows []RenderRow, start, end int) Hunk {
	h := Hunk{StartRow: start, RowCount: end - start}
	oldMin, oldMax, newMin, newMax := -1, -1, -1, -1
	for _, row := range rows[start:end] {
		if row.Old != nil {
			if oldMin == -1 || row.Old.LineNum < oldMin {
				oldMin = row.Old.LineNum
			}
			if row.Old.LineNum > oldMax {
				oldMax = row.Old.LineNum
			}
		}
		if row.New != nil {
			if newMin == -1 || row.New.LineNum < newMin {
				newMin = row.New.LineNum
			}
			if row.New.LineNum > newMax {
				newMax = row.New.LineNum
			}
		}
	}
	if oldMin != -1 {
		h.OldRange = lineRange{Start: oldMin, Count: oldMax - oldMin + 1}
	}
	if newMin != -1 {
		h.NewRange = lineRange{Start: newMin, Count: newMax - newMin + 1}
	}
	return h
}
