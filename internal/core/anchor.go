package core

import "fmt"

const (
	fnvOffset64 uint64 = 0xcbf29ce484222325
	fnvPrime64  uint64 = 0x100000001b3
)

// Selector identifies one way of locating a hunk across diff
// recomputations. DiffHunkV1 is presently the only kind, so its fields
// are inlined rather than nested under a oneof-style payload.
type Selector struct {
	Kind      string    `json:"type"`
	OldRange  lineRange `json:"oldRange"`
	NewRange  lineRange `json:"newRange"`
	DigestHex string    `json:"digestHex"`
}

// DiffHunkSelectorV1 is the payload of a "diff_hunk_v1" Selector.
type DiffHunkSelectorV1 struct {
	OldRange  lineRange
	NewRange  lineRange
	DigestHex string
}

// Anchor is the full set of selectors recorded for a comment. A comment
// has exactly one selector today; the slice leaves room for future
// selector kinds without a schema break.
type Anchor struct {
	Selectors []Selector `json:"selectors"`
}

// SelectorFromHunk builds the DiffHunkV1 selector for hunks[hunkIdx],
// digesting its changed rows for later relocation.
func SelectorFromHunk(diff *DiffResult, hunkIdx int) Selector {
	hunk := diff.Hunks()[hunkIdx]
	digest := DigestHunkChangedRows(diff, hunk)
	return Selector{
		Kind:      "diff_hunk_v1",
		OldRange:  hunk.OldRange,
		NewRange:  hunk.NewRange,
		DigestHex: digest,
	}
}

// DigestHunkChangedRows computes a stable FNV-1a-64 digest over a hunk's
// changed rows: for each row in the hunk with a deleted or replaced old
// side, the bytes '-' + content + '\n' are folded in; for each row with
// an inserted or replaced new side, '+' + content + '\n' is folded in.
// Equal rows do not contribute, so reflowing context around a hunk
// doesn't change its digest.
func DigestHunkChangedRows(diff *DiffResult, hunk Hunk) string {
	hash := fnvOffset64
	rows := diff.Rows()
	end := hunk.StartRow + hunk.RowCount
	if end > len(rows) {
		end = len(rows)
	}
	for _, row := range rows[hunk.StartRow:end] {
		if (row.Kind == Delete || row.Kind == Replace) && row.Old != nil {
			hash = fnvFold(hash, '-')
			hash = fnvFoldString(hash, row.Old.Content)
			hash = fnvFold(hash, '\n')
		}
		if (row.Kind == Insert || row.Kind == Replace) && row.New != nil {
			hash = fnvFold(hash, '+')
			hash = fnvFoldString(hash, row.New.Content)
			hash = fnvFold(hash, '\n')
		}
	}
	return fmt.Sprintf("%016x", hash)
}

func fnvFold(hash uint64, b byte) uint64 {
	hash ^= uint64(b)
	hash *= fnvPrime64
	return hash
}

func fnvFoldString(hash uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		hash = fnvFold(hash, s[i])
	}
	return hash
}

// RelocateHunk finds the hunk in diff that anchor still refers to after a
// reload, matching strictly on the changed-rows digest. Line-range fields
// are advisory only and are never used for matching: a hunk whose content
// changed but whose old/new ranges happen to coincide is not a match.
// Reports ok=false if no hunk's digest matches.
func RelocateHunk(diff *DiffResult, anchor Anchor) (int, bool) {
	if diff == nil || len(anchor.Selectors) == 0 {
		return 0, false
	}
	sel := anchor.Selectors[0]
	hunks := diff.Hunks()
	for i, h := range hunks {
		if DigestHunkChangedRows(diff, h) == sel.DigestHex {
			return i, true
		}
	}
	return 0, false
}

// FormatAnchorSummary renders an Anchor as a compact human-readable
// string, e.g. "@@ -12,3 +12,5 @@ [a1b2c3d4]".
func FormatAnchorSummary(a Anchor) string {
	out := ""
	for i, sel := range a.Selectors {
		if i > 0 {
			out += "; "
		}
		digest := sel.DigestHex
		if len(digest) > 8 {
			digest = digest[:8]
		}
		out += fmt.Sprintf("@@ -%d,%d +%d,%d @@ [%s]", sel.OldRange.Start+1, sel.OldRange.Count, sel.NewRange.Start+1, sel.NewRange.Count, digest)
	}
	return out
}
