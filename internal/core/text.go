// Package core implements the diff computation, rendering-model, and
// review-state primitives shared by quickdiff's workers and UI: text
// buffering, line diffing, hunk anchoring, comment/viewed persistence,
// fuzzy file filtering, patch parsing, and repo-change watching.
package core

import "unicode/utf8"

// binaryCheckBytes is the number of leading bytes scanned for a NUL byte
// when classifying content as binary, matching git's own heuristic.
const binaryCheckBytes = 8000

// TextBuffer is an immutable byte buffer with O(1) line slicing.
//
// CRLF is normalized to LF on construction. line_starts always begins
// with 0 and ends with len(bytes); line_count == len(lineStarts)-1 for
// non-empty buffers, else 0.
type TextBuffer struct {
	bytes      []byte
	lineStarts []int
	isBinary   bool
}

// NewTextBuffer builds a TextBuffer from raw bytes, normalizing CRLF to
// LF and detecting binary content via a NUL-byte scan of the first
// binaryCheckBytes bytes.
func NewTextBuffer(input []byte) *TextBuffer {
	isBinary := detectBinary(input)
	bytes := normalizeCRLF(input)
	return &TextBuffer{
		bytes:      bytes,
		lineStarts: computeLineStarts(bytes),
		isBinary:   isBinary,
	}
}

// EmptyTextBuffer returns a zero-length, non-binary TextBuffer.
func EmptyTextBuffer() *TextBuffer {
	return &TextBuffer{bytes: nil, lineStarts: []int{0, 0}, isBinary: false}
}

// IsBinary reports whether the buffer's content looks binary.
func (t *TextBuffer) IsBinary() bool { return t.isBinary }

// LineCount returns the number of lines. An empty buffer has 0 lines; a
// buffer with any content has at least 1, even without a trailing
// newline.
func (t *TextBuffer) LineCount() int {
	if len(t.bytes) == 0 {
		return 0
	}
	return len(t.lineStarts) - 1
}

// Line returns the bytes of line i (0-indexed), excluding any trailing
// LF, or nil+false if i is out of range.
func (t *TextBuffer) Line(i int) ([]byte, bool) {
	if i < 0 || i >= t.LineCount() {
		return nil, false
	}
	start := t.lineStarts[i]
	end := t.lineStarts[i+1]
	if end > start && t.bytes[end-1] == '\n' {
		end--
	}
	return t.bytes[start:end], true
}

// LineString returns line i as a lossy-UTF-8 string (invalid bytes become
// U+FFFD), or "", false if out of range.
func (t *TextBuffer) LineString(i int) (string, bool) {
	b, ok := t.Line(i)
	if !ok {
		return "", false
	}
	return toUTF8Lossy(b), true
}

// Lines returns every line as a lossy-UTF-8 string, in order.
func (t *TextBuffer) Lines() []string {
	n := t.LineCount()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		s, _ := t.LineString(i)
		out[i] = s
	}
	return out
}

// Len returns the total byte length of the buffer.
func (t *TextBuffer) Len() int { return len(t.bytes) }

// IsEmpty reports whether the buffer holds zero bytes.
func (t *TextBuffer) IsEmpty() bool { return len(t.bytes) == 0 }

// AsBytes returns the buffer's raw (CRLF-normalized) bytes.
func (t *TextBuffer) AsBytes() []byte { return t.bytes }

func normalizeCRLF(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] == '\r' && i+1 < len(input) && input[i+1] == '\n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, input[i])
	}
	return out
}

func computeLineStarts(bytes []byte) []int {
	starts := make([]int, 0, 16)
	starts = append(starts, 0)
	for i, b := range bytes {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	if len(bytes) > 0 && bytes[len(bytes)-1] != '\n' {
		starts = append(starts, len(bytes))
	}
	return starts
}

func detectBinary(bytes []byte) bool {
	n := len(bytes)
	if n > binaryCheckBytes {
		n = binaryCheckBytes
	}
	for _, b := range bytes[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

// toUTF8Lossy decodes b as UTF-8, substituting U+FFFD for invalid
// sequences, without allocating when b is already valid UTF-8.
func toUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var out []rune
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		out = append(out, r)
		b = b[size:]
	}
	return string(out)
}
