package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// ChromaHighlighter tokenizes content with chroma/v2, the same
// tokenizer family quickdiff's teacher already pulls in transitively
// for markdown code fences.
type ChromaHighlighter struct {
	Theme string
}

// NewChromaHighlighter returns a highlighter using the named chroma
// style (e.g. "monokai", "github"). An unknown theme falls back to
// chroma's default "swapoff" style.
func NewChromaHighlighter(theme string) *ChromaHighlighter {
	return &ChromaHighlighter{Theme: theme}
}

func (h *ChromaHighlighter) style() *chroma.Style {
	if s := styles.Get(h.Theme); s != nil {
		return s
	}
	return styles.Fallback
}

// Highlight lexes content by language (a chroma lexer name or a file
// extension hint) and returns one []StyledSpan per line.
func (h *ChromaHighlighter) Highlight(language, content string) [][]StyledSpan {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return plainLines(content)
	}
	tokens := iterator.Tokens()
	style := h.style()
	return tokensToLineSpans(tokens, style)
}

func tokensToLineSpans(tokens []chroma.Token, style *chroma.Style) [][]StyledSpan {
	var lines [][]StyledSpan
	var current []StyledSpan
	offset := 0

	flush := func() {
		lines = append(lines, current)
		current = nil
		offset = 0
	}

	for _, tok := range tokens {
		lipStyle := lipglossStyle(style, tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			current = append(current, StyledSpan{Start: offset, End: offset + len(part), Style: lipStyle})
			offset += len(part)
		}
	}
	if current != nil || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

func lipglossStyle(style *chroma.Style, tt chroma.TokenType) lipgloss.Style {
	entry := style.Get(tt)
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Background.IsSet() {
		s = s.Background(lipgloss.Color(entry.Background.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func plainLines(content string) [][]StyledSpan {
	lines := strings.Split(content, "\n")
	out := make([][]StyledSpan, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out[i] = []StyledSpan{{Start: 0, End: len(line), Style: lipgloss.NewStyle()}}
	}
	return out
}

// EnclosingScope scans backward from atLine for the nearest line that
// opens a named scope (function, method, type, class...), using a
// deliberately simple indentation+keyword heuristic rather than a full
// parser: the innermost scope is the closest preceding line, at or
// below atLine's indentation, that starts with one of a small set of
// scope-opening keywords.
func EnclosingScope(lines []string, atLine int) (ScopeInfo, bool) {
	if atLine < 0 || atLine >= len(lines) {
		return ScopeInfo{}, false
	}
	targetIndent := indentOf(lines[atLine])

	for i := atLine; i >= 0; i-- {
		indent := indentOf(lines[i])
		if indent > targetIndent {
			continue
		}
		trimmed := strings.TrimSpace(lines[i])
		if isScopeOpener(trimmed) {
			return ScopeInfo{Line: i, Label: trimmed}, true
		}
		if indent < targetIndent {
			targetIndent = indent
		}
	}
	return ScopeInfo{}, false
}

var scopeKeywords = []string{"func ", "func(", "class ", "type ", "def ", "fn ", "struct ", "interface ", "impl ", "module "}

func isScopeOpener(line string) bool {
	for _, kw := range scopeKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
			continue
		}
		break
	}
	return n
}
