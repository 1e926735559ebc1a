// Package highlight turns file content into per-line styled spans for
// the diff viewport, with a content-addressed cache so recomputing a
// diff (e.g. after a filesystem watch event) doesn't re-lex unchanged
// files.
package highlight

import (
	"hash/fnv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StyledSpan is a byte range within one line, carrying the lipgloss
// style to render it with.
type StyledSpan struct {
	Start int
	End   int
	Style lipgloss.Style
}

// Highlighter tokenizes file content into per-line styled spans.
type Highlighter interface {
	Highlight(language, content string) [][]StyledSpan
}

// cacheKey identifies one (language, content) pair by a content digest
// rather than the content itself, so the cache doesn't pin large file
// bodies in memory longer than needed.
type cacheKey struct {
	language string
	digest   uint64
}

// Cache wraps a Highlighter with a content-addressed cache keyed on
// (language, FNV-1a(content)).
type Cache struct {
	inner Highlighter
	mu    sync.Mutex
	spans map[cacheKey][][]StyledSpan
}

// NewCache wraps inner with an unbounded in-memory cache. Process
// lifetime is short enough (one review session) that eviction isn't
// needed.
func NewCache(inner Highlighter) *Cache {
	return &Cache{inner: inner, spans: make(map[cacheKey][][]StyledSpan)}
}

func (c *Cache) Highlight(language, content string) [][]StyledSpan {
	key := cacheKey{language: language, digest: digest(content)}

	c.mu.Lock()
	if cached, ok := c.spans[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	result := c.inner.Highlight(language, content)

	c.mu.Lock()
	c.spans[key] = result
	c.mu.Unlock()
	return result
}

func digest(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// ScopeInfo names the innermost scope (function, method, type...)
// enclosing a given line, for the diff viewport's sticky header.
type ScopeInfo struct {
	Line  int
	Label string
}
