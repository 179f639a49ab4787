// Package tokenize turns source text plus one theme into styled tokens.
//
// A Tokenizer produces a Document: one Line per source line, each Line a
// run of ThemedTokens that partition the line text. Adjacent spans that
// resolve to the same style are merged, so two themes tokenizing the same
// text generally disagree on token boundaries.
package tokenize

import (
	"strings"

	"github.com/dshills/duotone/internal/renderer/core"
)

// ExplanationItem describes one lexer span that contributed to a token.
type ExplanationItem struct {
	// Content is the text of the span.
	Content string

	// Scope is the lexer scope of the span, e.g. "keyword.control".
	Scope string

	// ThemeMatch is the theme rule scope that styled the span, or ""
	// when the theme's default style applied.
	ThemeMatch string
}

// ThemedToken is a run of text with a single resolved style.
type ThemedToken struct {
	// Content is the token text.
	Content string

	// Offset is the byte offset of Content within its line.
	Offset int

	// Style is the resolved style attribute bag.
	Style core.Style

	// Explanation is set only when requested.
	Explanation []ExplanationItem
}

// End returns the byte offset just past the token.
func (t ThemedToken) End() int {
	return t.Offset + len(t.Content)
}

// Line is the ordered token sequence of one source line.
type Line []ThemedToken

// Text returns the concatenated token content.
func (l Line) Text() string {
	var b strings.Builder
	for _, tok := range l {
		b.WriteString(tok.Content)
	}
	return b.String()
}

// Document is the tokenized form of a source text, one Line per line.
type Document []Line

// SplitLines splits code on "\n", dropping a trailing "\r" from each line.
// The result always has at least one element.
func SplitLines(code string) []string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
