package variant

import (
	"fmt"

	"github.com/dshills/duotone/internal/tokenize"
)

// cursor walks one document's line, handing out tokens or the unconsumed
// tail of a token that was split.
type cursor struct {
	source    tokenize.Line
	position  int
	remainder tokenize.ThemedToken
	done      bool
}

// reset points the cursor at the first token of line.
func (c *cursor) reset(line tokenize.Line) error {
	for _, tok := range line {
		if tok.Content == "" {
			return fmt.Errorf("%w at offset %d", ErrEmptyToken, tok.Offset)
		}
	}
	c.source = line
	c.position = -1
	c.done = false
	c.advance()
	return nil
}

func (c *cursor) advance() {
	c.position++
	if c.position >= len(c.source) {
		c.remainder = tokenize.ThemedToken{}
		c.done = true
		return
	}
	c.remainder = c.source[c.position]
}

// take emits the next n bytes. A remainder of exactly n bytes is emitted
// whole and the cursor moves on; a longer one is split and its tail kept.
func (c *cursor) take(n int) tokenize.ThemedToken {
	tok := c.remainder
	if len(tok.Content) == n {
		c.advance()
		return tok
	}

	head := tok
	head.Content = tok.Content[:n]
	c.remainder.Content = tok.Content[n:]
	c.remainder.Offset = tok.Offset + n
	return head
}

// Align re-segments documents produced from the same text so that, line by
// line, every document has the same number of tokens with the same offsets.
// Tokens are split where another document has a boundary inside them; split
// fragments keep the style and explanation of the token they came from.
//
// The result has one document per input, in input order. Inputs are not
// modified.
func Align(docs ...tokenize.Document) ([]tokenize.Document, error) {
	out := make([]tokenize.Document, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	lines := len(docs[0])
	for n, doc := range docs {
		if len(doc) != lines {
			return nil, fmt.Errorf("%w: document %d has %d lines, document 0 has %d",
				ErrLineCountMismatch, n, len(doc), lines)
		}
		out[n] = make(tokenize.Document, lines)
	}

	cursors := make([]cursor, len(docs))
	for l := 0; l < lines; l++ {
		for n, doc := range docs {
			if err := cursors[n].reset(doc[l]); err != nil {
				return nil, fmt.Errorf("document %d line %d: %w", n, l, err)
			}
		}
		aligned, err := alignLine(cursors)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l, err)
		}
		for n := range docs {
			out[n][l] = aligned[n]
		}
	}
	return out, nil
}

// alignLine consumes the shortest remainder of every cursor per step.
// Every cursor whose remainder has that length advances in the same step.
func alignLine(cursors []cursor) ([]tokenize.Line, error) {
	out := make([]tokenize.Line, len(cursors))
	for n := range out {
		out[n] = make(tokenize.Line, 0, len(cursors[n].source))
	}

	for active(cursors) {
		minLength := len(cursors[0].remainder.Content)
		for _, c := range cursors[1:] {
			minLength = min(minLength, len(c.remainder.Content))
		}
		for n := range cursors {
			out[n] = append(out[n], cursors[n].take(minLength))
		}
	}

	for n, c := range cursors {
		if !c.done {
			return nil, fmt.Errorf("%w: document %d has text past byte %d",
				ErrLineLengthMismatch, n, c.remainder.Offset)
		}
	}
	return out, nil
}

func active(cursors []cursor) bool {
	for _, c := range cursors {
		if c.done {
			return false
		}
	}
	return true
}
