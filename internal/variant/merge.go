// Package variant merges the tokenizations of one text under several
// themes into a single token stream with per-theme style variants.
package variant

import (
	"fmt"

	"github.com/dshills/duotone/internal/logging"
	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/tokenize"
)

// Options configures a merge.
type Options struct {
	// Lang is passed to the tokenizer.
	Lang string

	// IncludeExplanation copies the first theme's token explanation into
	// each merged token.
	IncludeExplanation bool

	// GrammarState is an optional shared continuation. Its active theme
	// must be one of the requested themes.
	GrammarState *tokenize.GrammarState

	// Logger receives debug output. Nil disables logging.
	Logger *logging.Logger
}

// MergedToken is a run of text shared by all variants, with the style each
// theme gives it.
type MergedToken struct {
	Content     string
	Offset      int
	Explanation []tokenize.ExplanationItem
	Variants    map[string]core.Style
}

// MergeWithThemes tokenizes code once per request, in request order, aligns
// the results and merges them. The result has one slice per source line
// and one MergedToken per shared token.
//
// Requests with an absent theme are skipped. When opts.GrammarState is set
// it is held for the whole call, its active theme is pointed at each
// request's theme while that request is tokenized, and it is restored
// before returning. If the state's original theme is not among the
// requested themes the call fails with a *ThemeMismatchError.
func MergeWithThemes(t tokenize.Tokenizer, code string, requests []ThemeRequest, opts Options) ([][]MergedToken, error) {
	themes, err := present(requests)
	if err != nil {
		return nil, err
	}

	log := opts.Logger.WithComponent("variant")
	if gs := opts.GrammarState; gs != nil {
		log = log.WithField("grammar_state", gs.ID())
	}
	log.Debug("merging %d themes", len(themes))

	docs, err := tokenizeAll(t, code, themes, opts)
	if err != nil {
		return nil, err
	}

	aligned, err := Align(docs...)
	if err != nil {
		return nil, err
	}

	merged := zip(aligned, themes, opts.IncludeExplanation)
	if log.Enabled(logging.LevelDebug) {
		columns := 0
		for _, line := range merged {
			columns += len(line)
		}
		log.Debug("merged %d lines into %d tokens", len(merged), columns)
	}
	return merged, nil
}

// tokenizeAll runs the tokenizer for each theme. The grammar state, if any,
// is leased for the duration and its theme restored on every return path.
func tokenizeAll(t tokenize.Tokenizer, code string, themes []ThemeRequest, opts Options) ([]tokenize.Document, error) {
	gs := opts.GrammarState
	var (
		lease      *tokenize.Lease
		anchor     string
		anchorSeen bool
	)
	if gs != nil {
		lease = gs.Acquire()
		anchor = gs.Theme()
		defer func() {
			lease.SetTheme(anchor)
			lease.Release()
		}()
	}

	base := tokenize.Options{
		Lang:               opts.Lang,
		GrammarState:       gs,
		IncludeExplanation: opts.IncludeExplanation,
	}

	docs := make([]tokenize.Document, 0, len(themes))
	for _, req := range themes {
		name := req.Theme.Name()
		if gs != nil {
			if name == anchor {
				anchorSeen = true
			}
			lease.SetTheme(name)
		}

		doc, err := t.Tokenize(code, req.Theme.apply(base))
		if err != nil {
			return nil, fmt.Errorf("tokenize %q with theme %q: %w", req.Key, name, err)
		}
		docs = append(docs, doc)
	}

	if gs != nil && !anchorSeen {
		return nil, &ThemeMismatchError{Theme: anchor}
	}
	return docs, nil
}

// zip folds aligned documents column by column. Content and offset come
// from the first document; alignment makes them equal in all of them.
func zip(aligned []tokenize.Document, themes []ThemeRequest, explain bool) [][]MergedToken {
	first := aligned[0]
	out := make([][]MergedToken, len(first))
	for l, line := range first {
		merged := make([]MergedToken, len(line))
		for c, tok := range line {
			m := MergedToken{
				Content:  tok.Content,
				Offset:   tok.Offset,
				Variants: make(map[string]core.Style, len(themes)),
			}
			if explain {
				m.Explanation = tok.Explanation
			}
			for n, req := range themes {
				m.Variants[req.Key] = aligned[n][l][c].Style
			}
			merged[c] = m
		}
		out[l] = merged
	}
	return out
}

// Merger is a tokenizer bound to a logger, ready to merge documents.
type Merger struct {
	tokenizer tokenize.Tokenizer
	logger    *logging.Logger
}

// NewMerger creates a Merger. A nil logger disables logging.
func NewMerger(t tokenize.Tokenizer, logger *logging.Logger) *Merger {
	return &Merger{tokenizer: t, logger: logger}
}

// Merge calls MergeWithThemes with the merger's tokenizer. The merger's
// logger is used when opts has none.
func (m *Merger) Merge(code string, requests []ThemeRequest, opts Options) ([][]MergedToken, error) {
	if opts.Logger == nil {
		opts.Logger = m.logger
	}
	return MergeWithThemes(m.tokenizer, code, requests, opts)
}
