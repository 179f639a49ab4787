package variant

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/duotone/internal/logging"
	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/tokenize"
)

// fakeTokenizer returns canned documents by theme name and records what it
// was asked for.
type fakeTokenizer struct {
	docs   map[string]tokenize.Document
	errs   map[string]error
	calls  []tokenize.Options
	active []string
}

func (f *fakeTokenizer) Tokenize(_ string, opts tokenize.Options) (tokenize.Document, error) {
	f.calls = append(f.calls, opts)
	name := opts.ThemeName
	if opts.Theme != nil {
		name = opts.Theme.Name
	}
	if opts.GrammarState != nil {
		f.active = append(f.active, opts.GrammarState.Theme())
	}
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	doc, ok := f.docs[name]
	if !ok {
		return nil, fmt.Errorf("no document for %q", name)
	}
	return doc, nil
}

func consoleLogTokenizer() *fakeTokenizer {
	return &fakeTokenizer{docs: map[string]tokenize.Document{
		"dark-plus": parseDoc(1, `console|.|log|("|hi|")`),
		"one-dark":  parseDoc(2, `console|.log|(|"hi"|)`),
	}}
}

func lightDark() []ThemeRequest {
	return []ThemeRequest{
		{Key: "light", Theme: RawName("dark-plus")},
		{Key: "dark", Theme: RawName("one-dark")},
	}
}

// requireReleased fails if the grammar state's lease is still held.
func requireReleased(t *testing.T, gs *tokenize.GrammarState) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		gs.Acquire().Release()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "grammar state lease was not released")
	}
}

func TestMergeWithThemes_VariantMapping(t *testing.T) {
	merged, err := MergeWithThemes(consoleLogTokenizer(), `console.log("hi")`, lightDark(), Options{})
	require.NoError(t, err)
	require.Len(t, merged, 1)

	variants := func(light, dark int) map[string]core.Style {
		return map[string]core.Style{"light": styleOf(1, light), "dark": styleOf(2, dark)}
	}
	want := []MergedToken{
		{Content: "console", Offset: 0, Variants: variants(0, 0)},
		{Content: ".", Offset: 7, Variants: variants(1, 1)},
		{Content: "log", Offset: 8, Variants: variants(2, 1)},
		{Content: "(", Offset: 11, Variants: variants(3, 2)},
		{Content: `"`, Offset: 12, Variants: variants(3, 3)},
		{Content: "hi", Offset: 13, Variants: variants(4, 3)},
		{Content: `"`, Offset: 15, Variants: variants(5, 3)},
		{Content: ")", Offset: 16, Variants: variants(5, 4)},
	}
	if diff := cmp.Diff(want, merged[0]); diff != "" {
		t.Errorf("merged tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeWithThemes_CallsInRequestOrder(t *testing.T) {
	tok := consoleLogTokenizer()
	_, err := MergeWithThemes(tok, `console.log("hi")`, []ThemeRequest{
		{Key: "dark", Theme: RawName("one-dark")},
		{Key: "light", Theme: RawName("dark-plus")},
	}, Options{Lang: "javascript"})
	require.NoError(t, err)

	require.Len(t, tok.calls, 2)
	assert.Equal(t, "one-dark", tok.calls[0].ThemeName)
	assert.Equal(t, "dark-plus", tok.calls[1].ThemeName)
	assert.Equal(t, "javascript", tok.calls[0].Lang)
}

func TestMergeWithThemes_AnchorMissing(t *testing.T) {
	gs := tokenize.NewGrammarState("javascript", "nord", highlight.LexerStateNormal)

	merged, err := MergeWithThemes(consoleLogTokenizer(), `console.log("hi")`, lightDark(), Options{GrammarState: gs})
	require.Error(t, err)
	assert.Nil(t, merged)

	require.ErrorIs(t, err, ErrGrammarStateTheme)
	var mismatch *ThemeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "nord", mismatch.Theme)
	assert.Contains(t, err.Error(), `"nord"`)

	assert.Equal(t, "nord", gs.Theme())
	requireReleased(t, gs)
}

func TestMergeWithThemes_RepointsAndRestores(t *testing.T) {
	tok := consoleLogTokenizer()
	gs := tokenize.NewGrammarState("javascript", "one-dark", highlight.LexerStateNormal)

	_, err := MergeWithThemes(tok, `console.log("hi")`, lightDark(), Options{GrammarState: gs})
	require.NoError(t, err)

	assert.Equal(t, []string{"dark-plus", "one-dark"}, tok.active)
	assert.Same(t, gs, tok.calls[0].GrammarState)
	assert.Equal(t, "one-dark", gs.Theme())
	requireReleased(t, gs)
}

func TestMergeWithThemes_RestoresOnTokenizerError(t *testing.T) {
	boom := errors.New("boom")
	tok := consoleLogTokenizer()
	tok.errs = map[string]error{"one-dark": boom}
	gs := tokenize.NewGrammarState("javascript", "dark-plus", highlight.LexerStateNormal)

	merged, err := MergeWithThemes(tok, `console.log("hi")`, lightDark(), Options{GrammarState: gs})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, merged)
	assert.Equal(t, "dark-plus", gs.Theme())
	requireReleased(t, gs)
}

func TestMergeWithThemes_Explanation(t *testing.T) {
	first := []tokenize.ExplanationItem{{Content: "ab", Scope: "variable.other"}}
	tok := &fakeTokenizer{docs: map[string]tokenize.Document{
		"a": {{{Content: "ab", Style: styleOf(1, 0), Explanation: first}}},
		"b": {{
			{Content: "a", Style: styleOf(2, 0), Explanation: []tokenize.ExplanationItem{{Content: "a"}}},
			{Content: "b", Offset: 1, Style: styleOf(2, 1), Explanation: []tokenize.ExplanationItem{{Content: "b"}}},
		}},
	}}
	requests := []ThemeRequest{{Key: "x", Theme: RawName("a")}, {Key: "y", Theme: RawName("b")}}

	merged, err := MergeWithThemes(tok, "ab", requests, Options{})
	require.NoError(t, err)
	for _, m := range merged[0] {
		assert.Nil(t, m.Explanation)
	}
	assert.False(t, tok.calls[0].IncludeExplanation)

	merged, err = MergeWithThemes(tok, "ab", requests, Options{IncludeExplanation: true})
	require.NoError(t, err)
	require.Len(t, merged[0], 2)
	assert.Equal(t, first, merged[0][0].Explanation)
	assert.Equal(t, first, merged[0][1].Explanation)
	assert.True(t, tok.calls[len(tok.calls)-1].IncludeExplanation)
}

func TestMergeWithThemes_Requests(t *testing.T) {
	t.Run("absent themes skipped", func(t *testing.T) {
		tok := consoleLogTokenizer()
		merged, err := MergeWithThemes(tok, `console.log("hi")`, []ThemeRequest{
			{Key: "light", Theme: RawName("dark-plus")},
			{Key: "dark"},
			{Key: "contrast", Theme: Resolved(nil)},
		}, Options{})
		require.NoError(t, err)
		require.Len(t, tok.calls, 1)
		assert.Len(t, merged[0], 6)
		for _, m := range merged[0] {
			assert.Len(t, m.Variants, 1)
			assert.Contains(t, m.Variants, "light")
		}
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := MergeWithThemes(consoleLogTokenizer(), "x", []ThemeRequest{
			{Key: "k", Theme: RawName("dark-plus")},
			{Key: "k", Theme: RawName("one-dark")},
		}, Options{})
		require.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("no themes", func(t *testing.T) {
		tok := consoleLogTokenizer()
		_, err := MergeWithThemes(tok, "x", []ThemeRequest{{Key: "k"}}, Options{})
		require.ErrorIs(t, err, ErrNoThemes)
		assert.Empty(t, tok.calls)
	})

	t.Run("resolved theme", func(t *testing.T) {
		custom := &highlight.Theme{Name: "one-dark", Type: highlight.ThemeDark}
		tok := consoleLogTokenizer()
		gs := tokenize.NewGrammarState("javascript", "one-dark", highlight.LexerStateNormal)
		_, err := MergeWithThemes(tok, `console.log("hi")`, []ThemeRequest{
			{Key: "light", Theme: RawName("dark-plus")},
			{Key: "dark", Theme: Resolved(custom)},
		}, Options{GrammarState: gs})
		require.NoError(t, err)
		assert.Same(t, custom, tok.calls[1].Theme)
		assert.Empty(t, tok.calls[1].ThemeName)
	})
}

func TestMergeWithThemes_AlignmentErrors(t *testing.T) {
	tok := &fakeTokenizer{docs: map[string]tokenize.Document{
		"a": parseDoc(1, "ab", "c"),
		"b": parseDoc(2, "ab"),
	}}
	_, err := MergeWithThemes(tok, "ab\nc", []ThemeRequest{
		{Key: "a", Theme: RawName("a")},
		{Key: "b", Theme: RawName("b")},
	}, Options{})
	require.ErrorIs(t, err, ErrLineCountMismatch)
}

func TestMergeWithThemes_Engine(t *testing.T) {
	engine := tokenize.NewEngine(nil, nil)
	plain := &highlight.Theme{Name: "plain", Type: highlight.ThemeLight, Foreground: core.ColorBlack}
	code := "const a = `x\ny` // done\nconsole.log(\"hi\")"

	gs, err := engine.GrammarStateAfter("", tokenize.Options{Lang: "javascript", ThemeName: "dark-plus"})
	require.NoError(t, err)

	merged, err := MergeWithThemes(engine, code, []ThemeRequest{
		{Key: "dark", Theme: RawName("dark-plus")},
		{Key: "plain", Theme: Resolved(plain)},
	}, Options{Lang: "javascript", GrammarState: gs})
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "dark-plus", gs.Theme())

	dark := highlight.DarkPlusTheme()
	for l, line := range merged {
		pos := 0
		for _, m := range line {
			require.Equal(t, pos, m.Offset, "line %d", l)
			pos += len(m.Content)
			assert.Equal(t, plain.DefaultStyle(), m.Variants["plain"])
		}
	}

	last := merged[2]
	require.Len(t, last, 6)
	assert.Equal(t, dark.StyleForToken(highlight.TokenFunctionBuiltin), last[0].Variants["dark"])
	assert.Equal(t, dark.StyleForToken(highlight.TokenString), last[4].Variants["dark"])
}

func TestMerger_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	m := NewMerger(consoleLogTokenizer(), logger)
	merged, err := m.Merge(`console.log("hi")`, lightDark(), Options{})
	require.NoError(t, err)
	require.Len(t, merged[0], 8)

	out := buf.String()
	assert.Contains(t, out, "merging 2 themes")
	assert.Contains(t, out, "merged 1 lines into 8 tokens")
	assert.Contains(t, out, "component=variant")
	assert.NotContains(t, out, "grammar_state=")

	buf.Reset()
	gs := tokenize.NewGrammarState("javascript", "one-dark", highlight.LexerStateNormal)
	_, err = m.Merge(`console.log("hi")`, lightDark(), Options{GrammarState: gs})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "grammar_state="+gs.ID().String())
}

func TestMergeWithThemes_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		texts, docs := genDocs(t)

		tok := &fakeTokenizer{docs: make(map[string]tokenize.Document)}
		requests := make([]ThemeRequest, len(docs))
		for n, doc := range docs {
			name := fmt.Sprintf("theme%d", n)
			tok.docs[name] = doc
			requests[n] = ThemeRequest{Key: fmt.Sprintf("key%d", n), Theme: RawName(name)}
		}

		anchor := rapid.IntRange(0, len(docs)-1).Draw(t, "anchor")
		gs := tokenize.NewGrammarState("text", fmt.Sprintf("theme%d", anchor), highlight.LexerStateNormal)

		merged, err := MergeWithThemes(tok, "", requests, Options{GrammarState: gs})
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("theme%d", anchor), gs.Theme())
		require.Len(t, merged, len(texts))

		for l, text := range texts {
			var rebuilt []byte
			for _, m := range merged[l] {
				rebuilt = append(rebuilt, m.Content...)
				require.Len(t, m.Variants, len(docs))
				for n, doc := range docs {
					orig := covering(doc[l], m.Offset)
					require.Equal(t, orig.Style, m.Variants[requests[n].Key])
				}
			}
			require.Equal(t, text, string(rebuilt))
		}
	})
}
