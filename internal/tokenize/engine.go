package tokenize

import (
	"fmt"
	"strings"

	"github.com/dshills/duotone/internal/logging"
	"github.com/dshills/duotone/internal/renderer/highlight"
)

// PlainText is the language name for text without a lexer.
const PlainText = "text"

// Options configures one tokenization.
type Options struct {
	// Lang is the language name. Empty or "text" disables lexing.
	Lang string

	// ThemeName names a registered theme. Ignored when Theme is set.
	ThemeName string

	// Theme is an already resolved theme.
	Theme *highlight.Theme

	// GrammarState, when set, is the continuation to resume from. Its
	// language and active theme must match the request.
	GrammarState *GrammarState

	// IncludeExplanation attaches scope explanations to every token.
	IncludeExplanation bool
}

// themeName returns the canonical name of the requested theme.
func (o Options) themeName() string {
	if o.Theme != nil {
		return o.Theme.Name
	}
	return o.ThemeName
}

// Tokenizer turns source text and one theme into a Document.
type Tokenizer interface {
	Tokenize(code string, opts Options) (Document, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(code string, opts Options) (Document, error)

// Tokenize calls f.
func (f TokenizerFunc) Tokenize(code string, opts Options) (Document, error) {
	return f(code, opts)
}

// Engine is the Tokenizer backed by the highlight lexers and themes.
type Engine struct {
	languages *highlight.Registry
	themes    *highlight.ThemeRegistry
	logger    *logging.Logger
}

// NewEngine creates an engine. Nil registries are replaced by the built-in
// lexers and themes.
func NewEngine(languages *highlight.Registry, themes *highlight.ThemeRegistry) *Engine {
	if languages == nil {
		languages = highlight.DefaultRegistry()
	}
	if themes == nil {
		themes = highlight.NewThemeRegistry()
	}
	return &Engine{
		languages: languages,
		themes:    themes,
		logger:    logging.Nop(),
	}
}

// SetLogger sets the engine's logger.
func (e *Engine) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	e.logger = l.WithComponent("tokenize")
}

// Languages returns the language registry.
func (e *Engine) Languages() *highlight.Registry {
	return e.languages
}

// Themes returns the theme registry.
func (e *Engine) Themes() *highlight.ThemeRegistry {
	return e.themes
}

// Tokenize implements Tokenizer.
func (e *Engine) Tokenize(code string, opts Options) (Document, error) {
	theme, lexer, start, err := e.prepare(opts)
	if err != nil {
		return nil, err
	}
	doc, _, err := e.run(code, lexer, theme, start, opts.IncludeExplanation)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GrammarStateAfter tokenizes code and returns the continuation reached at
// its end, with the requested theme active.
func (e *Engine) GrammarStateAfter(code string, opts Options) (*GrammarState, error) {
	theme, lexer, start, err := e.prepare(opts)
	if err != nil {
		return nil, err
	}
	_, end, err := e.run(code, lexer, theme, start, false)
	if err != nil {
		return nil, err
	}
	return NewGrammarState(normalizeLang(opts.Lang), theme.Name, end), nil
}

func (e *Engine) prepare(opts Options) (*highlight.Theme, highlight.Highlighter, highlight.LexerState, error) {
	theme := opts.Theme
	if theme == nil {
		if opts.ThemeName == "" {
			return nil, nil, 0, ErrNoTheme
		}
		t, err := e.themes.Lookup(opts.ThemeName)
		if err != nil {
			return nil, nil, 0, err
		}
		theme = t
	}

	lang := normalizeLang(opts.Lang)
	var lexer highlight.Highlighter
	if lang != PlainText {
		h, ok := e.languages.GetByLanguage(lang)
		if !ok {
			return nil, nil, 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, opts.Lang)
		}
		lexer = h
	}

	start := highlight.LexerStateNormal
	if gs := opts.GrammarState; gs != nil {
		if normalizeLang(gs.Lang()) != lang {
			return nil, nil, 0, fmt.Errorf("%w: state is %q, request is %q", ErrStateLanguage, gs.Lang(), lang)
		}
		if active := gs.Theme(); active != theme.Name {
			return nil, nil, 0, fmt.Errorf("%w: state has %q active, request uses %q", ErrStateTheme, active, theme.Name)
		}
		start = gs.LexerState()
	}
	return theme, lexer, start, nil
}

func (e *Engine) run(code string, lexer highlight.Highlighter, theme *highlight.Theme, state highlight.LexerState, explain bool) (Document, highlight.LexerState, error) {
	checked, _ := lexer.(highlight.CheckedHighlighter)
	lines := SplitLines(code)
	doc := make(Document, len(lines))
	for i, text := range lines {
		var spans []highlight.Span
		switch {
		case checked != nil:
			var err error
			spans, state, err = checked.HighlightLineChecked(text, state)
			if err != nil {
				return nil, state, fmt.Errorf("%w: line %d: %w", ErrLexer, i+1, err)
			}
		case lexer != nil:
			spans, state = lexer.HighlightLine(text, state)
		}
		doc[i] = buildLine(text, spans, theme, explain)
	}
	e.logger.Debug("tokenized %d lines with %s", len(doc), theme.Name)
	return doc, state, nil
}

// buildLine styles spans and fills the gaps between them with default text
// so the tokens partition the line. Neighbours with equal style are joined.
func buildLine(text string, spans []highlight.Span, theme *highlight.Theme, explain bool) Line {
	line := Line{}
	emit := func(tokenType highlight.TokenType, start, end int) {
		style, match := theme.Resolve(tokenType)
		content := text[start:end]
		var item []ExplanationItem
		if explain {
			item = []ExplanationItem{{Content: content, Scope: tokenType.Scope(), ThemeMatch: match}}
		}
		if n := len(line); n > 0 && line[n-1].Style.Equals(style) {
			line[n-1].Content += content
			line[n-1].Explanation = append(line[n-1].Explanation, item...)
			return
		}
		line = append(line, ThemedToken{Content: content, Offset: start, Style: style, Explanation: item})
	}

	pos := 0
	for _, s := range spans {
		start, end := max(s.Start, pos), min(s.End, len(text))
		if end <= start {
			continue
		}
		if start > pos {
			emit(highlight.TokenNone, pos, start)
		}
		emit(s.Type, start, end)
		pos = end
	}
	if pos < len(text) {
		emit(highlight.TokenNone, pos, len(text))
	}
	return line
}

func normalizeLang(lang string) string {
	switch lang = strings.ToLower(strings.TrimSpace(lang)); lang {
	case "", "txt", "plain", "plaintext":
		return PlainText
	default:
		return lang
	}
}
