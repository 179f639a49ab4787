package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/duotone/internal/logging"
	"github.com/dshills/duotone/internal/renderer/highlight"
)

// Lexer is a highlight.Highlighter backed by a Lua script.
//
// gopher-lua states are not goroutine-safe, so calls are serialized.
type Lexer struct {
	mu sync.Mutex
	L  *lua.LState
	fn lua.LValue

	name       string
	language   string
	extensions []string
	timeout    time.Duration
	logger     *logging.Logger

	lastErr error
	closed  bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithTimeout bounds each Lua call.
func WithTimeout(d time.Duration) Option {
	return func(l *Lexer) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used to report script failures.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Lexer) {
		l.logger = logger
	}
}

// Load reads and runs the lexer script at path.
func Load(path string, opts ...Option) (*Lexer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lua lexer: %w", err)
	}
	return LoadString(filepath.Base(path), string(src), opts...)
}

// LoadString runs a lexer script. name identifies it in errors.
func LoadString(name, src string, opts ...Option) (*Lexer, error) {
	l := &Lexer{
		name:    name,
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithComponent("lua").WithField("script", name)

	l.L = newState()
	if err := l.init(src); err != nil {
		l.L.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return l, nil
}

func (l *Lexer) init(src string) error {
	chunk, err := l.L.LoadString(src)
	if err != nil {
		return err
	}
	if err := call(l.L, l.timeout, chunk, 0); err != nil {
		return err
	}

	lang, ok := l.L.GetGlobal("language").(lua.LString)
	if !ok || lang == "" {
		return ErrMissingLanguage
	}
	l.language = string(lang)

	if exts, ok := l.L.GetGlobal("extensions").(*lua.LTable); ok {
		exts.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				l.extensions = append(l.extensions, string(s))
			}
		})
	}

	l.fn = l.L.GetGlobal("highlight")
	if l.fn.Type() != lua.LTFunction {
		return ErrMissingHighlight
	}
	return nil
}

// Language returns the language the script declares.
func (l *Lexer) Language() string {
	return l.language
}

// FileExtensions returns the extensions the script declares.
func (l *Lexer) FileExtensions() []string {
	return l.extensions
}

// HighlightLine runs the script's highlight function on one line.
// A failing call yields no spans and keeps prevState; Err reports it.
func (l *Lexer) HighlightLine(line string, prevState highlight.LexerState) ([]highlight.Span, highlight.LexerState) {
	spans, state, err := l.HighlightLineChecked(line, prevState)
	if err != nil {
		l.logger.Warn("highlight failed: %v", err)
		return nil, prevState
	}
	return spans, state
}

// HighlightLineChecked is HighlightLine with the failure returned.
func (l *Lexer) HighlightLineChecked(line string, prevState highlight.LexerState) ([]highlight.Span, highlight.LexerState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.lastErr = ErrStateClosed
		return nil, prevState, ErrStateClosed
	}

	spans, state, err := l.highlight(line, prevState)
	if err != nil {
		l.lastErr = err
		return nil, prevState, fmt.Errorf("lexer %s: %w", l.language, err)
	}
	return spans, state, nil
}

func (l *Lexer) highlight(line string, prevState highlight.LexerState) ([]highlight.Span, highlight.LexerState, error) {
	if err := call(l.L, l.timeout, l.fn, 2, lua.LString(line), lua.LNumber(prevState)); err != nil {
		return nil, prevState, err
	}
	rawSpans, rawState := l.L.Get(-2), l.L.Get(-1)
	l.L.Pop(2)

	var state highlight.LexerState
	switch v := rawState.(type) {
	case lua.LNumber:
		state = highlight.LexerState(v)
	case *lua.LNilType:
	default:
		return nil, prevState, fmt.Errorf("%w: state is %s", ErrBadResult, rawState.Type())
	}

	if rawSpans == lua.LNil {
		return nil, state, nil
	}
	tbl, ok := rawSpans.(*lua.LTable)
	if !ok {
		return nil, prevState, fmt.Errorf("%w: spans is %s", ErrBadResult, rawSpans.Type())
	}

	spans := make([]highlight.Span, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		span, ok := toSpan(tbl.RawGetInt(i), len(line))
		if !ok {
			return nil, prevState, fmt.Errorf("%w: span %d", ErrBadResult, i)
		}
		if span.Len() > 0 {
			spans = append(spans, span)
		}
	}
	return normalize(spans), state, nil
}

// toSpan converts {scope, first, last} into a clamped byte span.
func toSpan(v lua.LValue, lineLen int) (highlight.Span, bool) {
	entry, ok := v.(*lua.LTable)
	if !ok {
		return highlight.Span{}, false
	}
	scope, ok1 := entry.RawGetInt(1).(lua.LString)
	first, ok2 := entry.RawGetInt(2).(lua.LNumber)
	last, ok3 := entry.RawGetInt(3).(lua.LNumber)
	if !ok1 || !ok2 || !ok3 {
		return highlight.Span{}, false
	}

	start := max(int(first)-1, 0)
	end := min(int(last), lineLen)
	if end < start {
		end = start
	}
	return highlight.Span{
		Type:  highlight.TokenTypeFromString(string(scope)),
		Start: start,
		End:   end,
	}, true
}

// normalize sorts spans and drops any that overlap an earlier one.
func normalize(spans []highlight.Span) []highlight.Span {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	out := spans[:0]
	end := 0
	for _, s := range spans {
		if s.Start < end {
			continue
		}
		out = append(out, s)
		end = s.End
	}
	return out
}

// Err returns the most recent highlight failure, if any.
func (l *Lexer) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Close releases the Lua state.
func (l *Lexer) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.L.Close()
	l.closed = true
	return nil
}

var _ highlight.CheckedHighlighter = (*Lexer)(nil)
