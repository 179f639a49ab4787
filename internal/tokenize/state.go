package tokenize

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/duotone/internal/renderer/highlight"
)

// GrammarState is a tokenizer continuation: the lexer state reached at the
// end of some text, for one language, together with the theme that is
// active for it.
//
// The active theme may only be changed through a Lease. Holding a lease
// gives exclusive use of the state; reading the theme does not require it.
type GrammarState struct {
	id    uuid.UUID
	lang  string
	lexer highlight.LexerState

	lease sync.Mutex

	mu    sync.RWMutex
	theme string
}

// NewGrammarState creates a state for lang that resumes at lexer with the
// given active theme.
func NewGrammarState(lang, theme string, lexer highlight.LexerState) *GrammarState {
	return &GrammarState{
		id:    uuid.New(),
		lang:  lang,
		lexer: lexer,
		theme: theme,
	}
}

// ID returns the unique identifier of the state.
func (s *GrammarState) ID() uuid.UUID {
	return s.id
}

// Lang returns the language the state belongs to.
func (s *GrammarState) Lang() string {
	return s.lang
}

// LexerState returns the lexer state to resume from.
func (s *GrammarState) LexerState() highlight.LexerState {
	return s.lexer
}

// Theme returns the active theme name.
func (s *GrammarState) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Acquire blocks until the caller has exclusive use of the state.
// The returned lease must be released.
func (s *GrammarState) Acquire() *Lease {
	s.lease.Lock()
	return &Lease{state: s}
}

// Lease is exclusive use of a GrammarState.
type Lease struct {
	state *GrammarState
	once  sync.Once
}

// SetTheme repoints the active theme.
func (l *Lease) SetTheme(name string) {
	l.state.mu.Lock()
	l.state.theme = name
	l.state.mu.Unlock()
}

// Release gives up the lease. Calling it more than once is a no-op.
func (l *Lease) Release() {
	l.once.Do(l.state.lease.Unlock)
}
