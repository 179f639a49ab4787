package tokenize

import "errors"

// Tokenizer errors.
var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrNoTheme         = errors.New("no theme given")
	ErrStateLanguage   = errors.New("grammar state language mismatch")
	ErrStateTheme      = errors.New("grammar state theme mismatch")
	ErrLexer           = errors.New("lexer failed")
)
