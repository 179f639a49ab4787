package variant

import (
	"errors"
	"fmt"
)

// Errors returned by alignment and merging.
var (
	// ErrEmptyToken indicates a tokenizer produced a zero-length token.
	ErrEmptyToken = errors.New("zero-length token")

	// ErrLineCountMismatch indicates the documents have different line counts.
	ErrLineCountMismatch = errors.New("line count mismatch")

	// ErrLineLengthMismatch indicates a line's tokens cover different lengths
	// across documents.
	ErrLineLengthMismatch = errors.New("line length mismatch")

	// ErrDuplicateKey indicates two theme requests share a key.
	ErrDuplicateKey = errors.New("duplicate theme key")

	// ErrNoThemes indicates no theme request carried a theme.
	ErrNoThemes = errors.New("no themes requested")

	// ErrGrammarStateTheme indicates the grammar state's active theme is not
	// one of the requested themes.
	ErrGrammarStateTheme = errors.New("grammar state theme is not in themes")

	// ErrInvalidRequest indicates a malformed "key=theme" request string.
	ErrInvalidRequest = errors.New("invalid theme request")
)

// ThemeMismatchError reports the grammar state theme that was missing from
// the requested themes.
type ThemeMismatchError struct {
	// Theme is the grammar state's active theme.
	Theme string
}

// Error implements the error interface.
func (e *ThemeMismatchError) Error() string {
	return fmt.Sprintf("grammar state theme %q is not in themes", e.Theme)
}

// Unwrap returns ErrGrammarStateTheme.
func (e *ThemeMismatchError) Unwrap() error {
	return ErrGrammarStateTheme
}
