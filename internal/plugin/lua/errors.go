package lua

import "errors"

// Errors for Lua lexer operations.
var (
	// ErrStateClosed is returned when operating on a closed lexer.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrMissingLanguage is returned when a script sets no language name.
	ErrMissingLanguage = errors.New("lua lexer does not set language")

	// ErrMissingHighlight is returned when a script defines no highlight function.
	ErrMissingHighlight = errors.New("lua lexer does not define highlight")

	// ErrBadResult is returned when highlight returns something other than a span list.
	ErrBadResult = errors.New("lua lexer returned an invalid result")
)
