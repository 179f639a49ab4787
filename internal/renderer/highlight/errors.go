package highlight

import "errors"

var (
	// ErrThemeNotFound indicates a theme name that is not registered.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidTheme indicates a theme that fails validation.
	ErrInvalidTheme = errors.New("invalid theme")
)
