package core

import "errors"

var (
	// ErrInvalidColor indicates a color value that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidFontStyle indicates an unknown font style keyword.
	ErrInvalidFontStyle = errors.New("invalid font style")
)
