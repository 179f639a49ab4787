package renderer

import "errors"

// Errors returned by renderers.
var (
	// ErrUnknownVariant indicates a variant key no token carries.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrUnknownFormat indicates an output format with no encoder.
	ErrUnknownFormat = errors.New("unknown output format")
)
