package variant

import (
	"fmt"
	"strings"

	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/tokenize"
)

// ThemeRef identifies a theme either by registered name or as an already
// resolved theme. The zero ThemeRef is absent.
type ThemeRef struct {
	name     string
	resolved *highlight.Theme
}

// RawName refers to a registered theme by name.
func RawName(name string) ThemeRef {
	return ThemeRef{name: name}
}

// Resolved refers to a resolved theme. A nil theme gives an absent ref.
func Resolved(theme *highlight.Theme) ThemeRef {
	return ThemeRef{resolved: theme}
}

// IsZero reports whether the ref is absent.
func (r ThemeRef) IsZero() bool {
	return r.name == "" && r.resolved == nil
}

// Name returns the canonical theme name.
func (r ThemeRef) Name() string {
	if r.resolved != nil {
		return r.resolved.Name
	}
	return r.name
}

// Theme returns the resolved theme, if the ref carries one.
func (r ThemeRef) Theme() (*highlight.Theme, bool) {
	return r.resolved, r.resolved != nil
}

// String implements fmt.Stringer.
func (r ThemeRef) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return r.Name()
}

// apply points opts at the referenced theme.
func (r ThemeRef) apply(opts tokenize.Options) tokenize.Options {
	if r.resolved != nil {
		opts.Theme = r.resolved
		opts.ThemeName = ""
		return opts
	}
	opts.Theme = nil
	opts.ThemeName = r.name
	return opts
}

// ThemeRequest asks for one variant: Key labels the variant in the merged
// output, Theme selects its styles.
type ThemeRequest struct {
	Key   string
	Theme ThemeRef
}

// ParseRequest parses "key=theme". A bare "theme" uses the theme name as
// the key.
func ParseRequest(s string) (ThemeRequest, error) {
	key, name, found := strings.Cut(s, "=")
	if !found {
		name = key
	}
	key, name = strings.TrimSpace(key), strings.TrimSpace(name)
	if key == "" || name == "" {
		return ThemeRequest{}, fmt.Errorf("%w: %q", ErrInvalidRequest, s)
	}
	return ThemeRequest{Key: key, Theme: RawName(name)}, nil
}

// Keys returns the request keys in order.
func Keys(requests []ThemeRequest) []string {
	keys := make([]string, len(requests))
	for i, req := range requests {
		keys[i] = req.Key
	}
	return keys
}

// present drops absent refs and checks keys are unique.
func present(requests []ThemeRequest) ([]ThemeRequest, error) {
	out := make([]ThemeRequest, 0, len(requests))
	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		if req.Theme.IsZero() {
			continue
		}
		if seen[req.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, req.Key)
		}
		seen[req.Key] = true
		out = append(out, req)
	}
	if len(out) == 0 {
		return nil, ErrNoThemes
	}
	return out, nil
}
