package highlight

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/duotone/internal/renderer/core"
)

// ThemeType tells renderers whether a theme is meant for light or dark
// backgrounds.
type ThemeType string

// Theme types.
const (
	ThemeDark  ThemeType = "dark"
	ThemeLight ThemeType = "light"
)

// Theme defines colors and styles for syntax highlighting.
type Theme struct {
	// Name is the canonical, registry-unique identifier, e.g. "dark-plus".
	Name string

	// DisplayName is the human readable name.
	DisplayName string

	// Type is light or dark.
	Type ThemeType

	// Background is the editor background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// TokenStyles maps token types to their styles.
	TokenStyles map[TokenType]core.Style

	// ScopeStyles maps scope strings to styles (for custom scopes).
	// Scope styles take precedence over token styles at the same level.
	ScopeStyles map[string]core.Style
}

// DefaultStyle returns the style of unclassified text.
func (t *Theme) DefaultStyle() core.Style {
	return core.NewStyle(t.Foreground)
}

// Resolve returns the style for a token type and the scope whose rule
// provided it. The type's scope is tried first, then each parent scope.
// When no rule matches, the theme's default style and "" are returned.
// Default colors in a matched rule fall back to the theme foreground.
func (t *Theme) Resolve(tokenType TokenType) (core.Style, string) {
	base := t.DefaultStyle()
	for cur := tokenType; ; cur = cur.Parent() {
		scope := cur.Scope()
		if style, ok := t.ScopeStyles[scope]; ok {
			return base.Merge(style), scope
		}
		if style, ok := t.TokenStyles[cur]; ok {
			return base.Merge(style), scope
		}
		if cur == TokenNone {
			return base, ""
		}
	}
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	style, _ := t.Resolve(tokenType)
	return style
}

// StyleForScope returns the style for a scope string such as
// "keyword.control.go". Custom scope rules are matched on the scope and its
// parents before falling back to the closest known token type.
func (t *Theme) StyleForScope(scope string) core.Style {
	for s := scope; s != ""; {
		if style, ok := t.ScopeStyles[s]; ok {
			return t.DefaultStyle().Merge(style)
		}
		idx := strings.LastIndexByte(s, '.')
		if idx < 0 {
			break
		}
		s = s[:idx]
	}
	return t.StyleForToken(TokenTypeFromString(scope))
}

// Validate reports whether the theme can be registered.
func (t *Theme) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil theme", ErrInvalidTheme)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: theme name is required", ErrInvalidTheme)
	}
	switch t.Type {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: theme %q has type %q (must be light or dark)", ErrInvalidTheme, t.Name, t.Type)
	}
	return nil
}

// ThemeRegistry holds available themes by canonical name.
type ThemeRegistry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewThemeRegistry creates a new theme registry with built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{themes: make(map[string]*Theme)}
	for _, theme := range BuiltinThemes() {
		r.themes[theme.Name] = theme
	}
	return r
}

// Register adds or replaces a theme.
func (r *ThemeRegistry) Register(theme *Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[theme.Name] = theme
	return nil
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	return t, ok
}

// Lookup is Get with an error naming the missing theme.
func (r *ThemeRegistry) Lookup(name string) (*Theme, error) {
	if t, ok := r.Get(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
}

// Names returns all registered theme names, sorted.
func (r *ThemeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
