package loader

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
)

// Cache timings for parsed theme files.
const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// ScopeRule styles one scope.
type ScopeRule struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	FontStyle  string `toml:"font_style" yaml:"font_style"`
}

// ThemeFile is the on-disk form of a theme.
type ThemeFile struct {
	Name        string               `toml:"name" yaml:"name"`
	DisplayName string               `toml:"display_name" yaml:"display_name"`
	Type        string               `toml:"type" yaml:"type"`
	Extends     string               `toml:"extends" yaml:"extends"`
	Foreground  string               `toml:"foreground" yaml:"foreground"`
	Background  string               `toml:"background" yaml:"background"`
	Scopes      map[string]ScopeRule `toml:"scopes" yaml:"scopes"`

	// Path is the file the theme was read from.
	Path string `toml:"-" yaml:"-"`
}

// Theme converts the file to a theme. When Extends is set, base looks up
// the theme to start from; the file's colors and scopes override it.
func (f *ThemeFile) Theme(base func(name string) (*highlight.Theme, bool)) (*highlight.Theme, error) {
	theme := &highlight.Theme{
		Name:        f.Name,
		DisplayName: f.DisplayName,
		Type:        highlight.ThemeType(strings.ToLower(f.Type)),
		Foreground:  core.ColorDefault,
		Background:  core.ColorDefault,
		TokenStyles: make(map[highlight.TokenType]core.Style),
		ScopeStyles: make(map[string]core.Style),
	}

	if f.Extends != "" {
		parent, ok := base(f.Extends)
		if !ok {
			return nil, fmt.Errorf("%w: %q extends %q", ErrUnknownBase, f.Name, f.Extends)
		}
		if theme.Type == "" {
			theme.Type = parent.Type
		}
		theme.Foreground = parent.Foreground
		theme.Background = parent.Background
		maps.Copy(theme.TokenStyles, parent.TokenStyles)
		maps.Copy(theme.ScopeStyles, parent.ScopeStyles)
	}
	if theme.DisplayName == "" {
		theme.DisplayName = f.Name
	}

	var err error
	if f.Foreground != "" {
		if theme.Foreground, err = core.ParseColor(f.Foreground); err != nil {
			return nil, fmt.Errorf("theme %q foreground: %w", f.Name, err)
		}
	}
	if f.Background != "" {
		if theme.Background, err = core.ParseColor(f.Background); err != nil {
			return nil, fmt.Errorf("theme %q background: %w", f.Name, err)
		}
	}

	for scope, rule := range f.Scopes {
		style, err := rule.style()
		if err != nil {
			return nil, fmt.Errorf("theme %q scope %q: %w", f.Name, scope, err)
		}
		theme.ScopeStyles[scope] = style
	}

	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return theme, nil
}

func (r ScopeRule) style() (core.Style, error) {
	fg, err := core.ParseColor(r.Foreground)
	if err != nil {
		return core.Style{}, err
	}
	bg, err := core.ParseColor(r.Background)
	if err != nil {
		return core.Style{}, err
	}
	attrs, err := core.ParseFontStyle(r.FontStyle)
	if err != nil {
		return core.Style{}, err
	}
	return core.Style{Foreground: fg, Background: bg, Attributes: attrs}, nil
}

// ThemeLoader reads and caches theme files.
type ThemeLoader struct {
	fs    FileSystem
	cache *gocache.Cache
}

// NewThemeLoader creates a loader reading from the OS file system.
func NewThemeLoader() *ThemeLoader {
	return NewThemeLoaderWithFS(DefaultFS())
}

// NewThemeLoaderWithFS creates a loader with a custom file system.
func NewThemeLoaderWithFS(fsys FileSystem) *ThemeLoader {
	return &ThemeLoader{
		fs:    fsys,
		cache: gocache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

// IsThemeFile reports whether path has a theme file extension.
func IsThemeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFile reads the theme file at path, from cache when possible.
func (l *ThemeLoader) LoadFile(path string) (*ThemeFile, error) {
	if cached, ok := l.cache.Get(path); ok {
		if f, ok := cached.(*ThemeFile); ok {
			return f, nil
		}
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}

	f, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	l.cache.Set(path, f, gocache.DefaultExpiration)
	return f, nil
}

// Invalidate drops path from the cache.
func (l *ThemeLoader) Invalidate(path string) {
	l.cache.Delete(path)
}

// Cached returns the number of cached files.
func (l *ThemeLoader) Cached() int {
	return l.cache.ItemCount()
}

// LoadDir reads every theme file directly inside dir, in name order.
func (l *ThemeLoader) LoadDir(dir string) ([]*ThemeFile, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading theme dir %s: %w", dir, err)
	}

	var files []*ThemeFile
	for _, entry := range entries {
		if entry.IsDir() || !IsThemeFile(entry.Name()) {
			continue
		}
		f, err := l.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Register converts files to themes and adds them to reg. A file may
// extend a built-in theme or another file in the set.
func Register(reg *highlight.ThemeRegistry, files []*ThemeFile) error {
	pending := files
	for len(pending) > 0 {
		var next []*ThemeFile
		var lastErr error
		for _, f := range pending {
			theme, err := f.Theme(reg.Get)
			if errors.Is(err, ErrUnknownBase) {
				next = append(next, f)
				lastErr = err
				continue
			}
			if err != nil {
				return fmt.Errorf("%s: %w", f.Path, err)
			}
			if err := reg.Register(theme); err != nil {
				return fmt.Errorf("%s: %w", f.Path, err)
			}
		}
		if len(next) == len(pending) {
			return lastErr
		}
		pending = next
	}
	return nil
}

func parse(path string, data []byte) (*ThemeFile, error) {
	var f ThemeFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return &f, nil
}
