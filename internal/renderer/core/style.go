package core

import (
	"fmt"
	"strings"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
)

// fontStyleNames lists attributes in the order FontStyle reports them.
var fontStyleNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrReverse, "reverse"},
	{AttrStrikethrough, "strikethrough"},
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ParseFontStyle parses a space separated font style list such as
// "bold italic". Empty input yields AttrNone.
func ParseFontStyle(s string) (Attribute, error) {
	attrs := AttrNone
	for _, word := range strings.Fields(strings.ToLower(s)) {
		switch word {
		case "none", "normal":
		case "line-through", "strike":
			attrs |= AttrStrikethrough
		default:
			found := false
			for _, fs := range fontStyleNames {
				if fs.name == word {
					attrs |= fs.attr
					found = true
					break
				}
			}
			if !found {
				return AttrNone, fmt.Errorf("%w: %q", ErrInvalidFontStyle, word)
			}
		}
	}
	return attrs, nil
}

// Style is the style-attribute bag carried by a themed token.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Strikethrough returns a new style with strikethrough attribute added.
func (s Style) Strikethrough() Style {
	s.Attributes |= AttrStrikethrough
	return s
}

// Merge overlays other onto s. Default colors in other keep s's colors;
// attributes are combined.
func (s Style) Merge(other Style) Style {
	result := s

	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}
	result.Attributes |= other.Attributes

	return result
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() &&
		s.Background.IsDefault() &&
		s.Attributes == AttrNone
}

// FontStyle returns the attributes as a space separated list, the inverse
// of ParseFontStyle.
func (s Style) FontStyle() string {
	var parts []string
	for _, fs := range fontStyleNames {
		if s.Attributes.Has(fs.attr) {
			parts = append(parts, fs.name)
		}
	}
	return strings.Join(parts, " ")
}

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// CSS returns the CSS declarations for the style in a stable order:
// color, background-color, font-style, font-weight, text-decoration.
// Default colors and indexed colors are omitted.
func (s Style) CSS() []Declaration {
	var decls []Declaration
	if hex := s.Foreground.ToHex(); hex != "" {
		decls = append(decls, Declaration{"color", hex})
	}
	if hex := s.Background.ToHex(); hex != "" {
		decls = append(decls, Declaration{"background-color", hex})
	}
	if s.Attributes.Has(AttrItalic) {
		decls = append(decls, Declaration{"font-style", "italic"})
	}
	if s.Attributes.Has(AttrBold) {
		decls = append(decls, Declaration{"font-weight", "bold"})
	}
	var deco []string
	if s.Attributes.Has(AttrUnderline) {
		deco = append(deco, "underline")
	}
	if s.Attributes.Has(AttrStrikethrough) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		decls = append(decls, Declaration{"text-decoration", strings.Join(deco, " ")})
	}
	return decls
}
