package renderer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/variant"
)

// ANSIOptions configures ANSI output.
type ANSIOptions struct {
	// NoColor writes plain text.
	NoColor bool
}

// ANSI writes one variant of merged lines as 24-bit color escape sequences.
func ANSI(w io.Writer, lines [][]variant.MergedToken, key string, opts ANSIOptions) error {
	if !hasVariant(lines, key) {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, key)
	}

	for _, line := range lines {
		for _, tok := range line {
			style := tok.Variants[key]
			if opts.NoColor || style.IsDefault() {
				if _, err := io.WriteString(w, tok.Content); err != nil {
					return err
				}
				continue
			}
			c := ansiColor(style)
			c.EnableColor()
			if _, err := c.Fprint(w, tok.Content); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func hasVariant(lines [][]variant.MergedToken, key string) bool {
	for _, line := range lines {
		if len(line) > 0 {
			_, ok := line[0].Variants[key]
			return ok
		}
	}
	// Nothing to color.
	return true
}

// ansiColor maps a style onto a fatih/color attribute set.
func ansiColor(s core.Style) *color.Color {
	c := color.New()

	switch {
	case s.Foreground.IsDefault():
	case s.Foreground.Indexed:
		c.Add(38, 5, color.Attribute(s.Foreground.R))
	default:
		c.AddRGB(int(s.Foreground.R), int(s.Foreground.G), int(s.Foreground.B))
	}
	switch {
	case s.Background.IsDefault():
	case s.Background.Indexed:
		c.Add(48, 5, color.Attribute(s.Background.R))
	default:
		c.AddBgRGB(int(s.Background.R), int(s.Background.G), int(s.Background.B))
	}

	if s.Attributes.Has(core.AttrBold) {
		c.Add(color.Bold)
	}
	if s.Attributes.Has(core.AttrDim) {
		c.Add(color.Faint)
	}
	if s.Attributes.Has(core.AttrItalic) {
		c.Add(color.Italic)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		c.Add(color.Underline)
	}
	if s.Attributes.Has(core.AttrReverse) {
		c.Add(color.ReverseVideo)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		c.Add(color.CrossedOut)
	}
	return c
}
