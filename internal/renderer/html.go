package renderer

import (
	"html"
	"strings"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/variant"
)

// DefaultCSSVariablePrefix prefixes variant custom properties.
const DefaultCSSVariablePrefix = "--duotone-"

// HTMLOptions configures HTML output.
type HTMLOptions struct {
	// Keys lists the variant keys in output order.
	Keys []string

	// DefaultColor is the variant emitted as plain declarations.
	// Empty emits only custom properties.
	DefaultColor string

	// CSSVariablePrefix defaults to DefaultCSSVariablePrefix.
	CSSVariablePrefix string

	// Themes maps keys to their themes, for the block colors.
	// Keys without a theme get no block colors.
	Themes map[string]*highlight.Theme
}

func (o HTMLOptions) prefix() string {
	if o.CSSVariablePrefix == "" {
		return DefaultCSSVariablePrefix
	}
	return o.CSSVariablePrefix
}

// HTML renders merged lines as a <pre> block.
func HTML(lines [][]variant.MergedToken, opts HTMLOptions) string {
	var b strings.Builder

	b.WriteString(`<pre class="`)
	b.WriteString(html.EscapeString(preClass(opts)))
	b.WriteString(`"`)
	if style := blockStyle(opts); style != "" {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(style))
		b.WriteString(`"`)
	}
	b.WriteString(` tabindex="0"><code>`)

	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(`<span class="line">`)
		for _, tok := range line {
			b.WriteString(`<span style="`)
			b.WriteString(html.EscapeString(TokenStyle(tok, opts)))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(tok.Content))
			b.WriteString(`</span>`)
		}
		b.WriteString(`</span>`)
	}

	b.WriteString(`</code></pre>`)
	return b.String()
}

func preClass(opts HTMLOptions) string {
	classes := []string{"duotone"}
	if len(opts.Keys) > 1 {
		classes = append(classes, "duotone-themes")
	}
	for _, key := range opts.Keys {
		if theme, ok := opts.Themes[key]; ok && theme != nil {
			classes = append(classes, theme.Name)
		}
	}
	return strings.Join(classes, " ")
}

func blockStyle(opts HTMLOptions) string {
	var decls []string
	for _, key := range opts.Keys {
		theme, ok := opts.Themes[key]
		if !ok || theme == nil {
			continue
		}
		block := core.NewStyle(theme.Foreground).WithBackground(theme.Background)
		decls = append(decls, declarations(block, key, opts)...)
	}
	return strings.Join(decls, ";")
}

// TokenStyle returns the inline style attribute value for one token.
func TokenStyle(tok variant.MergedToken, opts HTMLOptions) string {
	var decls []string
	for _, key := range opts.Keys {
		style, ok := tok.Variants[key]
		if !ok {
			continue
		}
		decls = append(decls, declarations(style, key, opts)...)
	}
	return strings.Join(decls, ";")
}

// declarations emits style for key, either plain or as custom properties.
func declarations(style core.Style, key string, opts HTMLOptions) []string {
	css := style.CSS()
	out := make([]string, 0, len(css))
	for _, d := range css {
		if key == opts.DefaultColor {
			out = append(out, d.Property+":"+d.Value)
			continue
		}
		out = append(out, VariableName(opts.prefix(), key, d.Property)+":"+d.Value)
	}
	return out
}

// VariableName names the custom property carrying property for key.
// color maps to the bare key and background-color to "-bg".
func VariableName(prefix, key, property string) string {
	switch property {
	case "color":
		return prefix + key
	case "background-color":
		return prefix + key + "-bg"
	default:
		return prefix + key + "-" + property
	}
}

// VariantCSS returns a rule that switches a rendered block to key's
// colors, for use inside a media query or a theme selector.
func VariantCSS(selector, prefix, key string) string {
	if prefix == "" {
		prefix = DefaultCSSVariablePrefix
	}
	props := []string{"color", "background-color", "font-style", "font-weight", "text-decoration"}

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(",\n")
	b.WriteString(selector)
	b.WriteString(" span {\n")
	for _, p := range props {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString(": var(")
		b.WriteString(VariableName(prefix, key, p))
		b.WriteString(") !important;\n")
	}
	b.WriteString("}\n")
	return b.String()
}
