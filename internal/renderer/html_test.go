package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/tokenize"
	"github.com/dshills/duotone/internal/variant"
)

// sampleLines is two lines merged from a light and a dark theme.
func sampleLines() [][]variant.MergedToken {
	return [][]variant.MergedToken{
		{
			{
				Content: "const",
				Offset:  0,
				Variants: map[string]core.Style{
					"light": core.NewStyle(core.MustParseColor("#0000FF")),
					"dark":  core.NewStyle(core.MustParseColor("#569CD6")).Bold(),
				},
				Explanation: []tokenize.ExplanationItem{{Content: "const", Scope: "keyword", ThemeMatch: "keyword"}},
			},
			{
				Content: " x",
				Offset:  5,
				Variants: map[string]core.Style{
					"light": core.NewStyle(core.MustParseColor("#000000")),
					"dark":  core.NewStyle(core.MustParseColor("#D4D4D4")),
				},
			},
		},
		{
			{
				Content: "<a&b>",
				Offset:  8,
				Variants: map[string]core.Style{
					"light": core.NewStyle(core.MustParseColor("#A31515")),
					"dark":  core.NewStyle(core.MustParseColor("#CE9178")).Italic(),
				},
			},
		},
	}
}

func TestHTML(t *testing.T) {
	got := HTML(sampleLines(), HTMLOptions{
		Keys:         []string{"light", "dark"},
		DefaultColor: "light",
	})

	want := `<pre class="duotone duotone-themes" tabindex="0"><code>` +
		`<span class="line">` +
		`<span style="color:#0000FF;--duotone-dark:#569CD6;--duotone-dark-font-weight:bold">const</span>` +
		`<span style="color:#000000;--duotone-dark:#D4D4D4"> x</span>` +
		`</span>` + "\n" +
		`<span class="line">` +
		`<span style="color:#A31515;--duotone-dark:#CE9178;--duotone-dark-font-style:italic">&lt;a&amp;b&gt;</span>` +
		`</span>` +
		`</code></pre>`

	if got != want {
		t.Errorf("HTML mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestHTML_Options(t *testing.T) {
	themes := highlight.NewThemeRegistry()
	light, _ := themes.Get("light-plus")
	dark, _ := themes.Get("dark-plus")

	tests := []struct {
		name     string
		opts     HTMLOptions
		contains []string
		excludes []string
	}{
		{
			name:     "variables only",
			opts:     HTMLOptions{Keys: []string{"light", "dark"}},
			contains: []string{"--duotone-light:#0000FF;--duotone-dark:#569CD6"},
			excludes: []string{`style="color:`},
		},
		{
			name:     "custom prefix",
			opts:     HTMLOptions{Keys: []string{"light", "dark"}, DefaultColor: "dark", CSSVariablePrefix: "--x-"},
			contains: []string{"--x-light:#0000FF;color:#569CD6;font-weight:bold"},
			excludes: []string{"--duotone-"},
		},
		{
			name: "block colors",
			opts: HTMLOptions{
				Keys:         []string{"light", "dark"},
				DefaultColor: "light",
				Themes:       map[string]*highlight.Theme{"light": light, "dark": dark},
			},
			contains: []string{
				`class="duotone duotone-themes light-plus dark-plus"`,
				"background-color:" + light.Background.ToHex(),
				"--duotone-dark-bg:" + dark.Background.ToHex(),
			},
		},
		{
			name:     "single key",
			opts:     HTMLOptions{Keys: []string{"dark"}, DefaultColor: "dark"},
			contains: []string{`<pre class="duotone" tabindex="0">`, "color:#569CD6;font-weight:bold"},
			excludes: []string{"#0000FF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(sampleLines(), tt.opts)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q\n%s", s, got)
				}
			}
		})
	}
}

func TestHTML_Empty(t *testing.T) {
	got := HTML(nil, HTMLOptions{Keys: []string{"a"}})
	want := `<pre class="duotone" tabindex="0"><code></code></pre>`
	if got != want {
		t.Errorf("HTML(nil) = %q, want %q", got, want)
	}
}

func TestVariableName(t *testing.T) {
	tests := []struct {
		property string
		want     string
	}{
		{"color", "--p-dark"},
		{"background-color", "--p-dark-bg"},
		{"font-style", "--p-dark-font-style"},
		{"text-decoration", "--p-dark-text-decoration"},
	}
	for _, tt := range tests {
		if got := VariableName("--p-", "dark", tt.property); got != tt.want {
			t.Errorf("VariableName(%q) = %q, want %q", tt.property, got, tt.want)
		}
	}
}

func TestVariantCSS(t *testing.T) {
	css := VariantCSS(".dark .duotone", "", "dark")
	for _, s := range []string{
		".dark .duotone,\n.dark .duotone span {",
		"  color: var(--duotone-dark) !important;",
		"  background-color: var(--duotone-dark-bg) !important;",
		"  font-weight: var(--duotone-dark-font-weight) !important;",
	} {
		if !strings.Contains(css, s) {
			t.Errorf("VariantCSS missing %q\n%s", s, css)
		}
	}
}
