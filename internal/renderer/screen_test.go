package renderer

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/variant"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellAt(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r, style
}

func TestConvertStyle(t *testing.T) {
	tests := []struct {
		name  string
		style core.Style
		fg    tcell.Color
		bg    tcell.Color
		attrs tcell.AttrMask
	}{
		{
			name:  "default",
			style: core.DefaultStyle(),
			fg:    tcell.ColorDefault,
			bg:    tcell.ColorDefault,
		},
		{
			name:  "rgb bold",
			style: core.NewStyle(core.ColorFromRGB(1, 2, 3)).Bold(),
			fg:    tcell.NewRGBColor(1, 2, 3),
			bg:    tcell.ColorDefault,
			attrs: tcell.AttrBold,
		},
		{
			name:  "indexed italic underline",
			style: core.NewStyle(core.ColorFromIndex(9)).WithBackground(core.ColorFromRGB(0, 0, 0)).Italic().Underline(),
			fg:    tcell.PaletteColor(9),
			bg:    tcell.NewRGBColor(0, 0, 0),
			attrs: tcell.AttrItalic | tcell.AttrUnderline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, bg, attrs := convertStyle(tt.style).Decompose()
			if fg != tt.fg || bg != tt.bg {
				t.Errorf("colors = %v/%v, want %v/%v", fg, bg, tt.fg, tt.bg)
			}
			if attrs != tt.attrs {
				t.Errorf("attrs = %v, want %v", attrs, tt.attrs)
			}
		})
	}
}

func TestPaint(t *testing.T) {
	s := newTestScreen(t, 20, 4)
	dark, _ := highlight.NewThemeRegistry().Get("dark-plus")

	n, err := Paint(s, sampleLines(), "dark", dark, PaintOptions{})
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if n != 2 {
		t.Errorf("painted %d rows, want 2", n)
	}

	r, style := cellAt(s, 0, 0)
	if r != 'c' {
		t.Errorf("cell(0,0) = %q, want 'c'", r)
	}
	fg, bg, attrs := style.Decompose()
	if fg != tcell.NewRGBColor(0x56, 0x9C, 0xD6) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.NewRGBColor(30, 30, 30) {
		t.Errorf("bg = %v, want theme background", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("want bold")
	}

	if r, _ := cellAt(s, 0, 1); r != '<' {
		t.Errorf("cell(0,1) = %q, want '<'", r)
	}

	// Rows past the text are filled with the theme background.
	r, style = cellAt(s, 5, 3)
	_, bg, _ = style.Decompose()
	if r != ' ' || bg != tcell.NewRGBColor(30, 30, 30) {
		t.Errorf("cell(5,3) = %q bg %v", r, bg)
	}
}

func TestPaint_WideAndTabs(t *testing.T) {
	s := newTestScreen(t, 6, 2)
	style := map[string]core.Style{"k": core.NewStyle(core.ColorWhite)}
	lines := [][]variant.MergedToken{
		{{Content: "日本x", Variants: style}},
		{{Content: "\tz日", Variants: style}},
	}

	if _, err := Paint(s, lines, "k", nil, PaintOptions{}); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '日'},
		{2, 0, '本'},
		{4, 0, 'x'},
		{0, 1, ' '},
		{4, 1, 'z'},
		// 日 would overflow the row and is dropped.
		{5, 1, ' '},
	}
	for _, tt := range tests {
		if r, _ := cellAt(s, tt.x, tt.y); r != tt.want {
			t.Errorf("cell(%d,%d) = %q, want %q", tt.x, tt.y, r, tt.want)
		}
	}
}

func TestPaint_TopLineAndErrors(t *testing.T) {
	s := newTestScreen(t, 10, 3)

	n, err := Paint(s, sampleLines(), "light", nil, PaintOptions{TopLine: 1, Rows: 2})
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if n != 1 {
		t.Errorf("painted %d rows, want 1", n)
	}
	if r, _ := cellAt(s, 0, 0); r != '<' {
		t.Errorf("cell(0,0) = %q, want '<'", r)
	}

	if _, err := Paint(s, sampleLines(), "sepia", nil, PaintOptions{}); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestViewer(t *testing.T) {
	s := newTestScreen(t, 30, 3)
	lines := append(sampleLines(), sampleLines()...)

	v, err := NewViewer(s, lines, []string{"light", "dark"}, nil, "dark")
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	if v.Key() != "dark" {
		t.Errorf("Key = %q, want dark", v.Key())
	}
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r, _ := cellAt(s, 1, 2); r != 'd' {
		t.Errorf("status row starts with %q, want the key", r)
	}

	steps := []struct {
		ev      *tcell.EventKey
		cont    bool
		wantKey string
		wantTop int
	}{
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), true, "light", 0},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), true, "dark", 0},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), true, "light", 0},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), true, "light", 1},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), true, "light", 2},
		{tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), true, "light", 3},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), true, "light", 3},
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), true, "light", 2},
		{tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), true, "light", 0},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, "light", 0},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, "light", 0},
	}
	for i, step := range steps {
		if got := v.HandleKey(step.ev); got != step.cont {
			t.Errorf("step %d: continue = %v, want %v", i, got, step.cont)
		}
		if v.Key() != step.wantKey || v.Top() != step.wantTop {
			t.Errorf("step %d: key %q top %d, want %q %d", i, v.Key(), v.Top(), step.wantKey, step.wantTop)
		}
	}
}

func TestViewer_Run(t *testing.T) {
	s := newTestScreen(t, 30, 3)
	v, err := NewViewer(s, sampleLines(), []string{"light", "dark"}, nil, "")
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}

	s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Key() != "dark" {
		t.Errorf("Key = %q, want dark", v.Key())
	}
}

func TestNewViewer_Errors(t *testing.T) {
	s := newTestScreen(t, 10, 2)
	if _, err := NewViewer(s, nil, nil, nil, ""); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("no keys: %v", err)
	}
	if _, err := NewViewer(s, nil, []string{"a"}, nil, "b"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("unknown start: %v", err)
	}
}
