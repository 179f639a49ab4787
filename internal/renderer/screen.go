package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/duotone/internal/renderer/core"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/variant"
)

// DefaultTabWidth is the tab stop distance used by Paint.
const DefaultTabWidth = 4

// PaintOptions positions a Paint call.
type PaintOptions struct {
	// TopLine is the first source line shown.
	TopLine int

	// Rows limits the painted rows. Zero paints to the bottom of the screen.
	Rows int

	// TabWidth defaults to DefaultTabWidth.
	TabWidth int
}

// Paint draws one variant of lines onto screen, filling the background
// with the theme's. It returns the number of rows painted.
func Paint(screen tcell.Screen, lines [][]variant.MergedToken, key string, theme *highlight.Theme, opts PaintOptions) (int, error) {
	if !hasVariant(lines, key) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, key)
	}
	tabWidth := opts.TabWidth
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	width, height := screen.Size()
	rows := height
	if opts.Rows > 0 && opts.Rows < rows {
		rows = opts.Rows
	}

	base := core.DefaultStyle()
	if theme != nil {
		base = core.NewStyle(theme.Foreground).WithBackground(theme.Background)
	}
	fill := convertStyle(base)

	painted := 0
	for row := 0; row < rows; row++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, row, ' ', nil, fill)
		}
		idx := opts.TopLine + row
		if idx < 0 || idx >= len(lines) {
			continue
		}
		paintLine(screen, row, width, tabWidth, lines[idx], key, base)
		painted++
	}
	return painted, nil
}

func paintLine(screen tcell.Screen, row, width, tabWidth int, line []variant.MergedToken, key string, base core.Style) {
	col := 0
	for _, tok := range line {
		style := convertStyle(base.Merge(tok.Variants[key]))
		for _, r := range tok.Content {
			if col >= width {
				return
			}
			if r == '\t' {
				next := col + tabWidth - col%tabWidth
				for ; col < next && col < width; col++ {
					screen.SetContent(col, row, ' ', nil, style)
				}
				continue
			}
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if col+w > width {
				return
			}
			screen.SetContent(col, row, r, nil, style)
			col += w
		}
	}
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Viewer is an interactive preview of merged lines. Tab cycles the
// variant, arrows and page keys scroll, q or Esc quits.
type Viewer struct {
	screen tcell.Screen
	lines  [][]variant.MergedToken
	keys   []string
	themes map[string]*highlight.Theme

	current int
	top     int
}

// NewViewer creates a viewer showing keys in order, starting at start.
func NewViewer(screen tcell.Screen, lines [][]variant.MergedToken, keys []string, themes map[string]*highlight.Theme, start string) (*Viewer, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no variants", ErrUnknownVariant)
	}
	v := &Viewer{screen: screen, lines: lines, keys: keys, themes: themes}
	if start != "" {
		v.current = -1
		for i, k := range keys {
			if k == start {
				v.current = i
			}
		}
		if v.current < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, start)
		}
	}
	return v, nil
}

// Key returns the variant on screen.
func (v *Viewer) Key() string {
	return v.keys[v.current]
}

// Top returns the first visible line.
func (v *Viewer) Top() int {
	return v.top
}

// Draw paints the current variant and a status row.
func (v *Viewer) Draw() error {
	width, height := v.screen.Size()
	body := max(height-1, 0)

	key := v.Key()
	if _, err := Paint(v.screen, v.lines, key, v.themes[key], PaintOptions{TopLine: v.top, Rows: body}); err != nil {
		return err
	}

	status := fmt.Sprintf(" %s  %d/%d  [tab] variant  [q] quit", key, min(v.top+1, len(v.lines)), len(v.lines))
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		v.screen.SetContent(col, height-1, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, height-1, ' ', nil, style)
	}

	v.screen.Show()
	return nil
}

// HandleKey applies a key press. It reports false when the viewer should close.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	_, height := v.screen.Size()
	page := max(height-1, 1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.current = (v.current + 1) % len(v.keys)
	case tcell.KeyBacktab:
		v.current = (v.current + len(v.keys) - 1) % len(v.keys)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyPgDn:
		v.scroll(page)
	case tcell.KeyPgUp:
		v.scroll(-page)
	case tcell.KeyHome:
		v.top = 0
	case tcell.KeyEnd:
		v.scroll(len(v.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		}
	}
	return true
}

func (v *Viewer) scroll(delta int) {
	v.top = max(min(v.top+delta, len(v.lines)-1), 0)
}

// Run draws and handles events until the user quits.
func (v *Viewer) Run() error {
	if err := v.Draw(); err != nil {
		return err
	}
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return nil
			}
		}
		if err := v.Draw(); err != nil {
			return err
		}
	}
}
