package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Renderer draws game screens onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Size returns the screen size in cells.
func (r *Renderer) Size() (int, int) { return r.screen.Size() }

type cell struct {
	main  rune
	comb  []rune
	width int
}

// cells splits text into terminal cells. Zero-width runes (variation
// selectors, joiners) attach to the preceding cell; an emoji presentation
// selector widens its base to two columns.
func cells(text string) []cell {
	var out []cell
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 && len(out) > 0 {
			last := &out[len(out)-1]
			last.comb = append(last.comb, ch)
			if ch == '\uFE0F' {
				last.width = 2
			}
			continue
		}
		if w == 0 {
			w = 1
		}
		out = append(out, cell{main: ch, width: w})
	}
	return out
}

// TextWidth returns the number of columns text occupies.
func TextWidth(text string) int {
	n := 0
	for _, c := range cells(text) {
		n += c.width
	}
	return n
}

// drawText writes text at (x, y), stopping before column limit (limit <= 0
// means the screen edge). Returns the column after the last cell drawn.
func (r *Renderer) drawText(x, y, limit int, text string, style tcell.Style) int {
	if limit <= 0 {
		limit, _ = r.screen.Size()
	}
	col := x
	for _, c := range cells(text) {
		if col+c.width > limit {
			break
		}
		r.screen.SetContent(col, y, c.main, c.comb, style)
		if c.width == 2 {
			// Fill the second column to avoid rendering artifacts.
			r.screen.SetContent(col+1, y, ' ', nil, style)
		}
		col += c.width
	}
	return col
}

// centerText draws text horizontally centered on row y.
func (r *Renderer) centerText(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	x := (w - TextWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, 0, text, style)
}

func (r *Renderer) drawHLine(x0, x1, y int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(color)
	for x := x0; x < x1; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawBar draws a width-column gauge filled to pct percent.
func (r *Renderer) drawBar(x, y, width, pct int, fill tcell.Color) {
	pct = min(max(pct, 0), 100)
	filled := width * pct / 100
	on := tcell.StyleDefault.Foreground(fill)
	off := tcell.StyleDefault.Foreground(ColorBorder)
	for i := 0; i < width; i++ {
		if i < filled {
			r.screen.SetContent(x+i, y, '█', nil, on)
		} else {
			r.screen.SetContent(x+i, y, '░', nil, off)
		}
	}
}
