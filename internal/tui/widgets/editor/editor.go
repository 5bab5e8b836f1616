// Package editor renders a glyph as an enlarged pixel grid.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fontedit/internal/font"
	"fontedit/internal/tui/util"
)

// Pen describes the paint stroke in progress, if any.
type Pen int

const (
	PenUp Pen = iota
	PenDraw
	PenErase
)

func (p Pen) String() string {
	switch p {
	case PenDraw:
		return "Pen: draw"
	case PenErase:
		return "Pen: erase"
	default:
		return "Pen: up"
	}
}

type Editor struct {
	NoColor bool
}

func NewEditor(noColor bool) Editor { return Editor{NoColor: util.NoColor(noColor)} }

// View draws g two columns per pixel with the cursor cell marked. pending
// holds pixels of an uncommitted stroke, drawn with the stroke's value.
func (e Editor) View(g font.Glyph, cursor font.Point, focused bool, pen Pen, pending map[font.Point]bool) string {
	size := g.Size()
	p := util.DefaultPalette()
	on := lipgloss.NewStyle().Background(p.Ink)
	off := lipgloss.NewStyle().Background(p.Paper)
	cur := lipgloss.NewStyle().Background(p.Primary)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  x:%d y:%d\n", size, pen, cursor.X, cursor.Y)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			pt := font.Point{X: x, Y: y}
			set := g.Pixel(x, y)
			if v, ok := pending[pt]; ok {
				set = v
			}
			isCursor := focused && pt == cursor
			if e.NoColor {
				b.WriteString(asciiCell(set, isCursor))
				continue
			}
			switch {
			case isCursor:
				b.WriteString(cur.Render(cellText(set)))
			case set:
				b.WriteString(on.Render("  "))
			default:
				b.WriteString(off.Render("  "))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func asciiCell(set, cursor bool) string {
	switch {
	case cursor && set:
		return "[]"
	case cursor:
		return "()"
	case set:
		return "##"
	default:
		return ". "
	}
}

func cellText(set bool) string {
	if set {
		return "##"
	}
	return "  "
}
