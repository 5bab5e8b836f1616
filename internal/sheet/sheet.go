// Package sheet renders a face as a PNG glyph sheet for printing.
package sheet

import (
	"errors"
	"io"

	"github.com/gogpu/gg"

	"fontedit/internal/font"
)

// Options controls the sheet layout.
type Options struct {
	Scale           int // output pixels per glyph pixel
	Columns         int
	Gap             int
	ShowNonExported bool
}

// DefaultOptions returns a layout that is legible when printed.
func DefaultOptions() Options {
	return Options{Scale: 4, Columns: 16, Gap: 4, ShowNonExported: true}
}

var (
	paper     = gg.RGB(1, 1, 1)
	cellColor = gg.RGB(0.93, 0.93, 0.93)
	ink       = gg.RGB(0.05, 0.05, 0.05)
	faintInk  = gg.RGB(0.6, 0.6, 0.6)
)

// Layout returns the sheet size in pixels and the glyph indices that will be
// drawn, in drawing order.
func Layout(face *font.Face, opts Options) (width, height int, glyphs []int) {
	opts = normalize(opts)
	for i, g := range face.Glyphs() {
		if g.Exported || opts.ShowNonExported {
			glyphs = append(glyphs, i)
		}
	}
	cols := opts.Columns
	if len(glyphs) < cols {
		cols = len(glyphs)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(glyphs) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	cw, ch := cellSize(face, opts)
	width = opts.Gap + cols*(cw+opts.Gap)
	height = opts.Gap + rows*(ch+opts.Gap)
	return width, height, glyphs
}

// Render draws every glyph of face on a grid and writes the result as PNG.
// Non-exported glyphs are drawn in a lighter ink.
func Render(w io.Writer, face *font.Face, opts Options) error {
	if face == nil {
		return errors.New("sheet: no face")
	}
	opts = normalize(opts)
	width, height, glyphs := Layout(face, opts)
	cw, ch := cellSize(face, opts)
	cols := (width - opts.Gap) / (cw + opts.Gap)

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(paper)

	scale := float64(opts.Scale)
	for n, index := range glyphs {
		g, err := face.Glyph(index)
		if err != nil {
			return err
		}
		ox := float64(opts.Gap + (n%cols)*(cw+opts.Gap))
		oy := float64(opts.Gap + (n/cols)*(ch+opts.Gap))

		dc.SetColor(cellColor.Color())
		dc.DrawRectangle(ox, oy, float64(cw), float64(ch))
		if err := dc.Fill(); err != nil {
			return err
		}

		if g.Exported {
			dc.SetColor(ink.Color())
		} else {
			dc.SetColor(faintInk.Color())
		}
		size := g.Size()
		inked := false
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				if g.Pixel(x, y) {
					dc.DrawRectangle(ox+float64(x)*scale, oy+float64(y)*scale, scale, scale)
					inked = true
				}
			}
		}
		if !inked {
			continue
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return dc.EncodePNG(w)
}

func cellSize(face *font.Face, opts Options) (int, int) {
	s := face.Size()
	return s.Width * opts.Scale, s.Height * opts.Scale
}

func normalize(o Options) Options {
	d := DefaultOptions()
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.Gap < 0 {
		o.Gap = d.Gap
	}
	return o
}
