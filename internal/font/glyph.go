package font

import "fmt"

// NoCode marks a glyph that is not associated with a character.
const NoCode rune = -1

// Size is a glyph cell size in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// MaxCellSide bounds each side of a cell read from a document or the
// clipboard.
const MaxCellSide = 4096

// Valid reports whether both sides are in [1, MaxCellSide].
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Width <= MaxCellSide && s.Height <= MaxCellSide
}

// Contains reports whether p lies within the cell.
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// Point is a pixel coordinate within a glyph cell, origin at top-left.
type Point struct {
	X, Y int
}

// Glyph is a single bitmap with an export flag. The bitmap dimensions are
// fixed when the glyph is created; the pixels are mutable.
type Glyph struct {
	size   Size
	pixels []bool // row-major

	Exported bool
	Code     rune
}

// NewGlyph returns an empty, exported glyph of the given size.
func NewGlyph(size Size) Glyph {
	return Glyph{
		size:     size,
		pixels:   make([]bool, size.Width*size.Height),
		Exported: true,
		Code:     NoCode,
	}
}

func (g Glyph) Size() Size { return g.size }

// Pixel returns the bit at (x, y). Out of range coordinates read as false.
func (g Glyph) Pixel(x, y int) bool {
	if !g.size.Contains(Point{x, y}) {
		return false
	}
	return g.pixels[y*g.size.Width+x]
}

// SetPixel writes the bit at (x, y).
func (g *Glyph) SetPixel(x, y int, v bool) error {
	if !g.size.Contains(Point{x, y}) {
		return fmt.Errorf("%w: (%d,%d) in %s cell", ErrCoordinateOutOfRange, x, y, g.size)
	}
	g.pixels[y*g.size.Width+x] = v
	return nil
}

// Row returns a copy of row y.
func (g Glyph) Row(y int) []bool {
	row := make([]bool, g.size.Width)
	if y < 0 || y >= g.size.Height {
		return row
	}
	copy(row, g.pixels[y*g.size.Width:(y+1)*g.size.Width])
	return row
}

// Clear sets every pixel to zero.
func (g *Glyph) Clear() {
	for i := range g.pixels {
		g.pixels[i] = false
	}
}

// IsEmpty reports whether no pixel is set.
func (g Glyph) IsEmpty() bool {
	for _, p := range g.pixels {
		if p {
			return false
		}
	}
	return true
}

// Clone returns a deep copy that shares no pixel storage with g.
func (g Glyph) Clone() Glyph {
	c := g
	c.pixels = append([]bool(nil), g.pixels...)
	return c
}

// Equal compares size, pixels, export flag and character code.
func (g Glyph) Equal(o Glyph) bool {
	if g.size != o.size || g.Exported != o.Exported || g.Code != o.Code {
		return false
	}
	for i := range g.pixels {
		if g.pixels[i] != o.pixels[i] {
			return false
		}
	}
	return true
}
