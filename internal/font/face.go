package font

import "fmt"

// Face is an ordered glyph collection sharing one cell size. Glyph order is
// both the display order and the export order.
type Face struct {
	Name      string
	PointSize int

	size   Size
	glyphs []Glyph
}

// NewFace returns an empty face with the given cell size.
func NewFace(name string, pointSize int, size Size) *Face {
	return &Face{Name: name, PointSize: pointSize, size: size}
}

func (f *Face) Size() Size     { return f.size }
func (f *Face) NumGlyphs() int { return len(f.glyphs) }

func (f *Face) checkIndex(index int) error {
	if index < 0 || index >= len(f.glyphs) {
		return fmt.Errorf("%w: %d (face has %d glyphs)", ErrIndexOutOfRange, index, len(f.glyphs))
	}
	return nil
}

func (f *Face) checkSize(g Glyph) error {
	if g.size != f.size {
		return fmt.Errorf("%w: glyph is %s, face is %s", ErrDimensionMismatch, g.size, f.size)
	}
	return nil
}

// Glyph returns a copy of the glyph at index.
func (f *Face) Glyph(index int) (Glyph, error) {
	if err := f.checkIndex(index); err != nil {
		return Glyph{}, err
	}
	return f.glyphs[index].Clone(), nil
}

// Glyphs returns copies of all glyphs in order.
func (f *Face) Glyphs() []Glyph {
	out := make([]Glyph, len(f.glyphs))
	for i, g := range f.glyphs {
		out[i] = g.Clone()
	}
	return out
}

// AppendGlyph adds g at the end of the face.
func (f *Face) AppendGlyph(g Glyph) error {
	if err := f.checkSize(g); err != nil {
		return err
	}
	f.glyphs = append(f.glyphs, g.Clone())
	return nil
}

// DeleteGlyph removes the glyph at index. Glyphs after it move down by one.
func (f *Face) DeleteGlyph(index int) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	f.glyphs = append(f.glyphs[:index], f.glyphs[index+1:]...)
	return nil
}

// SetGlyph replaces the glyph at index.
func (f *Face) SetGlyph(index int, g Glyph) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	if err := f.checkSize(g); err != nil {
		return err
	}
	f.glyphs[index] = g.Clone()
	return nil
}

// ResetGlyph clears the bitmap at index and keeps its export flag.
func (f *Face) ResetGlyph(index int) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	f.glyphs[index].Clear()
	return nil
}

func (f *Face) SetGlyphExported(index int, exported bool) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	f.glyphs[index].Exported = exported
	return nil
}

// ApplyChange applies c to the glyph at index, all or nothing.
func (f *Face) ApplyChange(index int, c BatchPixelChange) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	g, err := c.Apply(f.glyphs[index])
	if err != nil {
		return err
	}
	f.glyphs[index] = g
	return nil
}

// NumExported counts glyphs with the export flag set.
func (f *Face) NumExported() int {
	n := 0
	for _, g := range f.glyphs {
		if g.Exported {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, used for snapshots handed to other goroutines.
func (f *Face) Clone() *Face {
	if f == nil {
		return nil
	}
	c := &Face{Name: f.Name, PointSize: f.PointSize, size: f.size}
	c.glyphs = f.Glyphs()
	return c
}

// Equal compares metadata and every glyph.
func (f *Face) Equal(o *Face) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Name != o.Name || f.PointSize != o.PointSize || f.size != o.size || len(f.glyphs) != len(o.glyphs) {
		return false
	}
	for i := range f.glyphs {
		if !f.glyphs[i].Equal(o.glyphs[i]) {
			return false
		}
	}
	return true
}
