package font

import (
	"fmt"
	"sort"
)

// ChangeKind selects how a BatchPixelChange is applied.
type ChangeKind int

const (
	// Set turns the listed pixels on.
	Set ChangeKind = iota
	// Clear turns the listed pixels off.
	Clear
	// Toggle flips the listed pixels.
	Toggle
	// PaintStroke writes the bit carried with each listed pixel.
	PaintStroke
)

func (k ChangeKind) String() string {
	switch k {
	case Set:
		return "set"
	case Clear:
		return "clear"
	case Toggle:
		return "toggle"
	case PaintStroke:
		return "paint"
	default:
		return "?"
	}
}

// BatchPixelChange is a coalesced set of pixel edits for one glyph. It is
// built by the edit surface, applied once and discarded.
type BatchPixelChange struct {
	Kind   ChangeKind
	Pixels map[Point]bool
}

// NewBatchPixelChange returns an empty change of the given kind.
func NewBatchPixelChange(kind ChangeKind) BatchPixelChange {
	return BatchPixelChange{Kind: kind, Pixels: map[Point]bool{}}
}

// Add records a pixel. The value only matters for PaintStroke changes.
func (c *BatchPixelChange) Add(p Point, v bool) {
	if c.Pixels == nil {
		c.Pixels = map[Point]bool{}
	}
	c.Pixels[p] = v
}

func (c BatchPixelChange) Len() int { return len(c.Pixels) }

// Validate checks every coordinate against the cell size.
func (c BatchPixelChange) Validate(size Size) error {
	var bad []Point
	for p := range c.Pixels {
		if !size.Contains(p) {
			bad = append(bad, p)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Slice(bad, func(i, j int) bool {
		if bad[i].Y != bad[j].Y {
			return bad[i].Y < bad[j].Y
		}
		return bad[i].X < bad[j].X
	})
	return fmt.Errorf("%w: (%d,%d) in %s cell", ErrCoordinateOutOfRange, bad[0].X, bad[0].Y, size)
}

// Apply returns a copy of g with the change applied. g itself is never
// modified, so a failed call leaves it exactly as it was.
func (c BatchPixelChange) Apply(g Glyph) (Glyph, error) {
	if err := c.Validate(g.size); err != nil {
		return g, err
	}
	out := g.Clone()
	for p, v := range c.Pixels {
		i := p.Y*g.size.Width + p.X
		switch c.Kind {
		case Set:
			out.pixels[i] = true
		case Clear:
			out.pixels[i] = false
		case Toggle:
			out.pixels[i] = !out.pixels[i]
		case PaintStroke:
			out.pixels[i] = v
		default:
			return g, fmt.Errorf("unknown change kind %d", c.Kind)
		}
	}
	return out, nil
}
