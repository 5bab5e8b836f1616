package font

import (
	"bufio"
	"fmt"
	"strings"
)

// glyphTextHeader starts the plain text form of a glyph used on the
// clipboard.
const glyphTextHeader = "fontedit-glyph"

const (
	pixelOn  = '#'
	pixelOff = '.'
)

// FormatGlyph renders g as plain text: a header line with the cell size
// followed by one line per row using '#' and '.'.
func FormatGlyph(g Glyph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d\n", glyphTextHeader, g.size.Width, g.size.Height)
	for y := 0; y < g.size.Height; y++ {
		for x := 0; x < g.size.Width; x++ {
			if g.Pixel(x, y) {
				b.WriteByte(pixelOn)
			} else {
				b.WriteByte(pixelOff)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGlyph is the inverse of FormatGlyph. The parsed glyph is exported and
// has no character code.
func ParseGlyph(s string) (Glyph, error) {
	sc := bufio.NewScanner(strings.NewReader(s))
	if !sc.Scan() {
		return Glyph{}, fmt.Errorf("%w: empty glyph text", ErrMalformed)
	}
	var size Size
	if _, err := fmt.Sscanf(strings.TrimSpace(sc.Text()), glyphTextHeader+" %dx%d", &size.Width, &size.Height); err != nil {
		return Glyph{}, fmt.Errorf("%w: bad glyph header: %v", ErrMalformed, err)
	}
	if !size.Valid() {
		return Glyph{}, fmt.Errorf("%w: invalid glyph size %s", ErrMalformed, size)
	}

	g := NewGlyph(size)
	y := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if y >= size.Height {
			return Glyph{}, fmt.Errorf("%w: too many rows", ErrMalformed)
		}
		if len(line) != size.Width {
			return Glyph{}, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformed, y, len(line), size.Width)
		}
		for x := 0; x < size.Width; x++ {
			switch line[x] {
			case pixelOn:
				g.pixels[y*size.Width+x] = true
			case pixelOff:
			default:
				return Glyph{}, fmt.Errorf("%w: unexpected %q at row %d", ErrMalformed, line[x], y)
			}
		}
		y++
	}
	if y != size.Height {
		return Glyph{}, fmt.Errorf("%w: got %d rows, expected %d", ErrMalformed, y, size.Height)
	}
	return g, nil
}

// IsGlyphText reports whether s looks like FormatGlyph output. It is cheap
// enough to call on every clipboard poll.
func IsGlyphText(s string) bool {
	return strings.HasPrefix(s, glyphTextHeader+" ")
}
