// Package importer turns scalable and bitmap fonts into editable faces.
package importer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/zachomedia/go-bdf"

	"fontedit/internal/font"
)

// BuiltinPrefix selects one of the faces compiled into the binary, for
// example "builtin:basic7x13".
const BuiltinPrefix = "builtin:"

// DefaultThreshold is the minimum coverage for a rasterized pixel to be set.
const DefaultThreshold = 0x80

// ErrUnknownBuiltin is returned for builtin names that do not exist.
var ErrUnknownBuiltin = errors.New("unknown builtin font")

// Options controls rasterization.
type Options struct {
	Name      string
	PointSize int
	// Runes to import, in glyph order. Empty means printable ASCII.
	Runes     []rune
	Threshold uint8
}

// ASCII returns the printable ASCII range, space to tilde.
func ASCII() []rune {
	rs := make([]rune, 0, '~'-' '+1)
	for r := ' '; r <= '~'; r++ {
		rs = append(rs, r)
	}
	return rs
}

// Builtins lists the names accepted by Builtin.
func Builtins() []string {
	return []string{"basic7x13", "goregular", "gomono"}
}

// FromFace rasterizes every rune of opts.Runes that face can draw. All glyphs
// share one cell: the widest advance by the line height.
func FromFace(face xfont.Face, opts Options) (*font.Face, error) {
	if face == nil {
		return nil, errors.New("import: no face")
	}
	runes := opts.Runes
	if len(runes) == 0 {
		runes = ASCII()
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	width := 0
	var present []rune
	for _, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		present = append(present, r)
		if w := adv.Ceil(); w > width {
			width = w
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("import %s: face has none of the requested runes", opts.Name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("import %s: empty cell %dx%d", opts.Name, width, height)
	}

	size := font.Size{Width: width, Height: height}
	out := font.NewFace(opts.Name, opts.PointSize, size)
	for _, r := range present {
		mask := image.NewAlpha(image.Rect(0, 0, width, height))
		d := &xfont.Drawer{
			Dst:  mask,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
		}
		d.DrawString(string(r))

		g := font.NewGlyph(size)
		g.Code = r
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if mask.AlphaAt(x, y).A >= threshold {
					_ = g.SetPixel(x, y, true)
				}
			}
		}
		if err := out.AppendGlyph(g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadTrueType parses a TrueType or OpenType font and returns a face at the
// given size in points, with its family name.
func LoadTrueType(data []byte, points, dpi float64) (xfont.Face, string, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     dpi,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, "", fmt.Errorf("open face: %w", err)
	}
	name, err := f.Name(&sfnt.Buffer{}, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}
	return face, name, nil
}

// LoadBDF parses a BDF bitmap font. The returned point size is the one
// declared by the font.
func LoadBDF(data []byte) (xfont.Face, string, int, error) {
	f, err := bdf.Parse(data)
	if err != nil {
		return nil, "", 0, fmt.Errorf("parse bdf: %w", err)
	}
	return f.NewFace(), f.Name, f.Size, nil
}

// Builtin returns one of the faces listed by Builtins. points is ignored by
// the fixed size basic7x13.
func Builtin(name string, points float64) (xfont.Face, error) {
	switch name {
	case "basic7x13":
		return basicfont.Face7x13, nil
	case "goregular":
		face, _, err := LoadTrueType(goregular.TTF, points, 72)
		return face, err
	case "gomono":
		face, _, err := LoadTrueType(gomono.TTF, points, 72)
		return face, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
}

// Load imports source, which is either BuiltinPrefix plus a builtin name or
// the path of a .ttf, .otf or .bdf file.
func Load(source string, points int, runes []rune) (*font.Face, error) {
	return LoadWith(source, Options{PointSize: points, Runes: runes})
}

// LoadWith is Load with full rasterization options. opts.Name, when set,
// replaces the name found in the font.
func LoadWith(source string, opts Options) (*font.Face, error) {
	points := opts.PointSize
	if points <= 0 {
		points = 12
	}
	named := func(name string) Options {
		o := opts
		o.PointSize = points
		if o.Name == "" {
			o.Name = name
		}
		return o
	}
	if name, ok := strings.CutPrefix(source, BuiltinPrefix); ok {
		face, err := Builtin(name, float64(points))
		if err != nil {
			return nil, err
		}
		if name == "basic7x13" {
			points = 13
		}
		return FromFace(face, named(name))
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	var (
		face xfont.Face
		name string
	)
	if strings.EqualFold(filepath.Ext(source), ".bdf") {
		var declared int
		face, name, declared, err = LoadBDF(data)
		if declared > 0 {
			points = declared
		}
	} else {
		face, name, err = LoadTrueType(data, float64(points), 72)
	}
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = base
	}
	return FromFace(face, named(name))
}
