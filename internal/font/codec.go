package font

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileExtension is the extension of the native document format.
const FileExtension = ".fontedit"

const formatVersion = 1

// document is the on-disk representation. Rows are stored as hex strings,
// most significant bit first, padded to whole bytes (the BDF convention).
type document struct {
	Version   int             `json:"version"`
	Name      string          `json:"name"`
	PointSize int             `json:"pointSize"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Glyphs    []documentGlyph `json:"glyphs"`
}

type documentGlyph struct {
	Code     *int32   `json:"code,omitempty"`
	Exported bool     `json:"exported"`
	Rows     []string `json:"rows"`
}

// Encode serializes f in the native document format.
func Encode(f *Face) ([]byte, error) {
	doc := document{
		Version:   formatVersion,
		Name:      f.Name,
		PointSize: f.PointSize,
		Width:     f.size.Width,
		Height:    f.size.Height,
		Glyphs:    make([]documentGlyph, 0, len(f.glyphs)),
	}
	for _, g := range f.glyphs {
		dg := documentGlyph{Exported: g.Exported, Rows: make([]string, g.size.Height)}
		if g.Code != NoCode {
			c := int32(g.Code)
			dg.Code = &c
		}
		for y := 0; y < g.size.Height; y++ {
			dg.Rows[y] = hex.EncodeToString(packRow(g.Row(y)))
		}
		doc.Glyphs = append(doc.Glyphs, dg)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses the native document format. Any structural problem is
// reported as ErrMalformed.
func Decode(data []byte) (*Face, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}
	size := Size{Width: doc.Width, Height: doc.Height}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: invalid cell size %s", ErrMalformed, size)
	}
	f := NewFace(doc.Name, doc.PointSize, size)
	rowBytes := (size.Width + 7) / 8
	for i, dg := range doc.Glyphs {
		if len(dg.Rows) != size.Height {
			return nil, fmt.Errorf("%w: glyph %d has %d rows, expected %d", ErrMalformed, i, len(dg.Rows), size.Height)
		}
		for y, row := range dg.Rows {
			if len(row) != 2*rowBytes {
				return nil, fmt.Errorf("%w: glyph %d row %d has %d hex digits, expected %d", ErrMalformed, i, y, len(row), 2*rowBytes)
			}
		}
		g := NewGlyph(size)
		g.Exported = dg.Exported
		if dg.Code != nil {
			g.Code = rune(*dg.Code)
		}
		for y, row := range dg.Rows {
			b, err := hex.DecodeString(row)
			if err != nil {
				return nil, fmt.Errorf("%w: glyph %d row %d: %v", ErrMalformed, i, y, err)
			}
			for x := 0; x < size.Width; x++ {
				g.pixels[y*size.Width+x] = b[x/8]&(0x80>>(x%8)) != 0
			}
		}
		f.glyphs = append(f.glyphs, g)
	}
	return f, nil
}

// Read decodes a document from r.
func Read(r io.Reader) (*Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Load reads and decodes the document at path.
func Load(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data)
}

// Save encodes f and writes it to path.
func Save(path string, f *Face) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func packRow(row []bool) []byte {
	out := make([]byte, (len(row)+7)/8)
	for x, on := range row {
		if on {
			out[x/8] |= 0x80 >> (x % 8)
		}
	}
	return out
}
