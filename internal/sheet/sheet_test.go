package sheet

import (
	"bytes"
	"image/png"
	"testing"

	"fontedit/internal/font"
)

func sheetFace(t *testing.T) *font.Face {
	t.Helper()
	f := font.NewFace("Sheet", 8, font.Size{Width: 4, Height: 4})
	for i := 0; i < 3; i++ {
		g := font.NewGlyph(f.Size())
		_ = g.SetPixel(1, 1, true)
		g.Exported = i != 1
		if err := f.AppendGlyph(g); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestLayout(t *testing.T) {
	f := sheetFace(t)
	opts := Options{Scale: 2, Columns: 2, Gap: 1, ShowNonExported: true}
	w, h, glyphs := Layout(f, opts)
	// two columns of 8px cells, two rows
	if w != 1+2*(8+1) || h != 1+2*(8+1) {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if len(glyphs) != 3 {
		t.Fatalf("expected 3 glyphs, got %v", glyphs)
	}

	opts.ShowNonExported = false
	_, _, glyphs = Layout(f, opts)
	if len(glyphs) != 2 || glyphs[0] != 0 || glyphs[1] != 2 {
		t.Fatalf("expected exported glyphs [0 2], got %v", glyphs)
	}
}

func TestRenderPNG(t *testing.T) {
	f := sheetFace(t)
	opts := Options{Scale: 4, Columns: 3, Gap: 2, ShowNonExported: true}
	var buf bytes.Buffer
	if err := Render(&buf, f, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, h, _ := Layout(f, opts)
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("image is %v, want %dx%d", b, w, h)
	}

	// centre of pixel (1,1) of the first glyph
	r, g, b, _ := img.At(2+4+2, 2+4+2).RGBA()
	if r > 0x4000 || g > 0x4000 || b > 0x4000 {
		t.Fatalf("expected dark ink at set pixel, got %x %x %x", r, g, b)
	}
	// the gap is paper white
	r, _, _, _ = img.At(0, 0).RGBA()
	if r < 0xf000 {
		t.Fatalf("expected white paper at origin, got %x", r)
	}
}

func TestRenderNilFace(t *testing.T) {
	if err := Render(&bytes.Buffer{}, nil, DefaultOptions()); err == nil {
		t.Fatalf("expected error for nil face")
	}
}
