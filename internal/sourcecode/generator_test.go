package sourcecode

import (
	"strings"
	"testing"

	"fontedit/internal/font"
)

func singlePixelFace(t *testing.T) *font.Face {
	t.Helper()
	f := font.NewFace("Scenario", 8, font.Size{Width: 8, Height: 8})
	g := font.NewGlyph(f.Size())
	if err := g.SetPixel(0, 0, true); err != nil {
		t.Fatal(err)
	}
	if err := f.AppendGlyph(g); err != nil {
		t.Fatal(err)
	}
	return f
}

// byteRows returns the body lines that carry byte literals.
func byteRows(text string) []string {
	var rows []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "0x") {
			rows = append(rows, l)
		}
	}
	return rows
}

func TestTopLeftPixelScenario(t *testing.T) {
	opts := DefaultOptions()
	text := Generate(singlePixelFace(t), opts)
	rows := byteRows(text)
	if len(rows) != 8 {
		t.Fatalf("expected 8 byte rows, got %d:\n%s", len(rows), text)
	}
	if !strings.HasPrefix(rows[0], "0x80") {
		t.Fatalf("first row should begin with 0x80, got %q", rows[0])
	}
	for _, r := range rows[1:] {
		if r != "0x00," {
			t.Fatalf("expected empty row, got %q", r)
		}
	}
}

func TestBitOrderAndInversion(t *testing.T) {
	tests := []struct {
		name   string
		order  BitOrder
		invert bool
		want   string
	}{
		{"msb", MSB, false, "0x80,"},
		{"lsb", LSB, false, "0x01,"},
		{"msb inverted", MSB, true, "0x7F,"},
		{"lsb inverted", LSB, true, "0xFE,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.BitOrder = tt.order
			opts.InvertBits = tt.invert
			rows := byteRows(Generate(singlePixelFace(t), opts))
			if rows[0] != tt.want {
				t.Fatalf("got %q, want %q", rows[0], tt.want)
			}
			if tt.invert && rows[1] != "0xFF," {
				t.Fatalf("inverted empty row should be 0xFF, got %q", rows[1])
			}
		})
	}
}

func TestPackRowWide(t *testing.T) {
	row := make([]bool, 10)
	row[0] = true
	row[9] = true
	got := PackRow(row, MSB, false)
	if len(got) != 2 || got[0] != 0x80 || got[1] != 0x40 {
		t.Fatalf("msb: got %#v", got)
	}
	got = PackRow(row, LSB, false)
	if got[0] != 0x01 || got[1] != 0x02 {
		t.Fatalf("lsb: got %#v", got)
	}
}

func TestExportFilter(t *testing.T) {
	f := font.NewFace("Filter", 8, font.Size{Width: 3, Height: 2})
	for i := 0; i < 5; i++ {
		g := font.NewGlyph(f.Size())
		g.Exported = i == 1 || i == 3
		_ = f.AppendGlyph(g)
	}

	opts := DefaultOptions()
	opts.ExportMethod = ExportSelected
	text := Generate(f, opts)
	if n := strings.Count(text, "// Glyph "); n != 2 {
		t.Fatalf("expected 2 glyph blocks, got %d:\n%s", n, text)
	}
	i1 := strings.Index(text, "// Glyph 1,")
	i3 := strings.Index(text, "// Glyph 3,")
	if i1 < 0 || i3 < 0 || i1 > i3 {
		t.Fatalf("glyph blocks missing or out of order:\n%s", text)
	}

	opts.ExportMethod = ExportAll
	if n := strings.Count(Generate(f, opts), "// Glyph "); n != 5 {
		t.Fatalf("expected 5 glyph blocks with export all, got %d", n)
	}
}

func TestEmptySelectionIsValid(t *testing.T) {
	f := font.NewFace("Empty", 8, font.Size{Width: 8, Height: 8})
	g := font.NewGlyph(f.Size())
	g.Exported = false
	_ = f.AppendGlyph(g)

	opts := DefaultOptions()
	opts.ExportMethod = ExportSelected
	text := Generate(f, opts)
	if !strings.HasSuffix(text, "const uint8_t font[] = {\n};\n") {
		t.Fatalf("unexpected empty output:\n%s", text)
	}
}

func TestLineSpacing(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeLineSpacing = true
	text := Generate(singlePixelFace(t), opts)
	if n := len(byteRows(text)); n != 9 {
		t.Fatalf("expected 9 rows with line spacing, got %d", n)
	}
	if !strings.Contains(text, "9 bytes") {
		t.Fatalf("glyph comment should count the spacing row:\n%s", text)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	f := singlePixelFace(t)
	opts := DefaultOptions()
	opts.Format = FormatPythonList
	opts.Indentation = 4
	if Generate(f, opts) != Generate(f, opts) {
		t.Fatalf("generation is not deterministic")
	}
}

func TestFormatsAndIndentation(t *testing.T) {
	f := singlePixelFace(t)
	tests := []struct {
		format string
		indent Indentation
		open   string
		close  string
		prefix string
	}{
		{FormatC, Tab, "const uint8_t glyphs[] = {", "};", "\t0x80,"},
		{FormatArduino, 2, "const uint8_t glyphs[] PROGMEM = {", "};", "  0x80,"},
		{FormatPythonList, 4, "glyphs = [", "]", "    0x80,"},
		{FormatPythonBytes, 8, "glyphs = bytes([", "])", "        0x80,"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Format = tt.format
			opts.Indentation = tt.indent
			opts.ArrayName = "glyphs"
			text := Generate(f, opts)
			if !strings.Contains(text, tt.open+"\n") {
				t.Fatalf("missing %q:\n%s", tt.open, text)
			}
			if !strings.HasSuffix(text, tt.close+"\n") {
				t.Fatalf("missing close %q:\n%s", tt.close, text)
			}
			if !strings.Contains(text, "\n"+tt.prefix+"\n") {
				t.Fatalf("missing indented row %q:\n%s", tt.prefix, text)
			}
		})
	}
}

func TestUnknownFormatFallsBack(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "cobol"
	opts.Indentation = 3
	opts.ArrayName = ""
	n := opts.Normalize()
	if n.Format != Formats()[0].ID || n.Indentation != Tab || n.ArrayName != DefaultArrayName {
		t.Fatalf("unexpected normalisation: %+v", n)
	}
	if Generate(singlePixelFace(t), opts) != Generate(singlePixelFace(t), n) {
		t.Fatalf("unknown format should render like the fallback")
	}
}

func TestGlyphComment(t *testing.T) {
	f := font.NewFace("Named", 8, font.Size{Width: 1, Height: 1})
	g := font.NewGlyph(f.Size())
	g.Code = 'A'
	_ = f.AppendGlyph(g)
	text := Generate(f, DefaultOptions())
	if !strings.Contains(text, "// Glyph 0: U+0041 'A' LATIN CAPITAL LETTER A, 1 bytes") {
		t.Fatalf("unexpected glyph comment:\n%s", text)
	}
}

func TestCatalogLabels(t *testing.T) {
	if id, ok := FormatByLabel("Arduino"); !ok || id != FormatArduino {
		t.Fatalf("Arduino label not resolved")
	}
	if _, ok := FormatByLabel("Fortran"); ok {
		t.Fatalf("unknown label resolved")
	}
	if FormatLabel("nope") != "C/C++" {
		t.Fatalf("unknown id should fall back to first label")
	}
	if i, ok := IndentationByLabel("4 Spaces"); !ok || i != 4 {
		t.Fatalf("indentation label not resolved")
	}
	if IndentationLabel(Tab) != "Tab" {
		t.Fatalf("tab label")
	}
}
