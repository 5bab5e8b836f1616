package sourcecode

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"fontedit/internal/font"
)

// layout is the enclosing template of one output format.
type layout struct {
	comment  string
	prologue []string
	open     string // printf format taking the array name
	close    string
}

var layouts = map[string]layout{
	FormatC: {
		comment:  "//",
		prologue: []string{"#include <stdint.h>"},
		open:     "const uint8_t %s[] = {",
		close:    "};",
	},
	FormatArduino: {
		comment:  "//",
		prologue: []string{"#include <Arduino.h>"},
		open:     "const uint8_t %s[] PROGMEM = {",
		close:    "};",
	},
	FormatPythonList: {
		comment: "#",
		open:    "%s = [",
		close:   "]",
	},
	FormatPythonBytes: {
		comment: "#",
		open:    "%s = bytes([",
		close:   "])",
	},
}

// Generate renders face as a source code array. The output depends only on
// the face content and the options, so equal inputs give identical text.
// A nil face or an empty selection yields an array with an empty body.
func Generate(face *font.Face, opts Options) string {
	opts = opts.Normalize()
	l := layouts[opts.Format]
	indent := opts.Indentation.String()

	var b strings.Builder
	writeHeader(&b, l, face, opts)
	for _, line := range l.prologue {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, l.open, opts.ArrayName)
	b.WriteString("\n")

	if face != nil {
		blank := make([]bool, face.Size().Width)
		first := true
		for i, g := range face.Glyphs() {
			if opts.ExportMethod == ExportSelected && !g.Exported {
				continue
			}
			if !first {
				b.WriteString("\n")
			}
			first = false

			rows := g.Size().Height
			if opts.IncludeLineSpacing {
				rows++
			}
			fmt.Fprintf(&b, "%s%s %s, %d bytes\n", indent, l.comment, describeGlyph(i, g), rows*bytesPerRow(g.Size().Width))
			for y := 0; y < g.Size().Height; y++ {
				writeRow(&b, indent, PackRow(g.Row(y), opts.BitOrder, opts.InvertBits))
			}
			if opts.IncludeLineSpacing {
				writeRow(&b, indent, PackRow(blank, opts.BitOrder, opts.InvertBits))
			}
		}
	}

	b.WriteString(l.close)
	b.WriteString("\n")
	return b.String()
}

func writeHeader(b *strings.Builder, l layout, face *font.Face, opts Options) {
	fmt.Fprintf(b, "%s\n", l.comment)
	fmt.Fprintf(b, "%s Font Data\n", l.comment)
	if face != nil {
		fmt.Fprintf(b, "%s Face: %s, %dpt\n", l.comment, oneLine(face.Name), face.PointSize)
		fmt.Fprintf(b, "%s Cell: %s px, %d bytes per row\n", l.comment, face.Size(), bytesPerRow(face.Size().Width))
	}
	order := "MSB first"
	if opts.BitOrder == LSB {
		order = "LSB first"
	}
	if opts.InvertBits {
		order += ", inverted"
	}
	fmt.Fprintf(b, "%s Bit order: %s\n", l.comment, order)
	fmt.Fprintf(b, "%s\n\n", l.comment)
}

func writeRow(b *strings.Builder, indent string, row []byte) {
	b.WriteString(indent)
	for i, v := range row {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "0x%02X,", v)
	}
	b.WriteString("\n")
}

func describeGlyph(index int, g font.Glyph) string {
	s := fmt.Sprintf("Glyph %d", index)
	if g.Code == font.NoCode {
		return s
	}
	s += fmt.Sprintf(": U+%04X", g.Code)
	if unicode.IsPrint(g.Code) && g.Code != ' ' {
		s += fmt.Sprintf(" '%c'", g.Code)
	}
	if name := runenames.Name(g.Code); name != "" {
		s += " " + name
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func bytesPerRow(width int) int {
	return (width + 7) / 8
}

// PackRow packs one bitmap row into whole bytes. With MSB the leftmost pixel
// lands in bit 7 of the first byte, with LSB in bit 0. Inversion complements
// every packed byte, padding bits included.
func PackRow(row []bool, order BitOrder, invert bool) []byte {
	out := make([]byte, bytesPerRow(len(row)))
	for x, on := range row {
		if !on {
			continue
		}
		if order == LSB {
			out[x/8] |= 1 << (x % 8)
		} else {
			out[x/8] |= 0x80 >> (x % 8)
		}
	}
	if invert {
		for i := range out {
			out[i] = ^out[i]
		}
	}
	return out
}
