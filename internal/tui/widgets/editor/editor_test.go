package editor

import (
	"strings"
	"testing"

	"fontedit/internal/font"
)

func TestASCIIView(t *testing.T) {
	g := font.NewGlyph(font.Size{Width: 3, Height: 2})
	_ = g.SetPixel(0, 0, true)
	e := Editor{NoColor: true}

	out := e.View(g, font.Point{X: 2, Y: 1}, true, PenUp, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "3x2  Pen: up") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "##. . " || lines[2] != ". . ()" {
		t.Fatalf("unexpected rows %q", lines[1:])
	}
}

func TestPendingStrokeIsShown(t *testing.T) {
	g := font.NewGlyph(font.Size{Width: 2, Height: 1})
	_ = g.SetPixel(0, 0, true)
	e := Editor{NoColor: true}

	pending := map[font.Point]bool{{X: 0, Y: 0}: false, {X: 1, Y: 0}: true}
	out := e.View(g, font.Point{}, false, PenErase, pending)
	if !strings.Contains(out, "\n. ##\n") {
		t.Fatalf("pending pixels not drawn: %q", out)
	}
	if !strings.Contains(out, "Pen: erase") {
		t.Fatalf("pen not shown")
	}
}
