// Package diff renders plain text line diffs for terminals without color.
package diff

import (
	"fmt"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// Line is one line of a diff. Op is '-', '+' or ' '.
type Line struct {
	Op   byte
	Text string
}

// Lines computes a line level diff of before and after.
func Lines(before, after string) []Line {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []Line
	for _, df := range diffs {
		op := byte(' ')
		switch df.Type {
		case dmp.DiffDelete:
			op = '-'
		case dmp.DiffInsert:
			op = '+'
		}
		for _, l := range strings.SplitAfter(df.Text, "\n") {
			if l == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return out
}

// View renders before and after as a unified diff, or side by side in two
// columns of width each when sideBySide is set.
func (DiffView) View(before, after string, sideBySide bool, width int) string {
	if before == after {
		return "No changes\n"
	}
	if sideBySide {
		return sideBySideView(Lines(before, after), width)
	}
	return unified(Lines(before, after))
}

func unified(lines []Line) string {
	var b strings.Builder
	b.WriteString("BEFORE vs AFTER (Unified)\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%c %s\n", l.Op, l.Text)
	}
	return b.String()
}

func sideBySideView(lines []Line, width int) string {
	const sep = " │ "
	colWidth := 40
	if width > 0 {
		colWidth = (width - len(sep)) / 2
		if colWidth < 10 {
			colWidth = 10
		}
	}
	var b strings.Builder
	b.WriteString("BEFORE │ AFTER\n")
	// pair runs of deletions with the insertions that follow them
	for i := 0; i < len(lines); {
		if lines[i].Op == ' ' {
			l := clip(lines[i].Text, colWidth)
			fmt.Fprintf(&b, "%s%s%s\n", pad(l, colWidth), sep, l)
			i++
			continue
		}
		var left, right []string
		for ; i < len(lines) && lines[i].Op == '-'; i++ {
			left = append(left, lines[i].Text)
		}
		for ; i < len(lines) && lines[i].Op == '+'; i++ {
			right = append(right, lines[i].Text)
		}
		n := max(len(left), len(right))
		for j := 0; j < n; j++ {
			var l, r string
			if j < len(left) {
				l = clip(left[j], colWidth)
			}
			if j < len(right) {
				r = clip(right[j], colWidth)
			}
			fmt.Fprintf(&b, "%s%s%s\n", pad(l, colWidth), sep, r)
		}
	}
	return b.String()
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s
}

func pad(s string, width int) string {
	if w := len([]rune(s)); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
