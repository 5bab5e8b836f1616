package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"fontedit/internal/tui/widgets/diff"
)

var (
	diffDelLine  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	diffAddChar  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint        = lipgloss.NewStyle().Faint(true)
	tagStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	tagWarnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
)

// hunk pairs the removed and added lines of one change.
type hunk struct {
	equal   string
	removed []string
	added   []string
}

// hunks groups a line diff so that each run of removed lines is paired with
// the added lines that replace it.
func hunks(before, after string) []hunk {
	lines := diff.Lines(before, after)
	var out []hunk
	for i := 0; i < len(lines); {
		if lines[i].Op == ' ' {
			out = append(out, hunk{equal: lines[i].Text})
			i++
			continue
		}
		var h hunk
		for ; i < len(lines) && lines[i].Op == '-'; i++ {
			h.removed = append(h.removed, lines[i].Text)
		}
		for ; i < len(lines) && lines[i].Op == '+'; i++ {
			h.added = append(h.added, lines[i].Text)
		}
		out = append(out, h)
	}
	return out
}

// charDiff returns the char level diff of a replaced line.
func charDiff(bl, al string) []dmp.Diff {
	d := dmp.New()
	diffs := d.DiffMain(bl, al, false)
	return d.DiffCleanupSemantic(diffs)
}

// renderUnifiedDiff renders a unified diff with line- and char-level highlights.
func renderUnifiedDiff(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	var sb strings.Builder
	for _, h := range hunks(before, after) {
		if h.removed == nil && h.added == nil {
			if strings.TrimSpace(h.equal) == "" {
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(faint.Render(h.equal))
			sb.WriteString("\n")
			continue
		}
		n := max(len(h.removed), len(h.added))
		for i := 0; i < n; i++ {
			var bl, al string
			if i < len(h.removed) {
				bl = h.removed[i]
			}
			if i < len(h.added) {
				al = h.added[i]
			}
			diffs := charDiff(bl, al)
			if i < len(h.removed) {
				sb.WriteString(diffDelLine.Render("- "))
				for _, df := range diffs {
					switch df.Type {
					case dmp.DiffDelete:
						sb.WriteString(diffDelChar.Render(df.Text))
					case dmp.DiffEqual:
						sb.WriteString(diffDelLine.Render(df.Text))
					}
				}
				sb.WriteString("\n")
			}
			if i < len(h.added) {
				sb.WriteString(diffAddLine.Render("+ "))
				for _, df := range diffs {
					switch df.Type {
					case dmp.DiffInsert:
						sb.WriteString(diffAddChar.Render(df.Text))
					case dmp.DiffEqual:
						sb.WriteString(diffAddLine.Render(df.Text))
					}
				}
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// renderSideBySideDiff renders a very simple side-by-side view.
// width is the max width of each column (best-effort).
func renderSideBySideDiff(before, after string, width int) string {
	pad := func(s string, n int) string {
		if w := lipgloss.Width(s); w < n {
			return s + strings.Repeat(" ", n-w)
		}
		return s
	}
	var sb strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		tagWarnStyle.Render("BEFORE"),
		strings.Repeat(" ", max(width-6+5, 1)),
		tagStyle.Render("AFTER"),
	)
	sb.WriteString(header + "\n")
	for _, h := range hunks(before, after) {
		if h.removed == nil && h.added == nil {
			sb.WriteString(pad(faint.Render(h.equal), width) + "  |  " + faint.Render(h.equal) + "\n")
			continue
		}
		n := max(len(h.removed), len(h.added))
		for i := 0; i < n; i++ {
			var bl, al string
			if i < len(h.removed) {
				bl = h.removed[i]
			}
			if i < len(h.added) {
				al = h.added[i]
			}
			var lbuf, rbuf strings.Builder
			for _, df := range charDiff(bl, al) {
				switch df.Type {
				case dmp.DiffDelete:
					lbuf.WriteString(diffDelChar.Render(df.Text))
				case dmp.DiffInsert:
					rbuf.WriteString(diffAddChar.Render(df.Text))
				case dmp.DiffEqual:
					lbuf.WriteString(diffDelLine.Render(df.Text))
					rbuf.WriteString(diffAddLine.Render(df.Text))
				}
			}
			left := pad(diffDelLine.Render("- ")+lbuf.String(), width)
			right := diffAddLine.Render("+ ") + rbuf.String()
			sb.WriteString(left + "  |  " + right + "\n")
		}
	}
	return sb.String()
}
