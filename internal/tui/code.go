package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fontedit/internal/tui/widgets/diff"
)

// codeView is the code tab: the generated text in a scrolling viewport,
// optionally as a diff against the text it replaced, with search.
type codeView struct {
	vp      viewport.Model
	text    string
	prev    string
	noColor bool

	showDiff   bool
	sideBySide bool

	// search state
	searching  bool
	searchBuf  string
	searchIdxs []int
	searchPos  int
}

func newCodeView(noColor bool) codeView {
	vp := viewport.New(80, 20)
	// letter keys belong to the code tab options
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("down")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Left:         key.NewBinding(key.WithKeys("left")),
		Right:        key.NewBinding(key.WithKeys("right")),
	}
	return codeView{vp: vp, noColor: noColor}
}

func (c *codeView) resize(width, height int) {
	c.vp.Width = width
	c.vp.Height = max(height, 3)
	c.refresh()
}

// setText replaces the text. The replaced text is kept for the diff.
func (c *codeView) setText(s string) {
	if s == c.text {
		return
	}
	c.prev, c.text = c.text, s
	c.searchIdxs = nil
	c.refresh()
}

func (c *codeView) reset() {
	c.prev, c.text = "", ""
	c.searching = false
	c.searchBuf = ""
	c.searchIdxs = nil
	c.searchPos = 0
	c.refresh()
}

func (c *codeView) refresh() {
	c.vp.SetContent(c.render())
}

func (c *codeView) render() string {
	if c.showDiff {
		if c.noColor {
			return diff.NewDiffView().View(c.prev, c.text, c.sideBySide, c.vp.Width)
		}
		if c.sideBySide {
			return renderSideBySideDiff(c.prev, c.text, max(c.vp.Width/2-3, 10))
		}
		return renderUnifiedDiff(c.prev, c.text)
	}
	if c.text == "" {
		return faint.Render("(no source code)")
	}
	lines := strings.Split(c.text, "\n")
	for i, ln := range lines {
		lines[i] = c.highlight(ln, i)
	}
	return strings.Join(lines, "\n")
}

func (c *codeView) toggleDiff() {
	c.showDiff = !c.showDiff
	c.refresh()
}

func (c *codeView) toggleSideBySide() {
	c.sideBySide = !c.sideBySide
	c.refresh()
}

func (c *codeView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.vp, cmd = c.vp.Update(msg)
	return cmd
}

// searchKey feeds a key to the search prompt. It reports whether the key
// was consumed.
func (c *codeView) searchKey(msg tea.KeyMsg) bool {
	if !c.searching {
		return false
	}
	switch msg.Type {
	case tea.KeyEnter:
		c.searching = false
		c.computeSearch()
		c.jumpToResult(0)
	case tea.KeyEsc:
		c.searching = false
		c.searchBuf = ""
		c.searchIdxs = nil
		c.searchPos = 0
		c.refresh()
	case tea.KeyBackspace, tea.KeyCtrlH:
		if r := []rune(c.searchBuf); len(r) > 0 {
			c.searchBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		c.searchBuf += string(msg.Runes)
	}
	return true
}

func (c *codeView) startSearch() {
	c.searching = true
	c.searchBuf = ""
	c.showDiff = false
}

// computeSearch builds indexes of lines containing searchBuf (case-insensitive)
func (c *codeView) computeSearch() {
	c.searchIdxs = nil
	c.searchPos = 0
	q := strings.ToLower(strings.TrimSpace(c.searchBuf))
	if q == "" {
		c.refresh()
		return
	}
	for i, ln := range strings.Split(c.text, "\n") {
		if strings.Contains(strings.ToLower(ln), q) {
			c.searchIdxs = append(c.searchIdxs, i)
		}
	}
	c.refresh()
}

func (c *codeView) jumpToResult(pos int) {
	if len(c.searchIdxs) == 0 {
		return
	}
	if pos < 0 {
		pos = len(c.searchIdxs) - 1
	}
	if pos >= len(c.searchIdxs) {
		pos = 0
	}
	c.searchPos = pos
	c.vp.SetYOffset(c.searchIdxs[pos])
}

func (c *codeView) next(step int) {
	if len(c.searchIdxs) == 0 && strings.TrimSpace(c.searchBuf) != "" {
		c.computeSearch()
		c.jumpToResult(0)
		return
	}
	if len(c.searchIdxs) > 0 {
		c.jumpToResult(c.searchPos + step)
	}
}

var highlightStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

func (c *codeView) highlight(s string, idx int) string {
	q := strings.ToLower(strings.TrimSpace(c.searchBuf))
	if q == "" || len(c.searchIdxs) == 0 || !containsIndex(c.searchIdxs, idx) {
		return s
	}
	if c.noColor {
		return "> " + s
	}
	// generated code is ASCII apart from glyph comments, so byte offsets
	// of the lowered line match the original
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		return highlightStyle.Render(s)
	}
	var b strings.Builder
	off := 0
	for {
		p := strings.Index(lower[off:], q)
		if p < 0 {
			break
		}
		p += off
		b.WriteString(s[off:p])
		b.WriteString(highlightStyle.Render(s[p : p+len(q)]))
		off = p + len(q)
	}
	b.WriteString(s[off:])
	return b.String()
}

func containsIndex(a []int, x int) bool {
	for _, v := range a {
		if v == x {
			return true
		}
	}
	return false
}

// status is the one line summary shown under the viewport.
func (c *codeView) status() string {
	mode := "code"
	if c.showDiff {
		mode = "diff unified"
		if c.sideBySide {
			mode = "diff side-by-side"
		}
	}
	s := fmt.Sprintf("%s  %d lines  %3.f%%", mode, c.vp.TotalLineCount(), c.vp.ScrollPercent()*100)
	if c.searching {
		s += fmt.Sprintf("  /%s", c.searchBuf)
	} else if len(c.searchIdxs) > 0 {
		s += fmt.Sprintf("  [%d/%d]", c.searchPos+1, len(c.searchIdxs))
	}
	return s
}

func (c *codeView) view() string {
	return c.vp.View()
}
