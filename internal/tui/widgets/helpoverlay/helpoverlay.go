package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"fontedit/internal/tui/state"
)

// Group is one titled section of the overlay.
type Group struct {
	Title string
	Keys  []key.Binding
}

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

var faint = lipgloss.NewStyle().Faint(true)

// View returns grouped keys help. Disabled bindings are listed as
// unavailable so the layout does not jump when the state changes.
func (HelpOverlay) View(s state.UIState, groups []Group) string {
	tab := "Edit"
	if s.SelectedTab == state.TabCode {
		tab = "Code"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Tab: %s)\n", tab)
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s:\n", g.Title)
		for _, k := range g.Keys {
			h := k.Help()
			if h.Key == "" {
				continue
			}
			line := fmt.Sprintf("  %-10s %s", h.Key, h.Desc)
			if !k.Enabled() {
				line = faint.Render(line + " (unavailable)")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
