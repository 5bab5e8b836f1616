package statusbar

import (
	"strings"

	"fontedit/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// Message returns the text for a status bar message.
func Message(m state.Message) string {
	switch m {
	case state.MessageLoadedFace:
		return "Select a glyph to edit"
	case state.MessageLoadedGlyph:
		return "Enter paints, c copies, v pastes"
	default:
		return "Open (o) or import (I) a font to start"
	}
}

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState, title string, busy bool, notice string) string {
	tab := "[EDIT]"
	if s.SelectedTab == state.TabCode {
		tab = "[CODE]"
	}
	parts := []string{tab}
	if title != "" {
		parts = append(parts, title)
	}
	parts = append(parts, Message(s.StatusBarMessage))
	if busy {
		parts = append(parts, "generating…")
	}
	if notice != "" {
		parts = append(parts, notice)
	}
	return strings.Join(parts, "  ")
}
