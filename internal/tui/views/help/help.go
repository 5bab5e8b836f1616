package help

import (
	"fontedit/internal/tui/state"
	overlay "fontedit/internal/tui/widgets/helpoverlay"
)

// RenderHelp returns the grouped keys overlay content.
func RenderHelp(s state.UIState, groups []overlay.Group) string {
	return overlay.NewHelpOverlay().View(s, groups)
}
