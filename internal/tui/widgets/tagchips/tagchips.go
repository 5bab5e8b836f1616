package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fontedit/internal/tui/state"
	"fontedit/internal/tui/util"
)

// View renders glyph tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.SELECTED:
		return "Selected"
	case state.EXPORTED:
		return "Exported"
	case state.HIDDEN:
		return "Hidden"
	case state.EMPTY:
		return "Empty"
	case state.MODIFIED:
		return "Modified"
	case state.INDEX:
		return fmt.Sprintf("#%d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	white := lipgloss.Color("#FFFFFF")
	switch t.Kind {
	case state.SELECTED:
		return base.Background(p.Primary).Foreground(white)
	case state.EXPORTED:
		return base.Background(p.Success).Foreground(white)
	case state.HIDDEN:
		return base.Background(p.Danger).Foreground(white)
	case state.EMPTY:
		return base.Background(p.Muted).Foreground(white)
	case state.MODIFIED:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.INDEX:
		return base.Background(p.MutedDark).Foreground(white)
	default:
		return base
	}
}
