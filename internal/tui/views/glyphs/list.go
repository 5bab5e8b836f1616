package glyphs

import (
	"fmt"
	"unicode"

	"fontedit/internal/font"
	"fontedit/internal/tui/state"
	chips "fontedit/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for list items.
func RenderTags(tags []state.Tag, noColor bool) string {
	return chips.View(tags, noColor)
}

// Label names a glyph by its character code when it has one.
func Label(g font.Glyph) string {
	switch {
	case g.Code == font.NoCode:
		return "------"
	case unicode.IsPrint(g.Code) && !unicode.IsSpace(g.Code):
		return fmt.Sprintf("U+%04X %c", g.Code, g.Code)
	default:
		return fmt.Sprintf("U+%04X", g.Code)
	}
}

// RenderRow renders one line of the glyph list.
func RenderRow(g font.Glyph, tags []state.Tag, noColor bool) string {
	return fmt.Sprintf("%-8s %s", Label(g), RenderTags(tags, noColor))
}
