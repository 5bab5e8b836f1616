package util

import (
	"fontedit/internal/font"
	"fontedit/internal/tui/state"
)

// GlyphInfo is everything the chips of one glyph row are derived from.
type GlyphInfo struct {
	Index    int
	Glyph    font.Glyph
	Selected bool
	// Original is the glyph as it was loaded; nil for glyphs added since.
	Original *font.Glyph
}

// ComputeTags calculates the status chips for a glyph row.
//
// The returned slice preserves a stable order:
//
//	Selected, Exported | Hidden, Empty, Modified, Index
//
// Rules:
//   - Exported and Hidden are mutually exclusive and follow the glyph's
//     export flag.
//   - Empty is set when no pixel is on.
//   - Modified compares against the glyph as loaded; a glyph added since
//     loading is always modified.
//   - Index is always included.
func ComputeTags(in GlyphInfo) []state.Tag {
	tags := make([]state.Tag, 0, 5)

	if in.Selected {
		tags = append(tags, state.Tag{Kind: state.SELECTED})
	}

	if in.Glyph.Exported {
		tags = append(tags, state.Tag{Kind: state.EXPORTED})
	} else {
		tags = append(tags, state.Tag{Kind: state.HIDDEN})
	}

	if in.Glyph.IsEmpty() {
		tags = append(tags, state.Tag{Kind: state.EMPTY})
	}

	if in.Original == nil || !in.Original.Equal(in.Glyph) {
		tags = append(tags, state.Tag{Kind: state.MODIFIED})
	}

	tags = append(tags, state.Tag{Kind: state.INDEX, Value: in.Index})
	return tags
}

// Baseline returns a pointer to glyphs[i], or nil when i is out of range.
func Baseline(glyphs []font.Glyph, i int) *font.Glyph {
	if i < 0 || i >= len(glyphs) {
		return nil
	}
	return &glyphs[i]
}
