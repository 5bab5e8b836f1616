package state

// TagKind enumerates the status chips shown next to a glyph.
type TagKind int

const (
	// Stable display order: Selected, Exported, Hidden, Empty, Modified, Index
	SELECTED TagKind = iota
	EXPORTED
	HIDDEN
	EMPTY
	MODIFIED
	INDEX
)

// Tag is a single status chip. Value carries the number for INDEX tags.
type Tag struct {
	Kind  TagKind
	Value int
}
