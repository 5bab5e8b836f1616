package font

import "errors"

var (
	// ErrDimensionMismatch is returned when a glyph's cell size differs from
	// the face it is being placed into.
	ErrDimensionMismatch = errors.New("glyph dimensions do not match face")
	ErrIndexOutOfRange   = errors.New("glyph index out of range")
	// ErrCoordinateOutOfRange is returned by pixel edits that fall outside the
	// glyph cell. The glyph is left untouched.
	ErrCoordinateOutOfRange = errors.New("pixel coordinate out of range")
	ErrMalformed            = errors.New("malformed font document")
)
