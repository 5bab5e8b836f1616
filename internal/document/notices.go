package document

import (
	"fontedit/internal/font"
	"fontedit/internal/tui/state"
)

// Notice identifies a change published by the Model.
type Notice string

// List of notices.
const (
	// UIState carries the new state
	NoticeUIStateChanged Notice = "UIStateChanged"

	// a new face replaced the previous one (import or open)
	NoticeFaceLoaded Notice = "FaceLoaded"

	// Glyph is nil when the selection was cleared
	NoticeActiveGlyphChanged Notice = "ActiveGlyphChanged"

	// regeneration was submitted; SourceCode() still returns the old text
	NoticeSourceCodeUpdating Notice = "SourceCodeUpdating"

	// new text was published, read it with SourceCode()
	NoticeSourceCodeChanged Notice = "SourceCodeChanged"

	NoticeDocumentTitleChanged Notice = "DocumentTitleChanged"
	NoticeDocumentClosed       Notice = "DocumentClosed"

	// Err carries the failure
	NoticeDocumentError Notice = "DocumentError"
)

// Event is delivered to listeners. Only the fields relevant to the notice are
// set.
type Event struct {
	Notice Notice

	UIState    state.UIState
	Glyph      *font.Glyph
	GlyphIndex int
	Title      string
	Err        error
}

// Listener receives events. Listeners run synchronously on the goroutine that
// caused the event, except SourceCodeChanged which runs through the
// Dispatcher.
type Listener func(Event)

// Dispatcher runs f on the edit surface's control flow. The default runs f
// immediately on the regeneration goroutine.
type Dispatcher func(f func())

func directDispatch(f func()) { f() }
