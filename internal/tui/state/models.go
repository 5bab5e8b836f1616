package state

import "strings"

// InterfaceAction names one of the actions the edit surface can offer.
type InterfaceAction int

const (
	ActionAddGlyph InterfaceAction = iota
	ActionDeleteGlyph
	ActionSave
	ActionClose
	ActionCopy
	ActionPaste
	ActionPrint
	ActionExport
	ActionTabEdit
	ActionTabCode
	ActionCount

	ActionFirst = ActionAddGlyph
)

var actionNames = [ActionCount]string{
	"add-glyph", "delete-glyph", "save", "close", "copy",
	"paste", "print", "export", "tab-edit", "tab-code",
}

func (a InterfaceAction) String() string {
	if a < ActionFirst || a >= ActionCount {
		return "?"
	}
	return actionNames[a]
}

// UserAction is the last thing the user did that changes what is possible.
type UserAction int

const (
	UserIdle UserAction = iota
	UserLoadedDocument
	UserLoadedGlyph
)

// Message selects the status bar text.
type Message int

const (
	MessageIdle Message = iota
	MessageLoadedFace
	MessageLoadedGlyph
)

// Tab is the selected view of the edit surface.
type Tab int

const (
	TabEdit Tab = iota
	TabCode
)

// Actions is a fixed size set of enabled interface actions.
type Actions uint16

// Has reports whether a is enabled.
func (s Actions) Has(a InterfaceAction) bool {
	return s&(1<<uint(a)) != 0
}

// With returns a copy of s with a switched on or off.
func (s Actions) With(a InterfaceAction, on bool) Actions {
	if on {
		return s | 1<<uint(a)
	}
	return s &^ (1 << uint(a))
}

func (s Actions) String() string {
	var on []string
	for a := ActionFirst; a < ActionCount; a++ {
		if s.Has(a) {
			on = append(on, a.String())
		}
	}
	return "[" + strings.Join(on, " ") + "]"
}

// UIState is the complete, immutable description of what the edit surface
// may offer. It is always replaced as a whole.
type UIState struct {
	Actions          Actions
	LastUserAction   UserAction
	StatusBarMessage Message
	SelectedTab      Tab
}

// Inputs is the document and session state the action flags derive from.
// ClipboardHasGlyph is supplied by the edit surface.
type Inputs struct {
	HasDocument       bool
	HasSelectedGlyph  bool
	ClipboardHasGlyph bool
}

// InputEvent is either an InterfaceAction or a UserAction.
type InputEvent interface {
	inputEvent()
}

func (InterfaceAction) inputEvent() {}
func (UserAction) inputEvent()      {}
