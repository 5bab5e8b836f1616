package state

// RegisterInputEvent folds an input event into s. Interface actions select
// tabs; user actions update the last user action and the status message.
// Action flags are not touched; follow with Compute.
func RegisterInputEvent(s UIState, e InputEvent) UIState {
	switch e := e.(type) {
	case InterfaceAction:
		switch e {
		case ActionTabEdit:
			s.SelectedTab = TabEdit
		case ActionTabCode:
			s.SelectedTab = TabCode
		}
	case UserAction:
		s.LastUserAction = e
		s.StatusBarMessage = messageFor(e)
		if e == UserIdle {
			s.SelectedTab = TabEdit
		}
	}
	return s
}

func messageFor(a UserAction) Message {
	switch a {
	case UserLoadedDocument:
		return MessageLoadedFace
	case UserLoadedGlyph:
		return MessageLoadedGlyph
	default:
		return MessageIdle
	}
}

// Compute derives the action flags from the inputs and the last user action
// recorded in s. The result depends on nothing else.
func Compute(s UIState, in Inputs) UIState {
	doc := in.HasDocument && s.LastUserAction != UserIdle
	glyph := doc && in.HasSelectedGlyph

	var a Actions
	a = a.With(ActionAddGlyph, doc)
	a = a.With(ActionSave, doc)
	a = a.With(ActionClose, doc)
	a = a.With(ActionPrint, doc)
	a = a.With(ActionExport, doc)
	a = a.With(ActionTabEdit, doc)
	a = a.With(ActionTabCode, doc)
	a = a.With(ActionDeleteGlyph, glyph)
	a = a.With(ActionCopy, glyph)
	a = a.With(ActionPaste, glyph && in.ClipboardHasGlyph)

	s.Actions = a
	return s
}

// Apply is RegisterInputEvent followed by Compute.
func Apply(s UIState, e InputEvent, in Inputs) UIState {
	return Compute(RegisterInputEvent(s, e), in)
}
