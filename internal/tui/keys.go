package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"fontedit/internal/tui/state"
	overlay "fontedit/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	Quit key.Binding
	Help key.Binding
	Tab  key.Binding

	Open     key.Binding
	Import   key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	Close    key.Binding
	Export   key.Binding
	Print    key.Binding
	ShowAll  key.Binding
	AddGlyph key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Paste    key.Binding
	Reset    key.Binding
	Exported key.Binding
	Up       key.Binding
	Down     key.Binding
	Paint    key.Binding

	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Draw   key.Binding
	Erase  key.Binding
	Back   key.Binding

	Format     key.Binding
	Indent     key.Binding
	BitOrder   key.Binding
	Invert     key.Binding
	Spacing    key.Binding
	ExportAll  key.Binding
	ArrayName  key.Binding
	Diff       key.Binding
	SideBySide key.Binding
	CopyCode   key.Binding
	Search     key.Binding
	Next       key.Binding
	Prev       key.Binding
}

func newKeyMap() keyMap {
	b := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return keyMap{
		Quit: b("q", "quit", "q", "ctrl+c"),
		Help: b("?", "toggle help", "?"),
		Tab:  b("tab", "edit/code tab", "tab"),

		Open:     b("o", "open document", "o"),
		Import:   b("I", "import font", "I"),
		Save:     b("s", "save", "s", "ctrl+s"),
		SaveAs:   b("S", "save as", "S"),
		Close:    b("w", "close document", "w"),
		Export:   b("e", "export source code", "e"),
		Print:    b("P", "print glyph sheet", "P"),
		ShowAll:  b("H", "show/hide non-exported", "H"),
		AddGlyph: b("a", "add glyph", "a"),
		Delete:   b("x", "delete glyph", "x", "delete"),
		Copy:     b("c", "copy glyph", "c"),
		Paste:    b("v", "paste glyph", "v"),
		Reset:    b("r", "clear glyph", "r"),
		Exported: b("t", "toggle exported", "t"),
		Up:       b("↑/k", "previous", "up", "k"),
		Down:     b("↓/j", "next", "down", "j"),
		Paint:    b("enter", "paint glyph", "enter"),

		Left:   b("←/h", "left", "left", "h"),
		Right:  b("→/l", "right", "right", "l"),
		Toggle: b("space", "toggle pixel", " "),
		Draw:   b("d", "draw stroke on/off", "d"),
		Erase:  b("D", "erase stroke on/off", "D"),
		Back:   b("esc", "back", "esc"),

		Format:     b("f", "next format", "f"),
		Indent:     b("g", "next indentation", "g"),
		BitOrder:   b("m", "MSB/LSB first", "m"),
		Invert:     b("i", "invert bits", "i"),
		Spacing:    b("l", "line spacing", "l"),
		ExportAll:  b("a", "export all/selected", "a"),
		ArrayName:  b("A", "array name", "A"),
		Diff:       b("d", "diff with previous", "d"),
		SideBySide: b("b", "unified/side-by-side", "b"),
		CopyCode:   b("y", "copy source code", "y"),
		Search:     b("/", "search", "/"),
		Next:       b("n", "next match", "n"),
		Prev:       b("N", "previous match", "N"),
	}
}

// sync enables the bindings backed by an interface action according to s.
func (k *keyMap) sync(s state.UIState) {
	k.AddGlyph.SetEnabled(s.Actions.Has(state.ActionAddGlyph))
	k.Delete.SetEnabled(s.Actions.Has(state.ActionDeleteGlyph))
	k.Save.SetEnabled(s.Actions.Has(state.ActionSave))
	k.SaveAs.SetEnabled(s.Actions.Has(state.ActionSave))
	k.Close.SetEnabled(s.Actions.Has(state.ActionClose))
	k.Copy.SetEnabled(s.Actions.Has(state.ActionCopy))
	k.Paste.SetEnabled(s.Actions.Has(state.ActionPaste))
	k.Print.SetEnabled(s.Actions.Has(state.ActionPrint))
	k.Export.SetEnabled(s.Actions.Has(state.ActionExport))
	k.Tab.SetEnabled(s.Actions.Has(state.ActionTabEdit) || s.Actions.Has(state.ActionTabCode))

	glyph := s.Actions.Has(state.ActionDeleteGlyph)
	k.Reset.SetEnabled(glyph)
	k.Exported.SetEnabled(glyph)
	k.Paint.SetEnabled(glyph)
}

func (k keyMap) groups(tab state.Tab) []overlay.Group {
	general := overlay.Group{Title: "Document", Keys: []key.Binding{
		k.Open, k.Import, k.Save, k.SaveAs, k.Close, k.Export, k.Print, k.Tab, k.Help, k.Quit,
	}}
	if tab == state.TabCode {
		return []overlay.Group{
			general,
			{Title: "Options", Keys: []key.Binding{k.Format, k.Indent, k.BitOrder, k.Invert, k.Spacing, k.ExportAll, k.ArrayName}},
			{Title: "View", Keys: []key.Binding{k.Diff, k.SideBySide, k.CopyCode, k.Search, k.Next, k.Prev}},
		}
	}
	return []overlay.Group{
		general,
		{Title: "Glyphs", Keys: []key.Binding{k.Up, k.Down, k.AddGlyph, k.Delete, k.Copy, k.Paste, k.Reset, k.Exported, k.ShowAll, k.Paint}},
		{Title: "Paint", Keys: []key.Binding{k.Left, k.Right, k.Toggle, k.Draw, k.Erase, k.Back}},
	}
}
