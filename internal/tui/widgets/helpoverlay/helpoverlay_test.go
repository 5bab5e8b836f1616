package helpoverlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"fontedit/internal/tui/state"
)

func TestView(t *testing.T) {
	save := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save"))
	del := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete glyph"))
	del.SetEnabled(false)
	hidden := key.NewBinding(key.WithKeys("ctrl+c"))

	out := NewHelpOverlay().View(state.UIState{}, []Group{{Title: "Glyphs", Keys: []key.Binding{save, del, hidden}}})
	if !strings.HasPrefix(out, "Help (Tab: Edit)\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "Glyphs:") || !strings.Contains(out, "save") {
		t.Fatalf("missing group content: %q", out)
	}
	if !strings.Contains(out, "delete glyph (unavailable)") {
		t.Fatalf("disabled binding not marked: %q", out)
	}
	if strings.Contains(out, "ctrl+c") {
		t.Fatalf("binding without help should be skipped")
	}
}
