package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"fontedit/internal/document"
	"fontedit/internal/font"
)

// eventBuffer bounds the events queued between the document and the program.
// Every event makes the view re-read the document, so dropping one under
// load only delays a redraw.
const eventBuffer = 256

const clipboardInterval = 2 * time.Second

type docEventMsg document.Event

// subscribe forwards document events into a channel read by waitEvent.
// Listeners must not block: SourceCodeChanged arrives on the regeneration
// goroutine and the rest arrive inside Update.
func subscribe(doc *document.Model) (<-chan document.Event, func()) {
	ch := make(chan document.Event, eventBuffer)
	unsubscribe := doc.Subscribe(func(e document.Event) {
		select {
		case ch <- e:
		default:
		}
	})
	return ch, unsubscribe
}

func waitEvent(ch <-chan document.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return docEventMsg(e)
	}
}

type clipboardMsg struct {
	hasGlyph bool
}

// checkClipboard reports whether the system clipboard holds a glyph. A
// clipboard that cannot be read counts as empty.
func checkClipboard() tea.Msg {
	s, err := clipboard.ReadAll()
	return clipboardMsg{hasGlyph: err == nil && font.IsGlyphText(s)}
}

func pollClipboard() tea.Cmd {
	return tea.Tick(clipboardInterval, func(time.Time) tea.Msg { return checkClipboard() })
}
