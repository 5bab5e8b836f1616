package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSaveAs
	promptExport
	promptPrint
	promptImport
	promptArrayName
)

var promptTitles = map[promptKind]string{
	promptOpen:      "Open document",
	promptSaveAs:    "Save document as",
	promptExport:    "Export source code to",
	promptPrint:     "Print glyph sheet to",
	promptImport:    "Import font (path or builtin:name)",
	promptArrayName: "Array name",
}

// prompt is a single line input with file name suggestions.
type prompt struct {
	kind  promptKind
	input textinput.Model
	paths bool
}

func newPrompt(kind promptKind, value string) prompt {
	in := textinput.New()
	in.Prompt = "> "
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	in.ShowSuggestions = kind != promptArrayName
	p := prompt{kind: kind, input: in, paths: in.ShowSuggestions}
	if p.paths {
		p.computeSuggestions()
	}
	return p
}

func (p *prompt) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.paths && p.input.Value() != before {
		p.computeSuggestions()
	}
	return cmd
}

// value returns the entered text, with paths expanded.
func (p prompt) value() string {
	v := strings.TrimSpace(p.input.Value())
	if !p.paths || v == "" || strings.HasPrefix(v, "builtin:") {
		return v
	}
	return expandPath(v)
}

func (p prompt) view() string {
	return titleStyle.Render(promptTitles[p.kind]) + "\n" + p.input.View() + "\n" +
		faint.Render("enter: confirm   tab: complete   esc: cancel")
}

// computeSuggestions offers the entries of the directory being typed.
func (p *prompt) computeSuggestions() {
	in := p.input.Value()
	if strings.TrimSpace(in) == "" {
		p.input.SetSuggestions(nil)
		return
	}
	expanded := in
	if strings.HasPrefix(in, "~") {
		expanded = expandPath(in)
	}
	dir := expanded
	if fi, err := os.Stat(expanded); err != nil || !fi.IsDir() {
		dir = filepath.Dir(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.input.SetSuggestions(nil)
		return
	}
	// suggestions must extend what was typed, so keep the typed prefix
	prefix := in
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix = filepath.Dir(in)
		if prefix == "." && !strings.HasPrefix(in, ".") {
			prefix = ""
		} else if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		out = append(out, prefix+name)
		if len(out) >= 64 {
			break
		}
	}
	p.input.SetSuggestions(out)
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
