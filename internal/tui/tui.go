package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fontedit/internal/document"
	"fontedit/internal/font"
	"fontedit/internal/importer"
	"fontedit/internal/tui/state"
	"fontedit/internal/tui/util"
	"fontedit/internal/tui/views/glyphs"
	"fontedit/internal/tui/views/help"
	"fontedit/internal/tui/views/options"
	"fontedit/internal/tui/widgets/editor"
	"fontedit/internal/tui/widgets/statusbar"
)

// defaultImportSize is the point size scalable fonts are imported at.
const defaultImportSize = 16

// Options configures Run.
type Options struct {
	NoColor bool
}

// Run shows the editor for doc and blocks until the user quits.
func Run(doc *document.Model, opts Options) error {
	events, unsubscribe := subscribe(doc)
	defer unsubscribe()

	m := newModel(doc, events, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ===== Model =====

type mode string

const (
	modeBrowse mode = "browse" // move through the glyph list
	modePaint  mode = "paint"  // edit the pixels of the selected glyph
	modePrompt mode = "prompt" // enter a path or a name
	modeHelp   mode = "help"   // keys overlay
)

type model struct {
	doc     *document.Model
	events  <-chan document.Event
	keys    keyMap
	noColor bool

	mode   mode
	pixel  font.Point
	pen    editor.Pen
	stroke font.BatchPixelChange

	// glyphs as loaded, for the Modified chip
	baseline []font.Glyph

	code   codeView
	prompt prompt
	busy   bool
	notice string

	width  int
	height int
}

func newModel(doc *document.Model, events <-chan document.Event, opts Options) model {
	noColor := util.NoColor(opts.NoColor)
	m := model{
		doc:     doc,
		events:  events,
		keys:    newKeyMap(),
		noColor: noColor,
		mode:    modeBrowse,
		code:    newCodeView(noColor),
	}
	m.reload()
	return m
}

// reload re-reads everything that belongs to the loaded document.
func (m *model) reload() {
	m.baseline = nil
	if f := m.doc.Face(); f != nil {
		m.baseline = f.Glyphs()
	}
	m.pen = editor.PenUp
	m.stroke = font.BatchPixelChange{}
	m.pixel = font.Point{}
	m.code.reset()
	m.code.setText(m.doc.SourceCode())
	m.keys.sync(m.doc.UIState())
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitEvent(m.events), checkClipboard)
}

// Update handles all TUI interactions.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.code.resize(msg.Width, msg.Height-6)
	case docEventMsg:
		m.handleEvent(document.Event(msg))
		cmd = waitEvent(m.events)
	case clipboardMsg:
		m.doc.SetClipboardHasGlyph(msg.hasGlyph)
		cmd = pollClipboard()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		if m.mode == modePrompt {
			cmd = m.prompt.update(msg)
		}
	}
	m.keys.sync(m.doc.UIState())
	return m, cmd
}

func (m *model) handleEvent(e document.Event) {
	switch e.Notice {
	case document.NoticeFaceLoaded, document.NoticeDocumentClosed:
		m.reload()
		if m.mode == modePaint {
			m.mode = modeBrowse
		}
	case document.NoticeActiveGlyphChanged:
		if e.GlyphIndex < 0 && m.mode == modePaint {
			m.mode = modeBrowse
		}
	case document.NoticeSourceCodeUpdating:
		m.busy = true
	case document.NoticeSourceCodeChanged:
		m.busy = false
		m.code.setText(m.doc.SourceCode())
	case document.NoticeDocumentError:
		if e.Err != nil {
			m.notice = "error: " + e.Err.Error()
		}
	}
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.commitStroke()
		return tea.Quit
	}
	switch m.mode {
	case modePrompt:
		return m.promptKey(msg)
	case modeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.mode = modeBrowse
		}
		return nil
	}
	ui := m.doc.UIState()
	if ui.SelectedTab == state.TabCode && m.code.searchKey(msg) {
		return nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.commitStroke()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.leavePaint()
		m.mode = modeHelp
		return nil
	case key.Matches(msg, m.keys.Tab):
		m.leavePaint()
		if ui.SelectedTab == state.TabCode {
			m.doc.RegisterInputEvent(state.ActionTabEdit)
		} else {
			m.doc.RegisterInputEvent(state.ActionTabCode)
		}
		return nil
	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(promptOpen, dirValue(m.doc.LastVisitedDirectory()))
	case key.Matches(msg, m.keys.Import):
		return m.openPrompt(promptImport, importer.BuiltinPrefix)
	case key.Matches(msg, m.keys.Save):
		m.commitStroke()
		if path, ok := m.doc.CurrentDocumentPath(); ok {
			m.save(path)
			return nil
		}
		return m.openPrompt(promptSaveAs, m.defaultDocumentPath())
	case key.Matches(msg, m.keys.SaveAs):
		m.commitStroke()
		return m.openPrompt(promptSaveAs, m.defaultDocumentPath())
	case key.Matches(msg, m.keys.Close):
		m.leavePaint()
		m.doc.CloseCurrentDocument()
		m.reload()
		return nil
	case key.Matches(msg, m.keys.Export):
		m.commitStroke()
		return m.openPrompt(promptExport, m.defaultExportPath())
	case key.Matches(msg, m.keys.Print):
		m.commitStroke()
		return m.openPrompt(promptPrint, m.defaultPrintPath())
	}

	if !m.doc.HasDocument() {
		return nil
	}
	if ui.SelectedTab == state.TabCode {
		return m.codeKey(msg)
	}
	if m.mode == modePaint {
		m.paintKey(msg)
		return nil
	}
	return m.browseKey(msg)
}

// ===== glyph list =====

// visible returns the indices of the glyphs shown in the list.
func (m *model) visible(f *font.Face) []int {
	all := m.doc.ShouldShowNonExportedGlyphs()
	var out []int
	for i, g := range f.Glyphs() {
		if all || g.Exported {
			out = append(out, i)
		}
	}
	return out
}

func (m *model) move(step int) {
	f := m.doc.Face()
	idx := m.visible(f)
	if len(idx) == 0 {
		return
	}
	pos := -1
	if active, ok := m.doc.ActiveGlyphIndex(); ok {
		for i, v := range idx {
			if v == active {
				pos = i
				break
			}
		}
	}
	switch {
	case pos < 0 && step < 0:
		pos = len(idx) - 1
	case pos < 0:
		pos = 0
	default:
		pos = max(0, min(len(idx)-1, pos+step))
	}
	m.report(m.doc.SetActiveGlyphIndex(idx[pos]))
}

func (m *model) browseKey(msg tea.KeyMsg) tea.Cmd {
	active, hasActive := m.doc.ActiveGlyphIndex()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.AddGlyph):
		f := m.doc.Face()
		if err := m.doc.AppendGlyph(font.NewGlyph(f.Size())); err != nil {
			m.report(err)
			return nil
		}
		m.report(m.doc.SetActiveGlyphIndex(f.NumGlyphs()))
	case key.Matches(msg, m.keys.Delete):
		m.report(m.doc.DeleteGlyph(active))
	case key.Matches(msg, m.keys.Copy):
		m.copyGlyph()
	case key.Matches(msg, m.keys.Paste):
		m.pasteGlyph()
	case key.Matches(msg, m.keys.Reset):
		m.report(m.doc.ResetGlyph(active))
	case key.Matches(msg, m.keys.Exported):
		if g, ok := m.doc.ActiveGlyph(); ok {
			m.report(m.doc.SetGlyphExported(active, !g.Exported))
		}
	case key.Matches(msg, m.keys.ShowAll):
		show := !m.doc.ShouldShowNonExportedGlyphs()
		m.doc.SetShouldShowNonExportedGlyphs(show)
		if g, ok := m.doc.ActiveGlyph(); ok && !show && !g.Exported {
			m.doc.ClearActiveGlyph()
		}
	case key.Matches(msg, m.keys.Paint):
		if hasActive {
			m.mode = modePaint
			m.pen = editor.PenUp
			if g, ok := m.doc.ActiveGlyph(); ok && !g.Size().Contains(m.pixel) {
				m.pixel = font.Point{}
			}
		}
	}
	return nil
}

func (m *model) copyGlyph() {
	g, ok := m.doc.ActiveGlyph()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(font.FormatGlyph(g)); err != nil {
		m.notice = "copy failed: " + err.Error()
		return
	}
	m.doc.SetClipboardHasGlyph(true)
	m.notice = "Copied glyph"
}

// pasteGlyph replaces the pixels of the active glyph. The export flag and
// character code stay with the target.
func (m *model) pasteGlyph() {
	active, ok := m.doc.ActiveGlyphIndex()
	target, _ := m.doc.ActiveGlyph()
	if !ok {
		return
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		m.notice = "paste failed: " + err.Error()
		return
	}
	g, err := font.ParseGlyph(s)
	if err != nil {
		m.doc.SetClipboardHasGlyph(false)
		m.notice = "clipboard holds no glyph"
		return
	}
	g.Exported, g.Code = target.Exported, target.Code
	m.report(m.doc.ModifyGlyph(active, g))
}

// ===== pixel editor =====

func (m *model) paintKey(msg tea.KeyMsg) {
	g, ok := m.doc.ActiveGlyph()
	if !ok {
		m.mode = modeBrowse
		return
	}
	size := g.Size()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leavePaint()
	case key.Matches(msg, m.keys.Up):
		m.movePixel(0, -1, size)
	case key.Matches(msg, m.keys.Down):
		m.movePixel(0, 1, size)
	case key.Matches(msg, m.keys.Left):
		m.movePixel(-1, 0, size)
	case key.Matches(msg, m.keys.Right):
		m.movePixel(1, 0, size)
	case key.Matches(msg, m.keys.Toggle):
		c := font.NewBatchPixelChange(font.Toggle)
		c.Add(m.pixel, true)
		active, _ := m.doc.ActiveGlyphIndex()
		m.report(m.doc.ModifyGlyphPixels(active, c))
	case key.Matches(msg, m.keys.Draw):
		m.togglePen(editor.PenDraw)
	case key.Matches(msg, m.keys.Erase):
		m.togglePen(editor.PenErase)
	}
}

func (m *model) movePixel(dx, dy int, size font.Size) {
	p := font.Point{X: m.pixel.X + dx, Y: m.pixel.Y + dy}
	if !size.Contains(p) {
		return
	}
	m.pixel = p
	if m.pen != editor.PenUp {
		m.stroke.Add(p, m.pen == editor.PenDraw)
	}
}

// togglePen lifts the pen when it is already down with the same tool, and
// otherwise starts a new stroke at the cursor.
func (m *model) togglePen(pen editor.Pen) {
	same := m.pen == pen
	m.commitStroke()
	if same {
		return
	}
	m.pen = pen
	m.stroke = font.NewBatchPixelChange(font.PaintStroke)
	m.stroke.Add(m.pixel, pen == editor.PenDraw)
}

// commitStroke applies the pending stroke as one change.
func (m *model) commitStroke() {
	pen := m.pen
	stroke := m.stroke
	m.pen = editor.PenUp
	m.stroke = font.BatchPixelChange{}
	if pen == editor.PenUp || stroke.Len() == 0 {
		return
	}
	if active, ok := m.doc.ActiveGlyphIndex(); ok {
		m.report(m.doc.ModifyGlyphPixels(active, stroke))
	}
}

func (m *model) leavePaint() {
	m.commitStroke()
	if m.mode == modePaint {
		m.mode = modeBrowse
	}
}

// ===== code tab =====

func (m *model) codeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Format):
		m.doc.SetOutputFormat(nextFormat(m.doc))
	case key.Matches(msg, m.keys.Indent):
		m.doc.SetIndentation(nextIndentation(m.doc))
	case key.Matches(msg, m.keys.BitOrder):
		m.doc.SetMSBEnabled(!m.doc.MSBEnabled())
	case key.Matches(msg, m.keys.Invert):
		m.doc.SetInvertBits(!m.doc.InvertBits())
	case key.Matches(msg, m.keys.Spacing):
		m.doc.SetIncludeLineSpacing(!m.doc.IncludeLineSpacing())
	case key.Matches(msg, m.keys.ExportAll):
		m.doc.SetExportAllEnabled(!m.doc.ExportAllEnabled())
	case key.Matches(msg, m.keys.ArrayName):
		return m.openPrompt(promptArrayName, m.doc.FontArrayName())
	case key.Matches(msg, m.keys.Diff):
		m.code.toggleDiff()
	case key.Matches(msg, m.keys.SideBySide):
		m.code.toggleSideBySide()
	case key.Matches(msg, m.keys.CopyCode):
		if err := clipboard.WriteAll(m.doc.SourceCode()); err != nil {
			m.notice = "copy failed: " + err.Error()
		} else {
			m.notice = "Copied source code"
		}
	case key.Matches(msg, m.keys.Search):
		m.code.startSearch()
		m.code.refresh()
	case key.Matches(msg, m.keys.Next):
		m.code.next(1)
	case key.Matches(msg, m.keys.Prev):
		m.code.next(-1)
	default:
		return m.code.update(msg)
	}
	return nil
}

func nextFormat(doc *document.Model) string {
	fs := doc.OutputFormats()
	cur := doc.OutputFormat()
	for i, f := range fs {
		if f.Label == cur {
			return fs[(i+1)%len(fs)].Label
		}
	}
	return fs[0].Label
}

func nextIndentation(doc *document.Model) string {
	is := doc.IndentationStyles()
	cur := doc.IndentationStyleCaption()
	for i, s := range is {
		if s.Label == cur {
			return is[(i+1)%len(is)].Label
		}
	}
	return is[0].Label
}

// ===== prompts =====

func (m *model) openPrompt(kind promptKind, value string) tea.Cmd {
	m.leavePaint()
	m.prompt = newPrompt(kind, value)
	m.mode = modePrompt
	return nil
}

func (m *model) promptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.submit(m.prompt.kind, m.prompt.value())
		return nil
	}
	return m.prompt.update(msg)
}

func (m *model) submit(kind promptKind, v string) {
	if v == "" {
		return
	}
	switch kind {
	case promptOpen:
		if m.report(m.doc.OpenDocument(v)) {
			m.reload()
			m.notice = "Opened " + v
		}
	case promptSaveAs:
		if filepath.Ext(v) == "" {
			v += font.FileExtension
		}
		m.save(v)
	case promptExport:
		if m.report(m.doc.ExportSourceCode(v)) {
			m.notice = "Exported " + v
		}
	case promptPrint:
		if m.report(m.print(v)) {
			m.notice = "Printed " + v
		}
	case promptImport:
		face, err := importer.Load(v, defaultImportSize, nil)
		if !m.report(err) {
			return
		}
		if m.report(m.doc.ImportFont(face)) {
			m.reload()
			m.notice = fmt.Sprintf("Imported %d glyphs", face.NumGlyphs())
		}
	case promptArrayName:
		m.doc.SetFontArrayName(v)
	}
}

func (m *model) save(path string) {
	if m.report(m.doc.SaveDocument(path)) {
		m.notice = "Saved " + path
	}
}

func (m *model) print(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.doc.PrintFace(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// report shows err in the status bar and reports whether err was nil.
func (m *model) report(err error) bool {
	if err != nil {
		m.notice = "error: " + err.Error()
		return false
	}
	return true
}

func dirValue(dir string) string {
	if dir == "" {
		return ""
	}
	return dir + string(filepath.Separator)
}

func (m *model) defaultDocumentPath() string {
	if path, ok := m.doc.CurrentDocumentPath(); ok {
		return path
	}
	name := "font"
	if f := m.doc.Face(); f != nil && f.Name != "" {
		name = f.Name
	}
	return filepath.Join(m.doc.LastVisitedDirectory(), name+font.FileExtension)
}

func (m *model) defaultExportPath() string {
	ext := ".h"
	if strings.HasPrefix(m.doc.SourceCodeOptions().Format, "python") {
		ext = ".py"
	}
	return filepath.Join(m.doc.LastSourceCodeDirectory(), m.doc.FontArrayName()+ext)
}

func (m *model) defaultPrintPath() string {
	base := strings.TrimSuffix(filepath.Base(m.defaultDocumentPath()), font.FileExtension)
	return filepath.Join(m.doc.LastVisitedDirectory(), base+".png")
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	tabStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeTab  = tabStyle.Reverse(true)
)

func (m model) View() string {
	ui := m.doc.UIState()
	var b strings.Builder
	b.WriteString(m.viewHeader(ui) + "\n\n")

	switch {
	case m.mode == modeHelp:
		b.WriteString(help.RenderHelp(ui, m.keys.groups(ui.SelectedTab)))
	case !m.doc.HasDocument():
		b.WriteString("No document.\n\no: open   I: import   ?: help   q: quit\n")
	case ui.SelectedTab == state.TabCode:
		b.WriteString(m.viewCode())
	default:
		b.WriteString(m.viewEdit())
	}

	if m.mode == modePrompt {
		b.WriteString("\n" + m.prompt.view() + "\n")
	}
	b.WriteString("\n" + statusbar.NewStatusBar().View(ui, m.doc.DocumentTitle(), m.busy, m.notice))
	return b.String()
}

func (m model) viewHeader(ui state.UIState) string {
	edit, code := tabStyle.Render("Edit"), tabStyle.Render("Code")
	if ui.SelectedTab == state.TabCode {
		code = activeTab.Render("Code")
	} else {
		edit = activeTab.Render("Edit")
	}
	if m.noColor {
		edit, code = " Edit ", " Code "
		if ui.SelectedTab == state.TabCode {
			code = "[Code]"
		} else {
			edit = "[Edit]"
		}
	}
	return titleStyle.Render("fontedit") + "  " + edit + code
}

func (m model) viewEdit() string {
	f := m.doc.Face()
	active, hasActive := m.doc.ActiveGlyphIndex()

	idx := m.visible(f)
	rows := max(m.height-8, 5)
	start := 0
	if hasActive {
		for i, v := range idx {
			if v == active {
				start = max(0, i-rows/2)
				break
			}
		}
	}
	end := min(len(idx), start+rows)

	var list strings.Builder
	fmt.Fprintf(&list, "%s  %s  %d glyphs, %d exported\n", titleStyle.Render(f.Name), f.Size(), f.NumGlyphs(), f.NumExported())
	if len(idx) == 0 {
		list.WriteString(faint.Render("  (no glyphs, a: add)") + "\n")
	}
	for _, i := range idx[start:end] {
		g, _ := f.Glyph(i)
		tags := util.ComputeTags(util.GlyphInfo{
			Index:    i,
			Glyph:    g,
			Selected: hasActive && i == active,
			Original: util.Baseline(m.baseline, i),
		})
		row := glyphs.RenderRow(g, tags, m.noColor)
		if hasActive && i == active {
			row = selStyle.Render("> ") + row
		} else {
			row = "  " + row
		}
		list.WriteString(row + "\n")
	}

	g, ok := m.doc.ActiveGlyph()
	if !ok {
		return list.String()
	}
	ed := editor.NewEditor(m.noColor).View(g, m.pixel, m.mode == modePaint, m.pen, m.stroke.Pixels)
	return lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "    ", ed)
}

func (m model) viewCode() string {
	v := options.Values{
		Format:      m.doc.OutputFormat(),
		Indentation: m.doc.IndentationStyleCaption(),
		MSB:         m.doc.MSBEnabled(),
		Invert:      m.doc.InvertBits(),
		LineSpacing: m.doc.IncludeLineSpacing(),
		ExportAll:   m.doc.ExportAllEnabled(),
		ArrayName:   m.doc.FontArrayName(),
	}
	return options.Render(v) + "\n\n" + m.code.view() + "\n" + faint.Render(m.code.status())
}
