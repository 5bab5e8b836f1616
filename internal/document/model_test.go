package document

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fontedit/internal/config"
	"fontedit/internal/font"
	"fontedit/internal/sourcecode"
	"fontedit/internal/tui/state"
)

func testFace(t *testing.T, n int) *font.Face {
	t.Helper()
	f := font.NewFace("Test", 8, font.Size{Width: 8, Height: 8})
	for i := 0; i < n; i++ {
		g := font.NewGlyph(f.Size())
		g.Code = 'A' + rune(i)
		if err := f.AppendGlyph(g); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// recorder collects events. Safe for use from the regeneration goroutine.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(n Notice) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := 0
	for _, e := range r.events {
		if e.Notice == n {
			c++
		}
	}
	return c
}

func (r *recorder) last(n Notice) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Notice == n {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func newModel(t *testing.T, opts ...Option) (*Model, *recorder) {
	t.Helper()
	m := New(opts...)
	t.Cleanup(m.Close)
	rec := &recorder{}
	m.Subscribe(rec.listen)
	return m, rec
}

func waitIdle(t *testing.T, m *Model) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.WaitIdle(ctx); err != nil {
		t.Fatalf("wait idle: %v", err)
	}
}

func TestNewModelHasNoDocument(t *testing.T) {
	m, _ := newModel(t)
	if m.HasDocument() {
		t.Fatalf("new model should have no document")
	}
	if m.DocumentTitle() != "" {
		t.Fatalf("expected empty title, got %q", m.DocumentTitle())
	}
	ui := m.UIState()
	if ui.Actions != 0 || ui.LastUserAction != state.UserIdle {
		t.Fatalf("expected idle state with no actions, got %+v", ui)
	}
	if m.SourceCode() != "" {
		t.Fatalf("expected no text")
	}
}

func TestImportFont(t *testing.T) {
	m, rec := newModel(t)
	if err := m.ImportFont(testFace(t, 3)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if rec.count(NoticeFaceLoaded) != 1 {
		t.Fatalf("expected one FaceLoaded notice")
	}
	if rec.count(NoticeSourceCodeUpdating) != 1 {
		t.Fatalf("expected one SourceCodeUpdating notice")
	}
	if m.DocumentTitle() != "New Font" {
		t.Fatalf("unexpected title %q", m.DocumentTitle())
	}
	if _, ok := m.CurrentDocumentPath(); ok {
		t.Fatalf("imported face should have no path")
	}
	if m.IsModified() {
		t.Fatalf("imported face should not be modified")
	}

	ui := m.UIState()
	if !ui.Actions.Has(state.ActionAddGlyph) || !ui.Actions.Has(state.ActionExport) {
		t.Fatalf("document actions missing: %v", ui.Actions)
	}
	if ui.Actions.Has(state.ActionDeleteGlyph) || ui.Actions.Has(state.ActionCopy) {
		t.Fatalf("glyph actions enabled without selection: %v", ui.Actions)
	}
	if ui.StatusBarMessage != state.MessageLoadedFace {
		t.Fatalf("unexpected message %v", ui.StatusBarMessage)
	}

	waitIdle(t, m)
	if !strings.Contains(m.SourceCode(), "const uint8_t font[] = {") {
		t.Fatalf("unexpected text:\n%s", m.SourceCode())
	}
}

func TestImportNilFace(t *testing.T) {
	m, _ := newModel(t)
	if err := m.ImportFont(nil); err == nil {
		t.Fatalf("expected error")
	}
	if m.HasDocument() {
		t.Fatalf("state changed on failed import")
	}
}

func TestSelection(t *testing.T) {
	m, rec := newModel(t)
	if err := m.SetActiveGlyphIndex(0); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	_ = m.ImportFont(testFace(t, 3))

	if err := m.SetActiveGlyphIndex(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	e, ok := rec.last(NoticeActiveGlyphChanged)
	if !ok || e.GlyphIndex != 1 || e.Glyph == nil || e.Glyph.Code != 'B' {
		t.Fatalf("unexpected ActiveGlyphChanged %+v", e)
	}
	ui := m.UIState()
	if !ui.Actions.Has(state.ActionDeleteGlyph) || ui.LastUserAction != state.UserLoadedGlyph {
		t.Fatalf("glyph actions missing: %+v", ui)
	}
	if ui.Actions.Has(state.ActionPaste) {
		t.Fatalf("paste enabled with empty clipboard")
	}
	m.SetClipboardHasGlyph(true)
	if !m.UIState().Actions.Has(state.ActionPaste) {
		t.Fatalf("paste should be enabled")
	}

	if err := m.SetActiveGlyphIndex(7); !errors.Is(err, font.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if i, _ := m.ActiveGlyphIndex(); i != 1 {
		t.Fatalf("selection changed on error: %d", i)
	}

	m.ClearActiveGlyph()
	if _, ok := m.ActiveGlyphIndex(); ok {
		t.Fatalf("selection not cleared")
	}
	if m.UIState().Actions.Has(state.ActionCopy) {
		t.Fatalf("copy enabled without selection")
	}
}

func TestUIStateChangedOnlyOnChange(t *testing.T) {
	m, rec := newModel(t)
	_ = m.ImportFont(testFace(t, 1))
	before := rec.count(NoticeUIStateChanged)

	m.RegisterInputEvent(state.ActionTabCode)
	m.RegisterInputEvent(state.ActionTabCode)
	if got := rec.count(NoticeUIStateChanged) - before; got != 1 {
		t.Fatalf("expected one UIStateChanged, got %d", got)
	}
	if m.UIState().SelectedTab != state.TabCode {
		t.Fatalf("tab not selected")
	}
}

func TestModifyGlyphPixels(t *testing.T) {
	m, rec := newModel(t)
	_ = m.ImportFont(testFace(t, 1))
	_ = m.SetActiveGlyphIndex(0)
	waitIdle(t, m)

	c := font.NewBatchPixelChange(font.Set)
	c.Add(font.Point{X: 0, Y: 0}, true)
	if err := m.ModifyGlyphPixels(0, c); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if !m.IsModified() || m.DocumentTitle() != "New Font*" {
		t.Fatalf("expected modified title, got %q", m.DocumentTitle())
	}
	e, _ := rec.last(NoticeActiveGlyphChanged)
	if e.Glyph == nil || !e.Glyph.Pixel(0, 0) {
		t.Fatalf("active glyph notice does not carry the edit")
	}

	waitIdle(t, m)
	var first string
	for _, line := range strings.Split(m.SourceCode(), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "0x") {
			first = strings.TrimSpace(line)
			break
		}
	}
	if !strings.HasPrefix(first, "0x80") {
		t.Fatalf("first row should begin with 0x80, got %q", first)
	}
}

func TestInvalidChangeLeavesStateUnchanged(t *testing.T) {
	m, _ := newModel(t)
	_ = m.ImportFont(testFace(t, 1))
	want := m.Face()

	c := font.NewBatchPixelChange(font.Set)
	c.Add(font.Point{X: 1, Y: 1}, true)
	c.Add(font.Point{X: 8, Y: 0}, true)
	if err := m.ModifyGlyphPixels(0, c); !errors.Is(err, font.ErrCoordinateOutOfRange) {
		t.Fatalf("expected ErrCoordinateOutOfRange, got %v", err)
	}
	if !m.Face().Equal(want) || m.IsModified() {
		t.Fatalf("face changed by a rejected change")
	}

	wrong := font.NewGlyph(font.Size{Width: 4, Height: 4})
	if err := m.AppendGlyph(wrong); !errors.Is(err, font.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := m.DeleteGlyph(3); !errors.Is(err, font.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if m.IsModified() {
		t.Fatalf("rejected edits marked the document modified")
	}
}

func TestDeleteGlyphAdjustsSelection(t *testing.T) {
	m, _ := newModel(t)
	_ = m.ImportFont(testFace(t, 3))

	_ = m.SetActiveGlyphIndex(2)
	if err := m.DeleteGlyph(0); err != nil {
		t.Fatal(err)
	}
	if i, ok := m.ActiveGlyphIndex(); !ok || i != 1 {
		t.Fatalf("selection should follow its glyph, got %d", i)
	}
	if g, _ := m.ActiveGlyph(); g.Code != 'C' {
		t.Fatalf("wrong active glyph %q", g.Code)
	}

	if err := m.DeleteGlyph(1); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.ActiveGlyphIndex(); ok {
		t.Fatalf("selection should be cleared when its glyph is deleted")
	}
	if m.UIState().Actions.Has(state.ActionDeleteGlyph) {
		t.Fatalf("delete still enabled")
	}
}

func TestResetAndExportedFlag(t *testing.T) {
	m, _ := newModel(t)
	f := testFace(t, 2)
	g, _ := f.Glyph(0)
	_ = g.SetPixel(3, 3, true)
	_ = f.SetGlyph(0, g)
	_ = m.ImportFont(f)

	if err := m.ResetGlyph(0); err != nil {
		t.Fatal(err)
	}
	if g, _ := m.Face().Glyph(0); !g.IsEmpty() {
		t.Fatalf("reset glyph still has ink")
	}

	if err := m.SetGlyphExported(1, false); err != nil {
		t.Fatal(err)
	}
	m.SetExportAllEnabled(false)
	waitIdle(t, m)
	if strings.Contains(m.SourceCode(), "Glyph 1:") {
		t.Fatalf("non-exported glyph in text:\n%s", m.SourceCode())
	}
}

func TestSaveAndOpen(t *testing.T) {
	store := &config.MemoryStore{Session: config.Default()}
	m, rec := newModel(t, WithSessionStore(store))
	_ = m.ImportFont(testFace(t, 2))
	_ = m.AppendGlyph(font.NewGlyph(font.Size{Width: 8, Height: 8}))

	dir := t.TempDir()
	path := filepath.Join(dir, "demo"+font.FileExtension)
	if err := m.SaveDocument(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if m.IsModified() || m.DocumentTitle() != "demo.fontedit" {
		t.Fatalf("unexpected title after save %q", m.DocumentTitle())
	}
	if e, _ := rec.last(NoticeDocumentTitleChanged); e.Title != "demo.fontedit" {
		t.Fatalf("title notice carries %q", e.Title)
	}
	if store.Session.LastVisitedDirectory != dir {
		t.Fatalf("last visited directory not stored")
	}
	saved := m.Face()

	m.CloseCurrentDocument()
	if err := m.OpenDocument(path); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !m.Face().Equal(saved) {
		t.Fatalf("face changed across save and open")
	}
	if p, ok := m.CurrentDocumentPath(); !ok || p != path {
		t.Fatalf("unexpected path %q", p)
	}
	if store.Session.LastDocumentPath != path {
		t.Fatalf("last document path not stored")
	}
}

func TestOpenFailures(t *testing.T) {
	m, rec := newModel(t)
	_ = m.ImportFont(testFace(t, 1))
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.fontedit")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := m.OpenDocument(bad)
	if !errors.Is(err, ErrDocumentParse) || !errors.Is(err, font.ErrMalformed) {
		t.Fatalf("expected ErrDocumentParse, got %v", err)
	}
	if e, ok := rec.last(NoticeDocumentError); !ok || !errors.Is(e.Err, ErrDocumentParse) {
		t.Fatalf("expected DocumentError notice")
	}

	huge := filepath.Join(dir, "huge.fontedit")
	data := `{"version":1,"width":1125899906842624,"height":1,"glyphs":[{"exported":true,"rows":["00"]}]}`
	if err := os.WriteFile(huge, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.OpenDocument(huge); !errors.Is(err, ErrDocumentParse) {
		t.Fatalf("oversized cell: expected ErrDocumentParse, got %v", err)
	}

	err = m.OpenDocument(filepath.Join(dir, "missing.fontedit"))
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !m.HasDocument() || m.DocumentTitle() != "New Font" {
		t.Fatalf("failed open replaced the document")
	}
}

func TestSaveFailure(t *testing.T) {
	m, rec := newModel(t)
	if err := m.SaveDocument("x"); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	_ = m.ImportFont(testFace(t, 1))
	_ = m.AppendGlyph(font.NewGlyph(font.Size{Width: 8, Height: 8}))

	path := filepath.Join(t.TempDir(), "no", "such", "dir", "f.fontedit")
	if err := m.SaveDocument(path); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if rec.count(NoticeDocumentError) != 1 {
		t.Fatalf("expected DocumentError notice")
	}
	if !m.IsModified() {
		t.Fatalf("failed save cleared the modified flag")
	}
}

func TestCloseCurrentDocument(t *testing.T) {
	m, rec := newModel(t)
	m.CloseCurrentDocument()
	if rec.count(NoticeDocumentClosed) != 0 {
		t.Fatalf("closing without a document should do nothing")
	}

	_ = m.ImportFont(testFace(t, 2))
	_ = m.SetActiveGlyphIndex(0)
	waitIdle(t, m)
	m.CloseCurrentDocument()

	if m.HasDocument() || m.SourceCode() != "" || m.DocumentTitle() != "" {
		t.Fatalf("document not fully closed")
	}
	if rec.count(NoticeDocumentClosed) != 1 {
		t.Fatalf("expected DocumentClosed notice")
	}
	ui := m.UIState()
	if ui.Actions != 0 || ui.LastUserAction != state.UserIdle {
		t.Fatalf("expected idle state, got %+v", ui)
	}
}

func TestOptions(t *testing.T) {
	store := &config.MemoryStore{Session: config.Default()}
	m, _ := newModel(t, WithSessionStore(store))
	_ = m.ImportFont(testFace(t, 1))
	waitIdle(t, m)

	m.SetOutputFormat("Python List")
	if m.OutputFormat() != "Python List" || store.Session.OutputFormat != sourcecode.FormatPythonList {
		t.Fatalf("format not applied: %q", m.OutputFormat())
	}
	saves := store.Saves
	m.SetOutputFormat("COBOL")
	m.SetIndentation("3 Spaces")
	m.SetOutputFormat("Python List")
	if m.OutputFormat() != "Python List" || store.Saves != saves {
		t.Fatalf("ignored or unchanged options touched the session")
	}

	m.SetIndentation("2 Spaces")
	m.SetMSBEnabled(false)
	m.SetInvertBits(true)
	m.SetIncludeLineSpacing(true)
	m.SetFontArrayName("")
	if m.IndentationStyleCaption() != "2 Spaces" || m.MSBEnabled() || !m.InvertBits() || !m.IncludeLineSpacing() {
		t.Fatalf("options not applied")
	}
	if m.FontArrayName() != sourcecode.DefaultArrayName {
		t.Fatalf("empty array name should fall back")
	}

	waitIdle(t, m)
	want := sourcecode.Generate(m.Face(), m.SourceCodeOptions())
	if m.SourceCode() != want {
		t.Fatalf("text does not match the current options")
	}
}

func TestShowNonExportedIsStored(t *testing.T) {
	store := &config.MemoryStore{Session: config.Default()}
	m, _ := newModel(t, WithSessionStore(store))
	m.SetShouldShowNonExportedGlyphs(false)
	if m.ShouldShowNonExportedGlyphs() || store.Session.ShowNonExportedGlyphs {
		t.Fatalf("preference not stored")
	}
}

func TestRestoreSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last.fontedit")
	if err := font.Save(path, testFace(t, 2)); err != nil {
		t.Fatal(err)
	}

	sess := config.Default()
	sess.LastDocumentPath = path
	sess.OutputFormat = sourcecode.FormatArduino
	sess.Indentation = 8
	sess.FontArrayName = "glyphs"
	store := &config.MemoryStore{Session: sess}

	m, _ := newModel(t, WithSessionStore(store))
	m.RestoreSession()
	if !m.HasDocument() || m.DocumentTitle() != "last.fontedit" {
		t.Fatalf("last document not reopened")
	}
	if m.OutputFormat() != "Arduino" || m.IndentationStyleCaption() != "8 Spaces" || m.FontArrayName() != "glyphs" {
		t.Fatalf("options not restored")
	}
	waitIdle(t, m)
	if !strings.Contains(m.SourceCode(), "glyphs[] PROGMEM") {
		t.Fatalf("text not generated with restored options:\n%s", m.SourceCode())
	}
}

func TestRestoreSessionMissingDocument(t *testing.T) {
	sess := config.Default()
	sess.LastDocumentPath = filepath.Join(t.TempDir(), "gone.fontedit")
	store := &config.MemoryStore{Session: sess}

	m, rec := newModel(t, WithSessionStore(store))
	m.RestoreSession()
	if m.HasDocument() {
		t.Fatalf("missing document should not load")
	}
	if rec.count(NoticeDocumentError) != 0 {
		t.Fatalf("restore should fail silently")
	}
}

func TestRestoreSessionStoreError(t *testing.T) {
	store := &config.MemoryStore{Err: errors.New("disk on fire")}
	m, _ := newModel(t, WithSessionStore(store))
	m.RestoreSession()
	if m.OutputFormat() != "C/C++" {
		t.Fatalf("expected default options, got %q", m.OutputFormat())
	}
	_ = m.ImportFont(testFace(t, 1))
	if !m.HasDocument() {
		t.Fatalf("editing blocked by store failure")
	}
}

func TestExportSourceCode(t *testing.T) {
	store := &config.MemoryStore{Session: config.Default()}
	m, _ := newModel(t, WithSessionStore(store))
	if err := m.ExportSourceCode("x.h"); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	_ = m.ImportFont(testFace(t, 2))

	dir := t.TempDir()
	path := filepath.Join(dir, "font.h")
	if err := m.ExportSourceCode(path); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sourcecode.Generate(m.Face(), m.SourceCodeOptions()) {
		t.Fatalf("exported text differs from the generator output")
	}
	if m.LastSourceCodeDirectory() != dir || store.Session.LastSourceCodeDirectory != dir {
		t.Fatalf("last source code directory not stored")
	}
}

func TestPrintFace(t *testing.T) {
	m, _ := newModel(t)
	var buf bytes.Buffer
	if err := m.PrintFace(&buf); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	_ = m.ImportFont(testFace(t, 2))
	if err := m.PrintFace(&buf); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
}

func TestListenersOrderAndUnsubscribe(t *testing.T) {
	m := New()
	t.Cleanup(m.Close)

	var got []string
	listen := func(name string) Listener {
		return func(e Event) {
			if e.Notice == NoticeFaceLoaded {
				got = append(got, name)
			}
		}
	}
	m.Subscribe(listen("a"))
	unsubscribe := m.Subscribe(listen("b"))
	m.Subscribe(listen("c"))
	unsubscribe()
	unsubscribe()
	m.Subscribe(listen("d"))

	_ = m.ImportFont(testFace(t, 1))
	if strings.Join(got, ",") != "a,c,d" {
		t.Fatalf("listeners called as %v, want [a c d]", got)
	}
}
