package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"fontedit/internal/config"
	"fontedit/internal/font"
	"fontedit/internal/sheet"
	"fontedit/internal/sourcecode"
	"fontedit/internal/tui/state"
)

// untitled is the title of a face that has never been saved.
const untitled = "New Font"

// Model owns the open face, the source code options and the generated text.
//
// Mutations, lifecycle calls and option setters are meant to be called from
// a single control flow (the edit surface). SourceCode and WaitIdle are safe
// to call from any goroutine.
type Model struct {
	face     *font.Face
	active   int
	hasPath  bool
	path     string
	title    string
	modified bool

	options         sourcecode.Options
	showNonExported bool
	clipboardGlyph  bool

	ui state.UIState

	store   config.Store
	session config.Session

	dispatch  Dispatcher
	generate  GenerateFunc
	regen     *regenerator
	listenMu  sync.RWMutex
	listeners []subscription
	nextID    int

	textMu  sync.Mutex
	text    string
	textGen uint64
}

// Option configures New.
type Option func(*Model)

// WithSessionStore sets where session settings are loaded from and saved to.
func WithSessionStore(s config.Store) Option {
	return func(m *Model) { m.store = s }
}

// WithDispatcher sets how SourceCodeChanged reaches the edit surface.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Model) { m.dispatch = d }
}

// WithGenerator replaces the source code generator.
func WithGenerator(g GenerateFunc) Option {
	return func(m *Model) { m.generate = g }
}

// New returns a model with no document and starts its regeneration worker.
// Call Close to stop the worker.
func New(opts ...Option) *Model {
	m := &Model{
		active:          -1,
		options:         sourcecode.DefaultOptions(),
		showNonExported: true,
		store:           &config.MemoryStore{Session: config.Default()},
		session:         config.Default(),
		dispatch:        directDispatch,
		generate:        sourcecode.Generate,
	}
	for _, o := range opts {
		o(m)
	}
	m.regen = newRegenerator(m.generate, m.setText, func() {
		m.dispatch(func() { m.emit(Event{Notice: NoticeSourceCodeChanged}) })
	})
	m.ui = state.Apply(state.UIState{}, state.UserIdle, m.inputs())
	return m
}

// Close stops the regeneration worker. A regeneration in progress is
// allowed to finish but its result is not waited for.
func (m *Model) Close() {
	m.regen.stop()
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a function that removes it. Listeners
// are called in subscription order.
func (m *Model) Subscribe(l Listener) (unsubscribe func()) {
	m.listenMu.Lock()
	defer m.listenMu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, subscription{id: id, l: l})
	return func() {
		m.listenMu.Lock()
		defer m.listenMu.Unlock()
		m.listeners = slices.DeleteFunc(m.listeners, func(s subscription) bool { return s.id == id })
	}
}

func (m *Model) emit(e Event) {
	m.listenMu.RLock()
	ls := make([]Listener, len(m.listeners))
	for i, s := range m.listeners {
		ls[i] = s.l
	}
	m.listenMu.RUnlock()
	for _, l := range ls {
		l(e)
	}
}

func (m *Model) emitError(err error) {
	Logger().Error("document error", "error", err)
	m.emit(Event{Notice: NoticeDocumentError, Err: err})
}

// ===== state accessors =====

// HasDocument reports whether a face is loaded.
func (m *Model) HasDocument() bool { return m.face != nil }

// Face returns a copy of the loaded face, or nil.
func (m *Model) Face() *font.Face { return m.face.Clone() }

// UIState returns the current action state.
func (m *Model) UIState() state.UIState { return m.ui }

// CurrentDocumentPath returns the path the document was opened from or last
// saved to.
func (m *Model) CurrentDocumentPath() (string, bool) { return m.path, m.hasPath }

func (m *Model) DocumentTitle() string { return m.title }

// IsModified reports unsaved changes.
func (m *Model) IsModified() bool { return m.modified }

// ActiveGlyphIndex returns the selected glyph index.
func (m *Model) ActiveGlyphIndex() (int, bool) { return m.active, m.active >= 0 }

// ActiveGlyph returns a copy of the selected glyph.
func (m *Model) ActiveGlyph() (font.Glyph, bool) {
	if m.face == nil || m.active < 0 {
		return font.Glyph{}, false
	}
	g, err := m.face.Glyph(m.active)
	return g, err == nil
}

// SourceCode returns the most recently published text.
func (m *Model) SourceCode() string {
	m.textMu.Lock()
	defer m.textMu.Unlock()
	return m.text
}

// WaitIdle blocks until the text for the latest change has been published.
func (m *Model) WaitIdle(ctx context.Context) error {
	return m.regen.waitIdle(ctx)
}

func (m *Model) setText(gen uint64, text string) {
	m.textMu.Lock()
	defer m.textMu.Unlock()
	if gen < m.textGen {
		return
	}
	m.text = text
	m.textGen = gen
}

// ===== action state =====

func (m *Model) inputs() state.Inputs {
	return state.Inputs{
		HasDocument:       m.face != nil,
		HasSelectedGlyph:  m.face != nil && m.active >= 0,
		ClipboardHasGlyph: m.clipboardGlyph,
	}
}

func (m *Model) setUIState(s state.UIState) {
	if s == m.ui {
		return
	}
	m.ui = s
	m.emit(Event{Notice: NoticeUIStateChanged, UIState: s})
}

// RegisterInputEvent records an interface or user action and recomputes the
// action flags.
func (m *Model) RegisterInputEvent(e state.InputEvent) {
	m.setUIState(state.Apply(m.ui, e, m.inputs()))
}

func (m *Model) recomputeUIState() {
	m.setUIState(state.Compute(m.ui, m.inputs()))
}

// SetClipboardHasGlyph tells the model whether the edit surface's clipboard
// holds something that can be pasted as a glyph.
func (m *Model) SetClipboardHasGlyph(ok bool) {
	if m.clipboardGlyph == ok {
		return
	}
	m.clipboardGlyph = ok
	m.recomputeUIState()
}

// ===== lifecycle =====

// ImportFont replaces the current document with face. The new document has no
// path until it is saved.
func (m *Model) ImportFont(face *font.Face) error {
	if face == nil {
		return errors.New("import: no face")
	}
	m.loadFace(face.Clone())
	m.setDocumentPath("", false)
	Logger().Info("font imported", "name", face.Name, "glyphs", face.NumGlyphs(), "cell", face.Size().String())
	return nil
}

// OpenDocument loads a document. Failures are published as DocumentError and
// returned; the current document is kept.
func (m *Model) OpenDocument(path string) error {
	return m.openDocument(path, false)
}

func (m *Model) openDocument(path string, failSilently bool) error {
	face, err := font.Load(path)
	if err != nil {
		if errors.Is(err, font.ErrMalformed) {
			err = fmt.Errorf("open %s: %w: %w", path, ErrDocumentParse, err)
		} else {
			err = fmt.Errorf("open %s: %w: %w", path, ErrIO, err)
		}
		if failSilently {
			Logger().Debug("open failed silently", "error", err)
		} else {
			m.emitError(err)
		}
		return err
	}

	m.loadFace(face)
	m.setDocumentPath(path, true)
	m.session.LastDocumentPath = path
	m.setLastVisitedDirectory(filepath.Dir(path))
	Logger().Info("document opened", "path", path, "glyphs", face.NumGlyphs())
	return nil
}

func (m *Model) loadFace(face *font.Face) {
	hadSelection := m.active >= 0
	m.face = face
	m.active = -1
	m.modified = false
	m.emit(Event{Notice: NoticeFaceLoaded})
	if hadSelection {
		m.emit(Event{Notice: NoticeActiveGlyphChanged, GlyphIndex: -1})
	}
	m.RegisterInputEvent(state.UserLoadedDocument)
	m.reloadSourceCode()
}

// SaveDocument writes the document to path and makes path the current
// document path.
func (m *Model) SaveDocument(path string) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := font.Save(path, m.face); err != nil {
		err = fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
		m.emitError(err)
		return err
	}
	m.modified = false
	m.setDocumentPath(path, true)
	m.session.LastDocumentPath = path
	m.setLastVisitedDirectory(filepath.Dir(path))
	Logger().Info("document saved", "path", path)
	return nil
}

// CloseCurrentDocument discards the face and the generated text. It does
// nothing when no document is loaded.
func (m *Model) CloseCurrentDocument() {
	if m.face == nil {
		return
	}
	hadSelection := m.active >= 0
	m.face = nil
	m.active = -1
	m.modified = false
	m.regen.reset("")
	m.emit(Event{Notice: NoticeSourceCodeChanged})
	m.setDocumentPath("", false)
	m.session.LastDocumentPath = ""
	m.saveSession()

	if hadSelection {
		m.emit(Event{Notice: NoticeActiveGlyphChanged, GlyphIndex: -1})
	}
	m.emit(Event{Notice: NoticeDocumentClosed})
	m.RegisterInputEvent(state.UserIdle)
	Logger().Info("document closed")
}

func (m *Model) setDocumentPath(path string, ok bool) {
	m.path, m.hasPath = path, ok
	m.updateDocumentTitle()
}

func (m *Model) updateDocumentTitle() {
	var title string
	if m.face != nil {
		title = untitled
		if m.hasPath {
			title = filepath.Base(m.path)
		}
		if m.modified {
			title += "*"
		}
	}
	if title == m.title {
		return
	}
	m.title = title
	m.emit(Event{Notice: NoticeDocumentTitleChanged, Title: title})
}

// SetActiveGlyphIndex selects the glyph the edit surface works on.
func (m *Model) SetActiveGlyphIndex(index int) error {
	if m.face == nil {
		return ErrNoDocument
	}
	g, err := m.face.Glyph(index)
	if err != nil {
		return err
	}
	changed := m.active != index
	m.active = index
	if changed {
		m.emit(Event{Notice: NoticeActiveGlyphChanged, Glyph: &g, GlyphIndex: index})
	}
	m.RegisterInputEvent(state.UserLoadedGlyph)
	return nil
}

// ClearActiveGlyph deselects the active glyph.
func (m *Model) ClearActiveGlyph() {
	if m.active < 0 {
		return
	}
	m.active = -1
	m.emit(Event{Notice: NoticeActiveGlyphChanged, GlyphIndex: -1})
	if m.face != nil {
		m.RegisterInputEvent(state.UserLoadedDocument)
	}
}

// ===== mutations =====

// AppendGlyph adds g at the end of the face.
func (m *Model) AppendGlyph(g font.Glyph) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.AppendGlyph(g); err != nil {
		return err
	}
	m.afterMutation(-1)
	return nil
}

// DeleteGlyph removes a glyph. The selection follows the glyph it pointed at
// and is cleared when that glyph is deleted.
func (m *Model) DeleteGlyph(index int) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.DeleteGlyph(index); err != nil {
		return err
	}
	switch {
	case m.active == index:
		m.active = -1
		m.emit(Event{Notice: NoticeActiveGlyphChanged, GlyphIndex: -1})
		m.RegisterInputEvent(state.UserLoadedDocument)
	case m.active > index:
		m.active--
		m.emitActiveGlyph()
	}
	m.afterMutation(-1)
	return nil
}

// ModifyGlyph replaces the glyph at index.
func (m *Model) ModifyGlyph(index int, g font.Glyph) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.SetGlyph(index, g); err != nil {
		return err
	}
	m.afterMutation(index)
	return nil
}

// ModifyGlyphPixels applies a batch pixel change to the glyph at index. The
// change is applied completely or not at all.
func (m *Model) ModifyGlyphPixels(index int, c font.BatchPixelChange) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.ApplyChange(index, c); err != nil {
		return err
	}
	m.afterMutation(index)
	return nil
}

// ResetGlyph clears the bitmap of the glyph at index.
func (m *Model) ResetGlyph(index int) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.ResetGlyph(index); err != nil {
		return err
	}
	m.afterMutation(index)
	return nil
}

func (m *Model) SetGlyphExported(index int, exported bool) error {
	if m.face == nil {
		return ErrNoDocument
	}
	if err := m.face.SetGlyphExported(index, exported); err != nil {
		return err
	}
	m.afterMutation(index)
	return nil
}

// afterMutation runs the side effects shared by every successful edit.
// touched is the modified glyph index, or -1.
func (m *Model) afterMutation(touched int) {
	m.modified = true
	m.updateDocumentTitle()
	if touched >= 0 && touched == m.active {
		m.emitActiveGlyph()
	}
	m.recomputeUIState()
	m.reloadSourceCode()
}

func (m *Model) emitActiveGlyph() {
	g, ok := m.ActiveGlyph()
	if !ok {
		return
	}
	m.emit(Event{Notice: NoticeActiveGlyphChanged, Glyph: &g, GlyphIndex: m.active})
}

// reloadSourceCode submits a regeneration for the current face and options.
func (m *Model) reloadSourceCode() {
	if m.face == nil {
		return
	}
	m.emit(Event{Notice: NoticeSourceCodeUpdating})
	m.regen.submit(m.face.Clone(), m.options)
}

// ===== exports =====

// ExportSourceCode writes the source code for the current state to path.
// The text is generated directly so it never lags behind the last edit.
func (m *Model) ExportSourceCode(path string) error {
	if m.face == nil {
		return ErrNoDocument
	}
	text := m.generate(m.face.Clone(), m.options)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		err = fmt.Errorf("export %s: %w: %w", path, ErrIO, err)
		m.emitError(err)
		return err
	}
	m.SetLastSourceCodeDirectory(filepath.Dir(path))
	Logger().Info("source code exported", "path", path, "format", m.options.Format)
	return nil
}

// PrintFace renders the face as a PNG glyph sheet. Non-exported glyphs are
// left out unless they are shown in the edit surface.
func (m *Model) PrintFace(w io.Writer) error {
	if m.face == nil {
		return ErrNoDocument
	}
	opts := sheet.DefaultOptions()
	opts.ShowNonExported = m.showNonExported
	if err := sheet.Render(w, m.face, opts); err != nil {
		err = fmt.Errorf("print: %w: %w", ErrIO, err)
		m.emitError(err)
		return err
	}
	return nil
}
