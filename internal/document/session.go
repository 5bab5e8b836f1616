package document

import (
	"fontedit/internal/sourcecode"
)

// RestoreSession loads the session settings and reopens the last document.
// Nothing here is allowed to fail loudly: store errors are logged and a
// document that no longer opens is skipped.
func (m *Model) RestoreSession() {
	sess, err := m.store.Load()
	if err != nil {
		Logger().Warn("session store unavailable", "error", err)
	}
	m.session = sess
	m.showNonExported = sess.ShowNonExportedGlyphs

	o := sourcecode.DefaultOptions()
	if sess.OutputFormat != "" {
		o.Format = sess.OutputFormat
	}
	o.Indentation = sourcecode.Indentation(sess.Indentation)
	o.ExportMethod = sourcecode.ExportSelected
	if sess.ExportAll {
		o.ExportMethod = sourcecode.ExportAll
	}
	o.BitOrder = sourcecode.LSB
	if sess.MSBEnabled {
		o.BitOrder = sourcecode.MSB
	}
	o.InvertBits = sess.InvertBits
	o.IncludeLineSpacing = sess.IncludeLineSpacing
	if sess.FontArrayName != "" {
		o.ArrayName = sess.FontArrayName
	}
	m.options = o.Normalize()

	if sess.LastDocumentPath != "" {
		if err := m.openDocument(sess.LastDocumentPath, true); err == nil {
			return
		}
		m.session.LastDocumentPath = ""
	}
	m.reloadSourceCode()
}

// LastVisitedDirectory is where documents were last opened or saved.
func (m *Model) LastVisitedDirectory() string { return m.session.LastVisitedDirectory }

func (m *Model) setLastVisitedDirectory(dir string) {
	m.session.LastVisitedDirectory = dir
	m.saveSession()
}

// LastSourceCodeDirectory is where source code was last exported.
func (m *Model) LastSourceCodeDirectory() string { return m.session.LastSourceCodeDirectory }

func (m *Model) SetLastSourceCodeDirectory(dir string) {
	if m.session.LastSourceCodeDirectory == dir {
		return
	}
	m.session.LastSourceCodeDirectory = dir
	m.saveSession()
}

func (m *Model) storeOptions() {
	m.session.OutputFormat = m.options.Format
	m.session.Indentation = int(m.options.Indentation)
	m.session.ExportAll = m.options.ExportMethod == sourcecode.ExportAll
	m.session.MSBEnabled = m.options.BitOrder == sourcecode.MSB
	m.session.InvertBits = m.options.InvertBits
	m.session.IncludeLineSpacing = m.options.IncludeLineSpacing
	m.session.FontArrayName = m.options.ArrayName
	m.saveSession()
}

// saveSession writes the session. Failures never block editing.
func (m *Model) saveSession() {
	if err := m.store.Save(m.session); err != nil {
		Logger().Warn("could not save session", "error", err)
	}
}
