package document

import (
	"fontedit/internal/sourcecode"
)

// SourceCodeOptions returns the options the text is generated with.
func (m *Model) SourceCodeOptions() sourcecode.Options { return m.options }

func (m *Model) ExportAllEnabled() bool {
	return m.options.ExportMethod == sourcecode.ExportAll
}

func (m *Model) InvertBits() bool { return m.options.InvertBits }

func (m *Model) MSBEnabled() bool { return m.options.BitOrder == sourcecode.MSB }

func (m *Model) IncludeLineSpacing() bool { return m.options.IncludeLineSpacing }

func (m *Model) ShouldShowNonExportedGlyphs() bool { return m.showNonExported }

func (m *Model) FontArrayName() string { return m.options.ArrayName }

// OutputFormats returns the format catalog.
func (m *Model) OutputFormats() []sourcecode.Format { return sourcecode.Formats() }

// OutputFormat returns the human readable label of the current format.
func (m *Model) OutputFormat() string { return sourcecode.FormatLabel(m.options.Format) }

// IndentationStyles returns the indentation catalog.
func (m *Model) IndentationStyles() []sourcecode.IndentationStyle {
	return sourcecode.IndentationStyles()
}

// IndentationStyleCaption returns the label of the current indentation.
func (m *Model) IndentationStyleCaption() string {
	return sourcecode.IndentationLabel(m.options.Indentation)
}

// updateOptions applies a change to the options. Text is regenerated and the
// session saved only when the options actually changed.
func (m *Model) updateOptions(change func(o *sourcecode.Options)) {
	o := m.options
	change(&o)
	if o == m.options {
		return
	}
	m.options = o
	m.storeOptions()
	m.reloadSourceCode()
}

func (m *Model) SetExportAllEnabled(enabled bool) {
	m.updateOptions(func(o *sourcecode.Options) {
		o.ExportMethod = sourcecode.ExportSelected
		if enabled {
			o.ExportMethod = sourcecode.ExportAll
		}
	})
}

func (m *Model) SetInvertBits(enabled bool) {
	m.updateOptions(func(o *sourcecode.Options) { o.InvertBits = enabled })
}

func (m *Model) SetMSBEnabled(enabled bool) {
	m.updateOptions(func(o *sourcecode.Options) {
		o.BitOrder = sourcecode.LSB
		if enabled {
			o.BitOrder = sourcecode.MSB
		}
	})
}

func (m *Model) SetIncludeLineSpacing(enabled bool) {
	m.updateOptions(func(o *sourcecode.Options) { o.IncludeLineSpacing = enabled })
}

// SetFontArrayName sets the symbol of the generated array. An empty name
// falls back to sourcecode.DefaultArrayName.
func (m *Model) SetFontArrayName(name string) {
	if name == "" {
		name = sourcecode.DefaultArrayName
	}
	m.updateOptions(func(o *sourcecode.Options) { o.ArrayName = name })
}

// SetOutputFormat selects a format by its human readable label. Unknown
// labels are ignored.
func (m *Model) SetOutputFormat(label string) {
	id, ok := sourcecode.FormatByLabel(label)
	if !ok {
		Logger().Debug("ignoring unknown output format", "label", label)
		return
	}
	m.updateOptions(func(o *sourcecode.Options) { o.Format = id })
}

// SetIndentation selects an indentation style by its human readable label.
// Unknown labels are ignored.
func (m *Model) SetIndentation(label string) {
	i, ok := sourcecode.IndentationByLabel(label)
	if !ok {
		Logger().Debug("ignoring unknown indentation", "label", label)
		return
	}
	m.updateOptions(func(o *sourcecode.Options) { o.Indentation = i })
}

// SetShouldShowNonExportedGlyphs is a display preference for the edit
// surface. It does not affect the generated text.
func (m *Model) SetShouldShowNonExportedGlyphs(enabled bool) {
	if m.showNonExported == enabled {
		return
	}
	m.showNonExported = enabled
	m.session.ShowNonExportedGlyphs = enabled
	m.saveSession()
}
