package sourcecode

// ExportMethod selects which glyphs are emitted.
type ExportMethod int

const (
	ExportAll ExportMethod = iota
	ExportSelected
)

// BitOrder decides which bit of a packed byte holds the leftmost pixel.
type BitOrder int

const (
	MSB BitOrder = iota
	LSB
)

// DefaultArrayName is used when Options.ArrayName is empty.
const DefaultArrayName = "font"

// Options configures Generate.
type Options struct {
	ExportMethod       ExportMethod
	BitOrder           BitOrder
	InvertBits         bool
	IncludeLineSpacing bool
	Indentation        Indentation
	Format             string // catalog identifier
	ArrayName          string
}

// DefaultOptions mirrors a freshly started editor.
func DefaultOptions() Options {
	return Options{
		ExportMethod: ExportAll,
		BitOrder:     MSB,
		Indentation:  Tab,
		Format:       FormatC,
		ArrayName:    DefaultArrayName,
	}
}

// Normalize replaces unknown or empty settings with catalog defaults.
func (o Options) Normalize() Options {
	if _, ok := lookupFormat(o.Format); !ok {
		o.Format = Formats()[0].ID
	}
	if _, ok := lookupIndentation(o.Indentation); !ok {
		o.Indentation = IndentationStyles()[0].Style
	}
	if o.ArrayName == "" {
		o.ArrayName = DefaultArrayName
	}
	return o
}
