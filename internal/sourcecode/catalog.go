package sourcecode

import "strings"

// Format identifiers.
const (
	FormatC           = "c"
	FormatArduino     = "arduino"
	FormatPythonList  = "python_list"
	FormatPythonBytes = "python_bytes"
)

// Format pairs a machine identifier with its human readable label.
type Format struct {
	ID    string
	Label string
}

var formats = []Format{
	{FormatC, "C/C++"},
	{FormatArduino, "Arduino"},
	{FormatPythonList, "Python List"},
	{FormatPythonBytes, "Python Bytes"},
}

// Formats returns the output format catalog in display order. The first
// entry is the fallback for unknown identifiers.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// FormatByLabel resolves a human readable label.
func FormatByLabel(label string) (string, bool) {
	for _, f := range formats {
		if f.Label == label {
			return f.ID, true
		}
	}
	return "", false
}

// FormatLabel returns the label for id, falling back to the first entry.
func FormatLabel(id string) string {
	if f, ok := lookupFormat(id); ok {
		return f.Label
	}
	return formats[0].Label
}

func lookupFormat(id string) (Format, bool) {
	for _, f := range formats {
		if f.ID == id {
			return f, true
		}
	}
	return Format{}, false
}

// Indentation is the whitespace put in front of every line inside the array
// body: Tab or a number of spaces.
type Indentation int

// Tab indents with a single tab character. Positive values are space counts.
const Tab Indentation = 0

// String returns the literal whitespace.
func (i Indentation) String() string {
	if i <= Tab {
		return "\t"
	}
	return strings.Repeat(" ", int(i))
}

// IndentationStyle pairs an indentation with its label.
type IndentationStyle struct {
	Style Indentation
	Label string
}

var indentationStyles = []IndentationStyle{
	{Tab, "Tab"},
	{2, "2 Spaces"},
	{4, "4 Spaces"},
	{8, "8 Spaces"},
}

// IndentationStyles returns the ordered indentation catalog.
func IndentationStyles() []IndentationStyle {
	return append([]IndentationStyle(nil), indentationStyles...)
}

// IndentationByLabel resolves a human readable label.
func IndentationByLabel(label string) (Indentation, bool) {
	for _, s := range indentationStyles {
		if s.Label == label {
			return s.Style, true
		}
	}
	return Tab, false
}

// IndentationLabel returns the label for i, falling back to the first entry.
func IndentationLabel(i Indentation) string {
	if s, ok := lookupIndentation(i); ok {
		return s.Label
	}
	return indentationStyles[0].Label
}

func lookupIndentation(i Indentation) (IndentationStyle, bool) {
	for _, s := range indentationStyles {
		if s.Style == i {
			return s, true
		}
	}
	return IndentationStyle{}, false
}
