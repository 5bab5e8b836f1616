package options

import (
	"fmt"
	"strings"
)

// Values are the source code options shown above the code tab.
type Values struct {
	Format      string
	Indentation string
	MSB         bool
	Invert      bool
	LineSpacing bool
	ExportAll   bool
	ArrayName   string
}

// RenderOptions returns one entry per option, each with its key.
func RenderOptions(v Values) []string {
	order := "LSB"
	if v.MSB {
		order = "MSB"
	}
	export := "selected"
	if v.ExportAll {
		export = "all"
	}
	return []string{
		fmt.Sprintf("Format: %s (f)", v.Format),
		fmt.Sprintf("Indent: %s (g)", v.Indentation),
		fmt.Sprintf("Bits: %s (m)", order),
		fmt.Sprintf("Invert: %s (i)", onOff(v.Invert)),
		fmt.Sprintf("Spacing: %s (l)", onOff(v.LineSpacing)),
		fmt.Sprintf("Export: %s (a)", export),
		fmt.Sprintf("Name: %s (A)", v.ArrayName),
	}
}

// Render joins RenderOptions into a single line.
func Render(v Values) string {
	return strings.Join(RenderOptions(v), "  ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
