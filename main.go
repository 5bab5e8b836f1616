// Copyright
// SPDX-License-Identifier: MIT
// fontedit: bitmap font editor with source code export for embedded displays
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fontedit/internal/config"
	"fontedit/internal/document"
	"fontedit/internal/font"
	"fontedit/internal/importer"
	"fontedit/internal/sheet"
	"fontedit/internal/sourcecode"
	"fontedit/internal/tui"
)

const Version = "0.3.0"

// exportTimeout bounds the wait for the generated text when printing it.
const exportTimeout = 30 * time.Second

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	var err error
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("fontedit", Version)
	case "edit":
		err = cmdEdit(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "export":
		err = cmdExport(os.Args[2:])
	case "print":
		err = cmdPrint(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`fontedit ` + Version + `
Edit bitmap fonts and export them as source code for embedded displays.
USAGE
  fontedit <command> [options]
COMMANDS
  edit         Open the editor (restores the last session, or opens FILE)
  import       Rasterize a TrueType/OpenType/BDF or built-in font into a document
  export       Write the source code for a document
  print        Render a document's glyphs to a PNG sheet
  help         Show help (try: fontedit help export)
  version      Print version
NOTES
  • Settings (formats, directories, last document) are kept in ~/.fontedit/session.json.
  • Use -v to log to stderr; the editor takes --log FILE instead since it owns the terminal.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "edit":
		fmt.Println(`USAGE
  fontedit edit [--no-color] [--log FILE] [FILE]
DESCRIPTION
  Starts the editor. Without FILE the last document is reopened if it still exists.
  Press ? inside the editor for keys.
OPTIONS
  --no-color     Plain output (NO_COLOR is honoured too)
  --log FILE     Append debug logs to FILE`)
	case "import":
		fmt.Println(`USAGE
  fontedit import --font SOURCE [--size N] [--chars TEXT] [--threshold N] [-o FILE]
DESCRIPTION
  SOURCE is a .ttf, .otf or .bdf file or one of: ` + strings.Join(prefixed(importer.Builtins()), ", ") + `
  Every printable ASCII character is rasterized unless --chars is given. Characters the
  font does not have are skipped.
OPTIONS
  --font SOURCE     Font to import (required)
  --size N          Point size for scalable fonts (default: 16)
  --chars TEXT      Characters to import, in order
  --threshold N     Coverage (0-255) at which a pixel is set (default: 128)
  -o FILE           Output document (default: <font name>` + font.FileExtension + `)`)
	case "export":
		fmt.Println(`USAGE
  fontedit export [--format LABEL] [--indent LABEL] [--lsb] [--invert] [--spacing]
                  [--selected] [--name SYMBOL] [-o FILE] DOCUMENT
OPTIONS
  --format LABEL   ` + strings.Join(formatLabels(), " | ") + ` (default: ` + sourcecode.Formats()[0].Label + `)
  --indent LABEL   ` + strings.Join(indentLabels(), " | ") + `
  --lsb            Least significant bit first
  --invert         Invert every bit
  --spacing        Include the line spacing in the header
  --selected       Only export glyphs marked as exported
  --name SYMBOL    Array name (default: ` + sourcecode.DefaultArrayName + `)
  -o FILE          Output file (default: stdout)`)
	case "print":
		fmt.Println(`USAGE
  fontedit print [--scale N] [--columns N] [--hide] -o FILE.png DOCUMENT
OPTIONS
  --scale N     Pixels per glyph pixel (default: 4)
  --columns N   Glyphs per row (default: 16)
  --hide        Leave out glyphs that are not exported`)
	default:
		usage()
	}
}

func prefixed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = importer.BuiltinPrefix + n
	}
	return out
}

func formatLabels() []string {
	var out []string
	for _, f := range sourcecode.Formats() {
		out = append(out, fmt.Sprintf("%q", f.Label))
	}
	return out
}

func indentLabels() []string {
	var out []string
	for _, s := range sourcecode.IndentationStyles() {
		out = append(out, fmt.Sprintf("%q", s.Label))
	}
	return out
}

// setupLogging routes document logs to w. A nil w keeps them silent.
func setupLogging(w io.Writer) {
	if w == nil {
		return
	}
	document.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

/* ---------- edit ---------- */

func cmdEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	noColor := fs.Bool("no-color", false, "plain output")
	logPath := fs.String("log", "", "append debug logs to FILE")
	fs.Parse(args)

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		setupLogging(f)
	}

	var store config.Store
	if fsStore, err := config.NewFileStore(); err == nil {
		store = fsStore
	} else {
		document.Logger().Warn("session store unavailable, settings will not persist", "error", err)
		store = &config.MemoryStore{Session: config.Default()}
	}

	doc := document.New(document.WithSessionStore(store))
	defer doc.Close()
	doc.RestoreSession()
	if fs.NArg() > 0 {
		if err := doc.OpenDocument(fs.Arg(0)); err != nil {
			return err
		}
	}
	return tui.Run(doc, tui.Options{NoColor: *noColor})
}

/* ---------- import ---------- */

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("font", "", "font file or builtin:NAME")
	size := fs.Int("size", 16, "point size for scalable fonts")
	chars := fs.String("chars", "", "characters to import")
	threshold := fs.Uint("threshold", importer.DefaultThreshold, "coverage at which a pixel is set (0-255)")
	out := fs.String("o", "", "output document")
	verbose := fs.Bool("v", false, "log to stderr")
	fs.Parse(args)

	if *verbose {
		setupLogging(os.Stderr)
	}
	if *source == "" {
		return errors.New("--font is required (see: fontedit help import)")
	}
	if *threshold > 255 {
		return fmt.Errorf("--threshold %d out of range 0-255", *threshold)
	}

	var runes []rune
	if *chars != "" {
		runes = []rune(*chars)
	}
	face, err := importer.LoadWith(*source, importer.Options{
		PointSize: *size,
		Runes:     runes,
		Threshold: uint8(*threshold),
	})
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = strings.ReplaceAll(face.Name, " ", "_") + font.FileExtension
	}
	if err := font.Save(path, face); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Imported %d glyphs (%s) into %s\n", face.NumGlyphs(), face.Size(), path)
	return nil
}

/* ---------- export ---------- */

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", sourcecode.Formats()[0].Label, "output format label")
	indent := fs.String("indent", sourcecode.IndentationStyles()[0].Label, "indentation label")
	lsb := fs.Bool("lsb", false, "least significant bit first")
	invert := fs.Bool("invert", false, "invert every bit")
	spacing := fs.Bool("spacing", false, "include line spacing")
	selected := fs.Bool("selected", false, "only export glyphs marked as exported")
	name := fs.String("name", sourcecode.DefaultArrayName, "array name")
	out := fs.String("o", "", "output file (default: stdout)")
	verbose := fs.Bool("v", false, "log to stderr")
	fs.Parse(args)

	if *verbose {
		setupLogging(os.Stderr)
	}
	if fs.NArg() != 1 {
		return errors.New("export needs exactly one document (see: fontedit help export)")
	}
	if _, ok := sourcecode.FormatByLabel(*format); !ok {
		return fmt.Errorf("unknown format %q (one of %s)", *format, strings.Join(formatLabels(), ", "))
	}
	if _, ok := sourcecode.IndentationByLabel(*indent); !ok {
		return fmt.Errorf("unknown indentation %q (one of %s)", *indent, strings.Join(indentLabels(), ", "))
	}

	doc := document.New()
	defer doc.Close()
	if err := doc.OpenDocument(fs.Arg(0)); err != nil {
		return err
	}
	doc.SetOutputFormat(*format)
	doc.SetIndentation(*indent)
	doc.SetMSBEnabled(!*lsb)
	doc.SetInvertBits(*invert)
	doc.SetIncludeLineSpacing(*spacing)
	doc.SetExportAllEnabled(!*selected)
	doc.SetFontArrayName(*name)

	if *out != "" {
		if err := doc.ExportSourceCode(*out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote", *out)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()
	if err := doc.WaitIdle(ctx); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fmt.Print(doc.SourceCode())
	return nil
}

/* ---------- print ---------- */

func cmdPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	def := sheet.DefaultOptions()
	scale := fs.Int("scale", def.Scale, "pixels per glyph pixel")
	columns := fs.Int("columns", def.Columns, "glyphs per row")
	hide := fs.Bool("hide", false, "leave out glyphs that are not exported")
	out := fs.String("o", "", "output PNG")
	verbose := fs.Bool("v", false, "log to stderr")
	fs.Parse(args)

	if *verbose {
		setupLogging(os.Stderr)
	}
	if fs.NArg() != 1 {
		return errors.New("print needs exactly one document (see: fontedit help print)")
	}
	path := *out
	if path == "" {
		base := filepath.Base(fs.Arg(0))
		path = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}

	face, err := font.Load(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open %s: %w", fs.Arg(0), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := sheet.Options{Scale: *scale, Columns: *columns, Gap: def.Gap, ShowNonExported: !*hide}
	if err := sheet.Render(f, face, opts); err != nil {
		f.Close()
		return fmt.Errorf("print: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}
