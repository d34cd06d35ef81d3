package generator

import (
	"fmt"
	"io"
)

// Dialect selects how the byte array is declared in a header.
type Dialect string

const (
	// DialectProgmem annotates the array with PROGMEM so AVR-style toolchains
	// keep it in flash.
	DialectProgmem Dialect = "progmem"
	// DialectPortable emits a plain C array.
	DialectPortable Dialect = "portable"
)

// Format selects the kind of document produced.
type Format string

const (
	// FormatHeader produces a C header with a length constant and a byte array.
	FormatHeader Format = "header"
	// FormatIntelHex produces Intel HEX records starting at address 0.
	FormatIntelHex Format = "ihex"
)

// DefaultRowWidth is the number of byte values written per row.
const DefaultRowWidth = 16

// Document is everything needed to render one output file.
type Document struct {
	// SourceName is the base name of the input file, quoted in the header comment.
	SourceName string
	// Identifier is the symbol name used for the array and its length constant.
	Identifier string
	// Data is the raw input.
	Data []byte
	// Dialect is only meaningful for FormatHeader.
	Dialect Dialect
	// RowWidth is the number of values per row; zero means DefaultRowWidth.
	RowWidth int
}

// Render writes doc to w in the requested format.
//
// Parameters:
//   - w: The destination writer.
//   - doc: The document to render.
//   - format: The output format. Empty means FormatHeader.
//
// Returns:
//   - error: An error if the format is unknown or rendering fails.
func Render(w io.Writer, doc Document, format Format) error {
	if doc.RowWidth <= 0 {
		doc.RowWidth = DefaultRowWidth
	}

	switch format {
	case FormatHeader, "":
		return renderHeader(w, doc)
	case FormatIntelHex:
		return renderIntelHex(w, doc)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// renderHeader executes header.h.tmpl for doc.
func renderHeader(w io.Writer, doc Document) error {
	switch doc.Dialect {
	case DialectProgmem, DialectPortable, "":
	default:
		return fmt.Errorf("unknown dialect: %s", doc.Dialect)
	}

	data := struct {
		SourceName string
		Identifier string
		Data       []byte
		RowWidth   int
		Progmem    bool
	}{
		SourceName: doc.SourceName,
		Identifier: doc.Identifier,
		Data:       doc.Data,
		RowWidth:   doc.RowWidth,
		Progmem:    doc.Dialect != DialectPortable,
	}

	return executeTemplate(w, "header.h.tmpl", data, GetCommonFuncMap())
}
