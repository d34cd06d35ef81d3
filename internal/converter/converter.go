package converter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xll-gen/bin2hdr/internal/generator"
)

// Usage is the command synopsis reported with a UsageError.
const Usage = "bin2hdr <input-file> <output-file>"

// Options controls the shape of the generated file.
type Options struct {
	// Format selects the output format. Empty means generator.FormatHeader.
	Format generator.Format
	// Dialect selects the header dialect. Empty means generator.DialectProgmem.
	Dialect generator.Dialect
	// RowWidth is the number of values per row. Zero means 16.
	RowWidth int
	// StrictIdentifiers sanitizes the derived identifier into a valid C symbol.
	StrictIdentifiers bool
}

// Result describes a completed conversion.
type Result struct {
	// OutputPath is the file that was written.
	OutputPath string
	// Identifier is the symbol name used in the generated file.
	Identifier string
	// Size is the number of input bytes.
	Size int
	// Format is the format that was written.
	Format generator.Format
}

// Convert reads inputPath in full and writes its bytes to outputPath as a
// generated source file, overwriting any existing content.
//
// Parameters:
//   - inputPath: The binary file to embed.
//   - outputPath: The file to create. Its directory must exist.
//   - opts: Output options.
//
// Returns:
//   - *Result: Details of the written file.
//   - error: A *ReadError, *WriteError or *IdentifierError on failure.
func Convert(inputPath, outputPath string, opts Options) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}
	slog.Debug("read input", "path", inputPath, "bytes", len(data))

	ident, err := DeriveIdentifier(inputPath, opts.StrictIdentifiers)
	if err != nil {
		return nil, err
	}
	slog.Debug("derived identifier", "identifier", ident, "strict", opts.StrictIdentifiers)

	format := opts.Format
	if format == "" {
		format = generator.FormatHeader
	}
	dialect := opts.Dialect
	if dialect == "" {
		dialect = generator.DialectProgmem
	}

	doc := generator.Document{
		SourceName: filepath.Base(inputPath),
		Identifier: ident,
		Data:       data,
		Dialect:    dialect,
		RowWidth:   opts.RowWidth,
	}

	var buf bytes.Buffer
	if err := generator.Render(&buf, doc, format); err != nil {
		return nil, err
	}

	if err := writeFileAtomic(outputPath, buf.Bytes()); err != nil {
		return nil, &WriteError{Path: outputPath, Err: err}
	}
	slog.Debug("wrote output", "path", outputPath, "format", format, "bytes", buf.Len())

	return &Result{
		OutputPath: outputPath,
		Identifier: ident,
		Size:       len(data),
		Format:     format,
	}, nil
}
