package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bin2hdr/internal/config"
	"github.com/xll-gen/bin2hdr/internal/converter"
	"github.com/xll-gen/bin2hdr/internal/generator"
	"github.com/xll-gen/bin2hdr/internal/ui"
)

var (
	dialect  string
	format   string
	rowWidth int
	strict   bool
)

func init() {
	rootCmd.Flags().StringVar(&dialect, "dialect", "", "array dialect: progmem or portable (default progmem)")
	rootCmd.Flags().StringVar(&format, "format", "", "output format: header or ihex (default header)")
	rootCmd.Flags().IntVar(&rowWidth, "row-width", 0, "values per row (default 16)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "sanitize the identifier into a valid C symbol")
}

// runConvert merges command-line flags over the loaded configuration and converts
// inputPath into outputPath.
//
// Returns:
//   - error: A converter error if reading, rendering or writing fails.
func runConvert(cmd *cobra.Command, inputPath, outputPath string) error {
	out := cfg.Output
	if cmd.Flags().Changed("dialect") {
		out.Dialect = dialect
	}
	if cmd.Flags().Changed("format") {
		out.Format = format
	}
	if cmd.Flags().Changed("row-width") {
		if rowWidth < 1 {
			return fmt.Errorf("invalid --row-width: %d (must be at least 1)", rowWidth)
		}
		out.RowWidth = rowWidth
	}
	if cmd.Flags().Changed("strict") {
		out.StrictIdentifiers = strict
	}

	merged := *cfg
	merged.Output = out
	if err := config.Validate(&merged); err != nil {
		return err
	}

	opts := converter.Options{
		Format:            generator.Format(out.Format),
		Dialect:           generator.Dialect(out.Dialect),
		RowWidth:          out.RowWidth,
		StrictIdentifiers: out.StrictIdentifiers,
	}

	res, err := converter.Convert(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	lax := res.Format == generator.FormatHeader && !converter.ValidIdentifier(res.Identifier)
	if lax {
		slog.Warn("identifier is not a valid C symbol", "identifier", res.Identifier)
	}
	slog.Debug("converted", "input", inputPath, "output", res.OutputPath, "identifier", res.Identifier, "bytes", res.Size)

	if !quiet {
		ui.PrintSuccess("Created", res.OutputPath)
		if res.Format == generator.FormatHeader {
			ui.PrintSuccess("Variable", res.Identifier)
		}
		ui.PrintSuccess("Size", fmt.Sprintf("%d bytes", res.Size))
		if lax {
			ui.PrintWarning("Identifier", fmt.Sprintf("%q is not a valid C symbol, rerun with --strict", res.Identifier))
		}
	}
	return nil
}
