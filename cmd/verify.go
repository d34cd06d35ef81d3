package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bin2hdr/internal/converter"
	"github.com/xll-gen/bin2hdr/internal/decode"
	"github.com/xll-gen/bin2hdr/internal/ui"
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify <input-file> <output-file>",
	Short: "Check that a generated file reproduces its input byte-for-byte",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// runVerify decodes outputPath and compares it with the content of inputPath.
//
// Returns:
//   - error: An error if either file cannot be read, or the content differs.
func runVerify(inputPath, outputPath string) error {
	want, err := os.ReadFile(inputPath)
	if err != nil {
		return &converter.ReadError{Path: inputPath, Err: err}
	}

	got, err := decode.File(outputPath)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", outputPath, err)
	}

	if got.Length != len(got.Data) {
		return fmt.Errorf("%s declares %d bytes but holds %d", outputPath, got.Length, len(got.Data))
	}
	if off := firstDifference(want, got.Data); off >= 0 {
		return fmt.Errorf("%s differs from %s at offset %d (%d bytes vs %d)", outputPath, inputPath, off, len(got.Data), len(want))
	}

	if !quiet {
		ui.PrintSuccess("Verified", fmt.Sprintf("%s (%d bytes)", outputPath, len(want)))
	}
	return nil
}

// firstDifference returns the first offset where a and b differ, or -1 if they are equal.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
