package generator

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
)

// MaxIntelHexRowWidth is the longest record gohex parses back; longer
// records overflow its record decoder.
const MaxIntelHexRowWidth = 251

// renderIntelHex dumps doc.Data as Intel HEX records at address 0,
// doc.RowWidth data bytes per record.
func renderIntelHex(w io.Writer, doc Document) error {
	if doc.RowWidth > MaxIntelHexRowWidth {
		return fmt.Errorf("intel hex record length %d exceeds %d", doc.RowWidth, MaxIntelHexRowWidth)
	}

	mem := gohex.NewMemory()
	if len(doc.Data) > 0 {
		if err := mem.AddBinary(0, doc.Data); err != nil {
			return fmt.Errorf("failed to load data into intel hex image: %w", err)
		}
	}
	return mem.DumpIntelHex(w, byte(doc.RowWidth))
}
