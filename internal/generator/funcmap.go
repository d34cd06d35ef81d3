package generator

import (
	"strings"
	"text/template"
)

const hexDigits = "0123456789abcdef"

// hexRows splits data into rows of at most width values, each value formatted
// as a two-digit lowercase 0x literal and joined with ", ".
// The last row is not padded.
func hexRows(data []byte, width int) []string {
	if width <= 0 {
		width = DefaultRowWidth
	}

	rows := make([]string, 0, (len(data)+width-1)/width)
	var sb strings.Builder
	for start := 0; start < len(data); start += width {
		end := min(start+width, len(data))

		sb.Reset()
		for i, b := range data[start:end] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("0x")
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0x0f])
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// guardName returns the include-guard macro for an identifier.
func guardName(identifier string) string {
	return strings.ToUpper(identifier) + "_H"
}

// GetCommonFuncMap returns the template functions available to every template.
func GetCommonFuncMap() template.FuncMap {
	return template.FuncMap{
		"hexRows": hexRows,
		"guard":   guardName,
		"upper":   strings.ToUpper,
	}
}
