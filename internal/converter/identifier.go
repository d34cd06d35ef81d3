package converter

import (
	"path/filepath"
	"strings"
)

var separatorReplacer = strings.NewReplacer(" ", "_", "-", "_")

// DeriveIdentifier returns the symbol name for the file at path: the base name
// without its extension, with spaces and hyphens turned into underscores.
//
// In lax mode nothing else is touched, so names such as "1.intro.wav" yield
// identifiers a C compiler will reject. In strict mode every character outside
// [A-Za-z0-9_] becomes '_' and a leading digit is prefixed with '_'.
func DeriveIdentifier(path string, strict bool) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", &IdentifierError{Name: path}
	}

	ident := separatorReplacer.Replace(trimExt(base))
	if strict {
		ident = sanitize(ident)
	}
	return ident, nil
}

// trimExt drops the final extension. Leading dots do not start an extension,
// so ".bashrc" is kept whole.
func trimExt(name string) string {
	lead := len(name) - len(strings.TrimLeft(name, "."))
	if i := strings.LastIndex(name, "."); i > lead {
		return name[:i]
	}
	return name
}

func sanitize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 1)
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// ValidIdentifier reports whether s is usable as a C symbol name.
func ValidIdentifier(s string) bool {
	return s != "" && sanitize(s) == s
}
