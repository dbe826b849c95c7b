package snapshot

// maxNameLen bounds sanitized snapshot file names.
const maxNameLen = 64

// fallbackName is used when a name is empty after sanitization.
const fallbackName = "snapshot"

// SanitizeName maps a caller-supplied snapshot name to a safe on-disk file
// stem. Alphanumerics, dot, underscore, and hyphen pass through; everything
// else becomes an underscore. The result is truncated to maxNameLen and an
// empty result falls back to a default name.
func SanitizeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) > maxNameLen {
		out = out[:maxNameLen]
	}
	if len(out) == 0 {
		return fallbackName
	}
	return string(out)
}
