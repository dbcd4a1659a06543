// Package payload prepares parsed trees for extraction and for the LLM.
package payload

import (
	"strings"
	"unicode"
)

// SanitizeKey turns a data type tag into a wrapper key: alphanumerics,
// underscores and hyphens are kept, anything else becomes "_", and a leading
// digit or hyphen gets a "field_" prefix. Blank input yields "".
func SanitizeKey(dataType string) string {
	t := strings.TrimSpace(dataType)
	if t == "" {
		return ""
	}
	var b strings.Builder
	if t[0] == '-' || (t[0] >= '0' && t[0] <= '9') {
		b.WriteString("field_")
	}
	for _, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Wrap places strings, arrays and multi-field objects under the sanitised
// data type so paths resolve the same way for every payload shape. Single-field
// objects are returned unchanged. The wrapper key is "" when nothing was wrapped.
func Wrap(tree any, dataType string) (any, string) {
	key := SanitizeKey(dataType)
	if key == "" {
		return tree, ""
	}
	switch t := tree.(type) {
	case string, []any:
		return map[string]any{key: t}, key
	case map[string]any:
		if len(t) > 1 {
			return map[string]any{key: t}, key
		}
	}
	return tree, ""
}
