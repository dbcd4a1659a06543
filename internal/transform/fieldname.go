package transform

import (
	"strings"
	"unicode"
)

// GenerateFieldName turns a data key into a display label: "first_name" and
// "firstName" both become "First Name", "userID" becomes "User ID".
func GenerateFieldName(key string) string {
	words := splitWords(key)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func splitWords(key string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	}) {
		words = append(words, splitCamel(part)...)
	}
	return words
}

// splitCamel splits on lower-to-upper transitions and at the end of an
// acronym ("HTTPServer" is "HTTP" and "Server").
func splitCamel(s string) []string {
	r := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(r); i++ {
		prev, cur := r[i-1], r[i]
		boundary := unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev))
		if !boundary && unicode.IsUpper(cur) && unicode.IsUpper(prev) && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			boundary = true
		}
		if boundary {
			out = append(out, string(r[start:i]))
			start = i
		}
	}
	return append(out, string(r[start:]))
}
