// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or allowed values) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"strings"
	"unicode"
)

// fieldName converts a Go struct field name into the snake_case name
// clients see in JSON bodies and query strings ("HasDescription" -> "has_description").
func fieldName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word unless inside an acronym ("ID").
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
