package internal

import (
	"strings"
	"unicode"
)

// SanitizeString replaces invalid UTF-8 sequences with the replacement rune.
func SanitizeString(input string) string {
	return strings.ToValidUTF8(input, string(unicode.ReplacementChar))
}
