package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases name and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading/trailing hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
