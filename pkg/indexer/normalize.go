package indexer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var countrySuffixRegex = regexp.MustCompile(`^(.*?)\s*\(([a-z]{2,3})\)$`)

// Normalize lowercases, decomposes and strips combining marks so "Kraków" and "krakow" compare equal.
// Letters without a decomposition (ł, ø, ß) are kept as they are.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	normalized, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return normalized
}

// splitCountrySuffix turns "berlin (de)" into ("berlin", "de")
func splitCountrySuffix(normalized string) (string, string, bool) {
	match := countrySuffixRegex.FindStringSubmatch(normalized)
	if match == nil {
		return normalized, "", false
	}
	return match[1], match[2], true
}

func bucketKey(normalized string) string {
	r := []rune(normalized)
	if len(r) < 2 {
		return ""
	}
	return string(r[:2])
}
