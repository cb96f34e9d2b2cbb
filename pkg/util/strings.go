package util

// UniqueStrings keeps the first occurrence of every non empty string, stopping once limit entries
// have been collected (limit <= 0 means no limit)
func UniqueStrings(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	var list []string

	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		list = append(list, value)

		if limit > 0 && len(list) >= limit {
			break
		}
	}
	return list
}

// TrimString cuts s to at most length runes
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}
