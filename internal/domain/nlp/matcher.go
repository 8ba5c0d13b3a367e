package nlp

import "strings"

// Matches reports whether needle appears in haystack, either whole or through
// any one of its words. Both arguments must already be normalized. A
// multi-word name such as "ursula iguaran" therefore matches a question that
// only says "ursula".
func Matches(needle, haystack string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	if strings.Contains(haystack, needle) {
		return true
	}
	for _, part := range strings.Fields(needle) {
		if strings.Contains(haystack, part) {
			return true
		}
	}
	return false
}
