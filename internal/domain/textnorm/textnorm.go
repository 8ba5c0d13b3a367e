// Package textnorm canonicalizes free text so that questions, catalog names
// and lexicon phrases compare equal regardless of case and diacritics.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minPluralRunes is the shortest token considered for singularization.
const minPluralRunes = 5

// Normalize applies the grammatical pass (punctuation stripping and
// singularization of plural tokens) together with case folding and diacritic
// removal. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	cleaned := CleanOnly(stripPunctuation(text))

	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = singularize(w)
	}
	return strings.Join(words, " ")
}

// CleanOnly lowercases text and removes combining marks after canonical
// decomposition ("José" -> "jose"). Punctuation is preserved.
func CleanOnly(text string) string {
	if text == "" {
		return ""
	}
	// Chains carry buffers and are not safe to share between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return result
}

// Fold is the plain-search normalization: CleanOnly, then every rune other
// than an ASCII letter, digit or whitespace is dropped.
func Fold(text string) string {
	cleaned := CleanOnly(text)
	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Words returns the distinct whitespace-separated words of text in first
// occurrence order.
func Words(text string) []string {
	fields := strings.Fields(text)
	seen := make(map[string]struct{}, len(fields))
	words := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		words = append(words, f)
	}
	return words
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, text)
}

// singularize drops the "es" of consonant plurals such as "coroneles",
// "generaciones" or "amores". Vowel plurals are kept as written so that
// names like "Remedios" survive; substring matching already covers
// "aurelianos" against "aureliano". The result never ends in "es", which
// keeps the pass idempotent.
func singularize(word string) string {
	if utf8.RuneCountInString(word) < minPluralRunes {
		return word
	}
	n := len(word)
	if !strings.HasSuffix(word, "es") {
		return word
	}
	switch word[n-3] {
	case 'l', 'n', 'r':
	default:
		return word
	}
	if !isVowel(word[n-4]) {
		return word
	}
	return word[:n-2]
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
