package nlp

import (
	"math"
	"regexp"
	"strconv"
)

var reChapter = regexp.MustCompile(`cap[ií]tulo\s*(\d+)`)

// ExtractChapter returns the number of the first "capitulo N" mention in a
// normalized question. A number too large for an int is still a chapter
// mention and comes back as math.MaxInt, which no stored chapter carries.
func ExtractChapter(normalizedQuestion string) (int, bool) {
	m := reChapter.FindStringSubmatch(normalizedQuestion)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}
