package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

type phrasePattern struct {
	phrase string
	re     *regexp.Regexp
}

type intentPatterns struct {
	key      entities.IntentKey
	patterns []phrasePattern
}

// IntentClassifier detects narrative intents through whole-word matches of
// lexicon phrases. Patterns are compiled once at construction.
type IntentClassifier struct {
	groups []intentPatterns
}

// NewIntentClassifier compiles every phrase of the lexicon.
func NewIntentClassifier(lexicon entities.IntentLexicon) (*IntentClassifier, error) {
	c := &IntentClassifier{groups: make([]intentPatterns, 0, len(lexicon.Intents))}
	seen := make(map[entities.IntentKey]struct{}, len(lexicon.Intents))

	for _, g := range lexicon.Intents {
		if g.Key == "" {
			return nil, fmt.Errorf("intent group without key")
		}
		if _, dup := seen[g.Key]; dup {
			return nil, fmt.Errorf("duplicate intent %q", g.Key)
		}
		seen[g.Key] = struct{}{}

		ip := intentPatterns{key: g.Key, patterns: make([]phrasePattern, 0, len(g.Phrases))}
		for _, phrase := range g.Phrases {
			re, err := WholeWordPattern(phrase)
			if err != nil {
				return nil, fmt.Errorf("compiling phrase %q of intent %q: %w", phrase, g.Key, err)
			}
			if re == nil {
				continue
			}
			ip.patterns = append(ip.patterns, phrasePattern{phrase: phrase, re: re})
		}
		c.groups = append(c.groups, ip)
	}

	return c, nil
}

// WholeWordPattern builds a word-bounded pattern for a literal phrase. The
// phrase is folded with textnorm.CleanOnly and escaped, so the pattern must be
// matched against CleanOnly text. Boundaries are any non letter/digit rune or
// the text edges, which also holds for phrases that start or end with
// punctuation. Blank phrases yield nil.
func WholeWordPattern(phrase string) (*regexp.Regexp, error) {
	folded := strings.TrimSpace(textnorm.CleanOnly(phrase))
	if folded == "" {
		return nil, nil
	}
	return regexp.Compile(`(?:^|[^\pL\pN_])` + regexp.QuoteMeta(folded) + `(?:$|[^\pL\pN_])`)
}

// Detect returns one match per intent whose phrases occur in the question,
// in lexicon order. The first matching phrase of each group is reported.
func (c *IntentClassifier) Detect(rawQuestion string) []entities.IntentMatch {
	text := textnorm.CleanOnly(rawQuestion)
	if text == "" {
		return nil
	}

	var matches []entities.IntentMatch
	for _, g := range c.groups {
		for _, p := range g.patterns {
			if p.re.MatchString(text) {
				matches = append(matches, entities.IntentMatch{Intent: g.key, Phrase: p.phrase})
				break
			}
		}
	}
	return matches
}

// Patterns returns the compiled patterns of every phrase under the given
// intents. Unknown keys are ignored.
func (c *IntentClassifier) Patterns(keys []entities.IntentKey) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, key := range keys {
		for _, g := range c.groups {
			if g.key != key {
				continue
			}
			for _, p := range g.patterns {
				out = append(out, p.re)
			}
		}
	}
	return out
}
