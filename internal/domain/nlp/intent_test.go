package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

func testLexicon() entities.IntentLexicon {
	return entities.IntentLexicon{Intents: []entities.IntentGroup{
		{Key: entities.IntentDie, Phrases: []string{"morir", "murió", "falleció", "dejó de existir"}},
		{Key: entities.IntentFound, Phrases: []string{"fundar", "fundó", "creó"}},
		{Key: entities.IntentMarry, Phrases: []string{"se casó", "matrimonio"}},
		{Key: entities.IntentReveal, Phrases: []string{"dijo", "reveló (todo)"}},
	}}
}

func newTestClassifier(t *testing.T) *IntentClassifier {
	t.Helper()
	c, err := NewIntentClassifier(testLexicon())
	require.NoError(t, err)
	return c
}

func TestIntentClassifier_Detect(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("accented verb detected", func(t *testing.T) {
		matches := c.Detect("¿Cuándo murió Úrsula?")
		require.Len(t, matches, 1)
		assert.Equal(t, entities.IntentDie, matches[0].Intent)
		assert.Equal(t, "murió", matches[0].Phrase)
	})

	t.Run("whole words only", func(t *testing.T) {
		assert.Empty(t, c.Detect("los morirones"))
	})

	t.Run("multi word phrase", func(t *testing.T) {
		matches := c.Detect("Remedios se casó con Aureliano")
		require.Len(t, matches, 1)
		assert.Equal(t, entities.IntentMarry, matches[0].Intent)
	})

	t.Run("one match per intent in lexicon order", func(t *testing.T) {
		matches := c.Detect("fundó Macondo y luego murió, falleció")
		require.Len(t, matches, 2)
		assert.Equal(t, entities.IntentDie, matches[0].Intent)
		assert.Equal(t, "murió", matches[0].Phrase)
		assert.Equal(t, entities.IntentFound, matches[1].Intent)
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		matches := c.Detect("Melquíades reveló (todo)")
		require.Len(t, matches, 1)
		assert.Equal(t, entities.IntentReveal, matches[0].Intent)
		assert.Empty(t, c.Detect("reveló todo"))
	})

	t.Run("empty question", func(t *testing.T) {
		assert.Empty(t, c.Detect(""))
	})
}

func TestIntentClassifier_Patterns(t *testing.T) {
	c := newTestClassifier(t)

	patterns := c.Patterns([]entities.IntentKey{entities.IntentMarry, "unknown"})
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].MatchString("y se caso en la iglesia"))
	assert.True(t, patterns[1].MatchString("un matrimonio breve"))
	assert.False(t, patterns[1].MatchString("matrimonios"))
}

func TestNewIntentClassifier_Invalid(t *testing.T) {
	_, err := NewIntentClassifier(entities.IntentLexicon{Intents: []entities.IntentGroup{
		{Key: entities.IntentDie, Phrases: []string{"morir"}},
		{Key: entities.IntentDie, Phrases: []string{"murió"}},
	}})
	require.Error(t, err)

	_, err = NewIntentClassifier(entities.IntentLexicon{Intents: []entities.IntentGroup{
		{Phrases: []string{"morir"}},
	}})
	require.Error(t, err)
}

func TestWholeWordPattern(t *testing.T) {
	re, err := WholeWordPattern("  ")
	require.NoError(t, err)
	assert.Nil(t, re)

	re, err = WholeWordPattern("Volvió")
	require.NoError(t, err)
	assert.True(t, re.MatchString("y luego volvio a macondo"))
	assert.False(t, re.MatchString("revolvio"))
}
