package entities

// IntentKey is a coarse narrative-action category.
type IntentKey string

const (
	IntentDie       IntentKey = "die"
	IntentFound     IntentKey = "found"
	IntentBeBorn    IntentKey = "beBorn"
	IntentMarry     IntentKey = "marry"
	IntentDisappear IntentKey = "disappear"
	IntentAge       IntentKey = "age"
	IntentLove      IntentKey = "love"
	IntentDepart    IntentKey = "depart"
	IntentReturn    IntentKey = "return"
	IntentWrite     IntentKey = "write"
	IntentReveal    IntentKey = "reveal"
	IntentKill      IntentKey = "kill"
	IntentRead      IntentKey = "read"
	IntentProphesy  IntentKey = "prophesy"
	IntentImpose    IntentKey = "impose"
)

// IntentGroup holds the literal phrases that signal one intent.
type IntentGroup struct {
	Key     IntentKey `json:"key" yaml:"key"`
	Phrases []string  `json:"phrases" yaml:"phrases"`
}

// IntentLexicon is the ordered intent table. It is loaded once and never
// mutated afterwards.
type IntentLexicon struct {
	Intents []IntentGroup `json:"intents" yaml:"intents"`
}

// Keys returns the intent keys in lexicon order.
func (l IntentLexicon) Keys() []IntentKey {
	keys := make([]IntentKey, len(l.Intents))
	for i, g := range l.Intents {
		keys[i] = g.Key
	}
	return keys
}

// Group returns the group for key, if present.
func (l IntentLexicon) Group(key IntentKey) (IntentGroup, bool) {
	for _, g := range l.Intents {
		if g.Key == key {
			return g, true
		}
	}
	return IntentGroup{}, false
}

// IntentMatch records a detected intent and the phrase that triggered it.
type IntentMatch struct {
	Intent IntentKey `json:"intent"`
	Phrase string    `json:"phrase"`
}
