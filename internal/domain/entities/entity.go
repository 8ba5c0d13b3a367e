// Package entities contains core domain data structures.
package entities

import (
	"strings"
)

// EntityKind identifies which catalog an entity belongs to.
type EntityKind string

const (
	KindCharacter EntityKind = "character"
	KindPlace     EntityKind = "place"
	KindObject    EntityKind = "object"
)

// Kinds lists the catalog kinds in analysis order.
var Kinds = []EntityKind{KindCharacter, KindPlace, KindObject}

// IsValid reports whether k is a known catalog kind.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindCharacter, KindPlace, KindObject:
		return true
	}
	return false
}

// Entity represents a named character, place or object of the narrative.
// Name is stored as written, including any parenthetical alias
// (e.g., "José Arcadio (el coronel)").
type Entity struct {
	ID          string     `json:"id"`
	Kind        EntityKind `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
}

// CanonicalName returns the name with the first parenthetical group removed.
func (e Entity) CanonicalName() string {
	name, _ := SplitAlias(e.Name)
	return name
}

// AliasName returns the contents of the first parenthetical group, if any.
func (e Entity) AliasName() string {
	_, alias := SplitAlias(e.Name)
	return alias
}

// SplitAlias splits a stored name into its canonical part and the alias held
// in the first "(...)" group. Every parenthetical group is dropped from the
// canonical part. Alias is empty when the name carries no parenthetical.
func SplitAlias(raw string) (name, alias string) {
	rest := raw
	var kept strings.Builder
	found := false

	for {
		open := strings.Index(rest, "(")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], ")")
		if end < 0 {
			break
		}
		end += open

		if !found {
			alias = strings.TrimSpace(rest[open+1 : end])
			found = true
		}
		kept.WriteString(rest[:open])
		kept.WriteString(" ")
		rest = rest[end+1:]
	}
	kept.WriteString(rest)

	return strings.Join(strings.Fields(kept.String()), " "), alias
}

// Generation groups characters of one family generation.
type Generation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
