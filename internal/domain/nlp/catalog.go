package nlp

import (
	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

// ExtractAlias splits a stored catalog name into its canonical name and alias,
// both normalized with textnorm.CleanOnly.
// "Aureliano (el coronel)" yields ("aureliano", "el coronel").
func ExtractAlias(raw string) (name, alias string) {
	n, a := entities.SplitAlias(raw)
	return textnorm.CleanOnly(n), textnorm.CleanOnly(a)
}

// FindMentioned returns the catalog entries mentioned in the normalized
// question, by canonical name or alias, preserving catalog order. Names are
// also compared in their singularized form, since the question went through
// textnorm.Normalize ("Dolores" reads as "dolor" there).
func FindMentioned(catalog []entities.Entity, normalizedQuestion string) []entities.Entity {
	var found []entities.Entity
	for _, e := range catalog {
		if mentions(normalizedQuestion, e.Name) {
			found = append(found, e)
		}
	}
	return found
}

func mentions(normalizedQuestion, raw string) bool {
	name, alias := ExtractAlias(raw)
	for _, needle := range []string{name, alias} {
		if Matches(needle, normalizedQuestion) || Matches(textnorm.Normalize(needle), normalizedQuestion) {
			return true
		}
	}
	return false
}

// Names returns the stored names of the given entities.
func Names(list []entities.Entity) []string {
	if len(list) == 0 {
		return nil
	}
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Name
	}
	return names
}
