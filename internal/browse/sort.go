package browse

import (
	"slices"

	"github.com/f3rmion/morty/internal/character"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName returns a copy of chars stably ordered by name using
// locale-aware comparison.
func SortByName(chars []character.Character, order SortOrder) []character.Character {
	out := slices.Clone(chars)
	col := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b character.Character) int {
		if order == SortDesc {
			return col.CompareString(b.Name, a.Name)
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

// FilterByPrefix keeps the characters whose name starts with prefix, ignoring
// case. The provider matches names by substring; the browser narrows that to
// prefix matches.
func FilterByPrefix(chars []character.Character, prefix string) []character.Character {
	out := make([]character.Character, 0, len(chars))
	for _, c := range chars {
		if c.HasNamePrefix(prefix) {
			out = append(out, c)
		}
	}
	return out
}
