package catalog

import "strings"

// MatchesSearch returns a predicate that is true when the item's title,
// description or any tag contains search, case-insensitively.
func MatchesSearch(search string) Predicate {
	lower := strings.ToLower(search)
	return func(p Product) bool {
		if strings.Contains(strings.ToLower(p.Title), lower) {
			return true
		}
		if strings.Contains(strings.ToLower(p.Description), lower) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), lower) {
				return true
			}
		}
		return false
	}
}
