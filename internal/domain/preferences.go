package domain

import "strings"

// Preferences holds a traveler's stored planning preferences. HomeCityID is
// the flight origin for every trip the traveler plans; PreferredCategories
// optionally narrows attraction selection during itinerary assembly.
type Preferences struct {
	UserID              int64
	HomeCityID          int64
	PreferredCategories string // comma-separated attraction categories
}

// CategorySet parses PreferredCategories into a lookup set. An empty
// preference yields a nil set, meaning no filtering.
func (p *Preferences) CategorySet() map[string]bool {
	if p == nil || strings.TrimSpace(p.PreferredCategories) == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, c := range strings.Split(p.PreferredCategories, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			set[c] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
