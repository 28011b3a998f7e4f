package gazetteer

import (
	"sort"
	"strings"
	"sync/atomic"
)

const (
	// DefaultLimit is the result count used when the caller supplies none.
	DefaultLimit = 5

	// minPrefixLen guards the index against empty and one-character scans;
	// shorter prefixes match nothing rather than erroring.
	minPrefixLen = 2
)

// Index is a read-only prefix index over city names. Snapshots are immutable
// and published atomically, so a reload never exposes a half-built index to
// in-flight searches.
type Index struct {
	preferredCountry string
	snap             atomic.Pointer[snapshot]
}

type snapshot struct {
	// cities sorted by (Name, ID) ascending, binary collation.
	cities []City
}

// NewIndex creates an empty index. Search results from preferredCountry rank
// ahead of all others.
func NewIndex(preferredCountry string) *Index {
	idx := &Index{preferredCountry: preferredCountry}
	idx.snap.Store(&snapshot{})
	return idx
}

// Replace builds a fresh snapshot from cities and publishes it atomically.
func (idx *Index) Replace(cities []City) {
	snap := &snapshot{cities: make([]City, len(cities))}
	copy(snap.cities, cities)
	sort.SliceStable(snap.cities, func(i, j int) bool {
		if snap.cities[i].Name != snap.cities[j].Name {
			return snap.cities[i].Name < snap.cities[j].Name
		}
		return snap.cities[i].ID < snap.cities[j].ID
	})
	idx.snap.Store(snap)
}

// Len reports the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.snap.Load().cities)
}

// Search returns up to limit cities whose name starts with prefix, matching
// the name field only, case-sensitively. Results rank preferred-country
// records first, then name ascending, then id (insertion) order. A limit at
// or below zero falls back to DefaultLimit; larger values are honored
// unbounded.
func (idx *Index) Search(prefix string, limit int) []City {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := []City{}
	if len(prefix) < minPrefixLen {
		return results
	}

	cities := idx.snap.Load().cities
	start := sort.Search(len(cities), func(i int) bool { return cities[i].Name >= prefix })
	for i := start; i < len(cities) && strings.HasPrefix(cities[i].Name, prefix); i++ {
		results = append(results, cities[i])
	}

	// Matches arrive in (name, id) order already; a stable partition by
	// country preference keeps that order within each class.
	sort.SliceStable(results, func(i, j int) bool {
		return idx.countryRank(results[i].Country) < idx.countryRank(results[j].Country)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (idx *Index) countryRank(country string) int {
	if country == idx.preferredCountry {
		return 0
	}
	return 1
}
