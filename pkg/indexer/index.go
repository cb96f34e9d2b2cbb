package indexer

import (
	"cmp"
	"strings"

	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/util"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

const DefaultSuggestionLimit = 120

// MinimumQueryLength is counted in runes after normalization
const MinimumQueryLength = 2

type indexEntry struct {
	place *ctdf.Place

	display     string
	displayNorm string
	nameNorm    string
	localNorm   string
}

// Index answers exact and prefix lookups over the static places dataset.
// It is built once and only read afterwards so it is safe for concurrent use.
type Index struct {
	entries   []indexEntry
	waypoints []ctdf.Waypoint
	byID      map[string]*ctdf.Place
	exact     map[string][]*ctdf.Place
	prefix    map[string][]int

	Language language.Tag
}

func Build(places []*ctdf.Place) *Index {
	index := &Index{
		byID:     map[string]*ctdf.Place{},
		exact:    map[string][]*ctdf.Place{},
		prefix:   map[string][]int{},
		Language: language.Polish,
	}

	for _, place := range places {
		if place == nil || place.Name == "" {
			continue
		}
		if _, exists := index.byID[place.ID]; exists {
			continue
		}

		entry := indexEntry{
			place:       place,
			display:     place.DisplayName(),
			displayNorm: Normalize(place.DisplayName()),
			nameNorm:    Normalize(place.Name),
			localNorm:   Normalize(place.LocalName),
		}
		position := len(index.entries)

		index.entries = append(index.entries, entry)
		index.waypoints = append(index.waypoints, place.Waypoint())
		index.byID[place.ID] = place

		var buckets []string
		for _, name := range []string{entry.nameNorm, entry.localNorm} {
			if name == "" {
				continue
			}
			if !slices.Contains(index.exact[name], place) {
				index.exact[name] = append(index.exact[name], place)
			}

			key := bucketKey(name)
			if key != "" && !slices.Contains(buckets, key) {
				buckets = append(buckets, key)
				index.prefix[key] = append(index.prefix[key], position)
			}
		}
	}

	// Same name in several countries, the biggest place wins an unqualified lookup
	for _, candidates := range index.exact {
		slices.SortStableFunc(candidates, func(a, b *ctdf.Place) int {
			return cmp.Compare(b.Population, a.Population)
		})
	}

	return index
}

func (i *Index) Len() int {
	return len(i.entries)
}

func (i *Index) Places() []*ctdf.Place {
	places := make([]*ctdf.Place, 0, len(i.entries))
	for _, entry := range i.entries {
		places = append(places, entry.place)
	}
	return places
}

// Waypoints keeps dataset order
func (i *Index) Waypoints() []ctdf.Waypoint {
	return i.waypoints
}

func (i *Index) ByID(id string) (*ctdf.Place, bool) {
	place, ok := i.byID[id]
	return place, ok
}

// FindExact matches the canonical or localised name ignoring case and diacritics.
// A trailing "(CC)" is accepted and used to pick between places sharing a name.
func (i *Index) FindExact(text string) (*ctdf.Place, bool) {
	key := Normalize(text)
	if key == "" {
		return nil, false
	}

	if candidates := i.exact[key]; len(candidates) > 0 {
		return candidates[0], true
	}

	name, countryCode, ok := splitCountrySuffix(key)
	if !ok {
		return nil, false
	}

	candidates := i.exact[name]
	if len(candidates) == 0 {
		return nil, false
	}
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.CountryCode, countryCode) {
			return candidate, true
		}
	}
	return candidates[0], true
}

// InitialList is what is offered before anything has been typed, the first places of the dataset
func (i *Index) InitialList(limit int) []string {
	labels := make([]string, 0, len(i.entries))
	for _, entry := range i.entries {
		labels = append(labels, entry.display)
	}
	return util.UniqueStrings(labels, limit)
}
