package indexer

import (
	"cmp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smartroute/smartroute/pkg/util"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
)

type matchKind int

const (
	matchKindPrefix matchKind = iota
	matchKindWordBoundary
	matchKindSubstring
	matchKindNone
)

type suggestion struct {
	label  string
	length int
	kind   matchKind
}

// ShortQuery reports whether a query is too short to suggest anything for
func ShortQuery(query string) bool {
	return utf8.RuneCountInString(Normalize(query)) < MinimumQueryLength
}

// Suggest returns display names matching the query, best matches first. Prefix matches come from
// the two character buckets, the full list is only scanned when they do not fill the limit.
func (i *Index) Suggest(query string, limit int) []string {
	q := Normalize(query)
	if utf8.RuneCountInString(q) < MinimumQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	var suggestions []suggestion
	inBucket := map[int]bool{}

	for _, position := range i.prefix[bucketKey(q)] {
		inBucket[position] = true
		entry := i.entries[position]
		if kind := entry.matchKind(q); kind == matchKindPrefix {
			suggestions = append(suggestions, newSuggestion(entry.display, kind))
		}
	}

	if len(suggestions) < limit {
		for position, entry := range i.entries {
			if inBucket[position] {
				continue
			}
			kind := entry.matchKind(q)
			if kind == matchKindPrefix || kind == matchKindNone {
				continue
			}
			suggestions = append(suggestions, newSuggestion(entry.display, kind))
		}
		// Places in the bucket can still match further into the name
		for position := range inBucket {
			entry := i.entries[position]
			if kind := entry.matchKind(q); kind == matchKindWordBoundary || kind == matchKindSubstring {
				suggestions = append(suggestions, newSuggestion(entry.display, kind))
			}
		}
	}

	collator := collate.New(i.Language)
	slices.SortStableFunc(suggestions, func(a, b suggestion) int {
		if a.kind != b.kind {
			return cmp.Compare(a.kind, b.kind)
		}
		if a.length != b.length {
			return cmp.Compare(a.length, b.length)
		}
		return collator.CompareString(a.label, b.label)
	})

	labels := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		labels = append(labels, s.label)
	}
	return util.UniqueStrings(labels, limit)
}

func newSuggestion(label string, kind matchKind) suggestion {
	return suggestion{label: label, length: utf8.RuneCountInString(label), kind: kind}
}

func (e indexEntry) matchKind(q string) matchKind {
	best := matchKindNone
	for _, name := range []string{e.displayNorm, e.nameNorm, e.localNorm} {
		if name == "" {
			continue
		}
		if kind := nameMatchKind(name, q); kind < best {
			best = kind
		}
	}
	return best
}

func nameMatchKind(name string, q string) matchKind {
	if strings.HasPrefix(name, q) {
		return matchKindPrefix
	}

	found := false
	for offset := 0; offset < len(name); {
		at := strings.Index(name[offset:], q)
		if at < 0 {
			break
		}
		at += offset
		found = true

		previous, _ := utf8.DecodeLastRuneInString(name[:at])
		if !unicode.IsLetter(previous) && !unicode.IsDigit(previous) {
			return matchKindWordBoundary
		}

		_, size := utf8.DecodeRuneInString(name[at:])
		offset = at + size
	}

	if found {
		return matchKindSubstring
	}
	return matchKindNone
}
