package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/franz/songbook/internal/catalog"
)

// SortKey selects the field songs are ordered by.
type SortKey string

const (
	SortByTitle    SortKey = "title"
	SortByYear     SortKey = "year"
	SortBySinger   SortKey = "singer"
	SortByComposer SortKey = "composer"
)

// SortKeys lists the supported sort keys.
var SortKeys = []SortKey{SortByTitle, SortByYear, SortBySinger, SortByComposer}

// ParseSortKey maps a user-supplied name to a SortKey.
// Unknown or empty names fall back to SortByTitle.
func ParseSortKey(name string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(SortKeys, key) {
		return key
	}
	return SortByTitle
}

// Sort returns a copy of songs ordered by key using Greek collation.
// Equal keys keep their input order. The input slice is not modified.
func Sort(songs []catalog.DisplayableSong, key SortKey) []catalog.DisplayableSong {
	sorted := slices.Clone(songs)
	if sorted == nil {
		sorted = []catalog.DisplayableSong{}
	}

	field := sortField(key)
	coll := collate.New(language.Greek)
	slices.SortStableFunc(sorted, func(a, b catalog.DisplayableSong) int {
		return coll.CompareString(field(a.Song), field(b.Song))
	})
	return sorted
}

func sortField(key SortKey) func(catalog.Song) string {
	switch key {
	case SortByYear:
		return func(s catalog.Song) string { return s.Year }
	case SortBySinger:
		return func(s catalog.Song) string { return s.Singer1 }
	case SortByComposer:
		return func(s catalog.Song) string { return s.Composer1 }
	default:
		return func(s catalog.Song) string { return s.Title }
	}
}
