package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/util"
)

// GroupKey selects the field songs are partitioned by.
type GroupKey string

const (
	GroupByYear     GroupKey = "year"
	GroupBySinger   GroupKey = "singer"
	GroupByComposer GroupKey = "composer"
	GroupByTonality GroupKey = "tonality"
)

// GroupKeys lists the supported group keys.
var GroupKeys = []GroupKey{GroupByYear, GroupBySinger, GroupByComposer, GroupByTonality}

// Labels for songs whose grouping field is empty. Grammatical gender follows
// the noun each one stands for (έτος, τραγουδιστής/συνθέτης, τονικότητα).
const (
	UnknownYear     = "Άγνωστο"
	// UnknownSinger and UnknownComposer share a string but label different
	// groupings; compare against the one matching the GroupKey.
	UnknownSinger   = "Άγνωστος"
	UnknownComposer = "Άγνωστος"
	UnknownTonality = "Άγνωστη"
)

// ParseGroupKey maps a user-supplied name to a GroupKey.
func ParseGroupKey(name string) (GroupKey, error) {
	key := GroupKey(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(GroupKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: group by %q (want one of %v)", util.ErrInvalidKey, name, GroupKeys)
}

// UnknownLabel returns the label used for songs with an empty grouping field.
func (k GroupKey) UnknownLabel() string {
	switch k {
	case GroupByYear:
		return UnknownYear
	case GroupBySinger:
		return UnknownSinger
	case GroupByComposer:
		return UnknownComposer
	default:
		return UnknownTonality
	}
}

// Value returns the grouping label of a song for this key.
func (k GroupKey) Value(s catalog.Song) string {
	var v string
	switch k {
	case GroupByYear:
		v = s.Year
	case GroupBySinger:
		v = s.Singer1
	case GroupByComposer:
		v = s.Composer1
	default:
		v = s.Tonality
	}
	if v == "" {
		return k.UnknownLabel()
	}
	return v
}

// Group is one partition of a catalog.
type Group struct {
	Label string                    `json:"label"`
	Songs []catalog.DisplayableSong `json:"songs"`
}

// Groups is an ordered partition: labels appear in first-occurrence order.
type Groups []Group

// Get returns the songs under label.
func (g Groups) Get(label string) ([]catalog.DisplayableSong, bool) {
	for _, group := range g {
		if group.Label == label {
			return group.Songs, true
		}
	}
	return nil, false
}

// Labels returns the group labels in order.
func (g Groups) Labels() []string {
	labels := make([]string, len(g))
	for i, group := range g {
		labels[i] = group.Label
	}
	return labels
}

// Len returns the number of groups.
func (g Groups) Len() int {
	return len(g)
}

// GroupBy partitions songs by key. Every song lands in exactly one group and
// keeps its relative order there.
func GroupBy(songs []catalog.DisplayableSong, key GroupKey) Groups {
	index := make(map[string]int)
	groups := make(Groups, 0)

	for _, song := range songs {
		label := key.Value(song.Song)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Songs = append(groups[i].Songs, song)
	}
	return groups
}
