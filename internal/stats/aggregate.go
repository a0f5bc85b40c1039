// Package stats computes summary figures over a processed catalog.
package stats

import (
	"github.com/franz/songbook/internal/catalog"
)

// YoutubePlaceholder marks a song that has no video link.
const YoutubePlaceholder = "#"

// Year range sentinels. A range of (NoEarliestYear, NoLatestYear) means no
// song had a usable year; it is not a real span.
const (
	NoEarliestYear = 9999
	NoLatestYear   = 0
)

// YearRange is the span of catalog years.
//
// The two bounds treat missing years asymmetrically: songs without a
// parseable year never lower Earliest (they are excluded) but count as 0 when
// computing Latest. With no parseable years at all the range is
// {NoEarliestYear, NoLatestYear}. Callers must check IsEmpty before showing it.
type YearRange struct {
	Earliest int `json:"earliest"`
	Latest   int `json:"latest"`
}

// IsEmpty reports whether the range is the "no data" pair.
func (r YearRange) IsEmpty() bool {
	return r.Earliest == NoEarliestYear && r.Latest == NoLatestYear
}

// Statistics summarizes a catalog.
type Statistics struct {
	TotalSongs       int       `json:"totalSongs"`
	UniqueYears      int       `json:"uniqueYears"`
	UniqueSingers    int       `json:"uniqueSingers"`
	UniqueComposers  int       `json:"uniqueComposers"`
	UniqueLyricists  int       `json:"uniqueLyricists"`
	SongsWithYoutube int       `json:"songsWithYoutube"`
	YearRange        YearRange `json:"yearRange"`
}

// Aggregate computes Statistics for songs. Credits are deduplicated across
// roles, so a singer listed as singer1 on one song and singer2 on another
// counts once.
func Aggregate(songs []catalog.DisplayableSong) Statistics {
	years := make(map[string]struct{})
	singers := make(map[string]struct{})
	composers := make(map[string]struct{})
	lyricists := make(map[string]struct{})

	st := Statistics{
		TotalSongs: len(songs),
		YearRange:  YearRange{Earliest: NoEarliestYear, Latest: NoLatestYear},
	}

	for i, s := range songs {
		if s.Year != "" {
			years[s.Year] = struct{}{}
		}
		addAll(singers, s.Singers())
		addAll(composers, s.Composers())
		addAll(lyricists, s.Lyricists())

		if HasYoutube(s.Song) {
			st.SongsWithYoutube++
		}

		y, ok := ParseYear(s.Year)
		if ok && y < st.YearRange.Earliest {
			st.YearRange.Earliest = y
		}
		if !ok {
			y = NoLatestYear
		}
		if i == 0 || y > st.YearRange.Latest {
			st.YearRange.Latest = y
		}
	}

	st.UniqueYears = len(years)
	st.UniqueSingers = len(singers)
	st.UniqueComposers = len(composers)
	st.UniqueLyricists = len(lyricists)
	return st
}

// HasYoutube reports whether a song carries a real video link.
func HasYoutube(s catalog.Song) bool {
	return s.YoutubeLink != "" && s.YoutubeLink != YoutubePlaceholder
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		set[v] = struct{}{}
	}
}
