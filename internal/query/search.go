package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/franz/songbook/internal/catalog"
)

// Search returns the songs where any text field contains query, ignoring case.
// A blank query returns songs unchanged. Matches keep their input order.
func Search(songs []catalog.DisplayableSong, query string) []catalog.DisplayableSong {
	if strings.TrimSpace(query) == "" {
		return songs
	}

	lower := cases.Lower(language.Greek)
	term := lower.String(query)

	matches := make([]catalog.DisplayableSong, 0)
	for _, song := range songs {
		if matchesTerm(song.Song, term, lower) {
			matches = append(matches, song)
		}
	}
	return matches
}

func matchesTerm(song catalog.Song, term string, lower cases.Caser) bool {
	for _, field := range searchableFields(song) {
		if field == "" {
			continue
		}
		if strings.Contains(lower.String(field), term) {
			return true
		}
	}
	return false
}

func searchableFields(s catalog.Song) []string {
	return []string{
		s.Title,
		s.Singer1, s.Singer2, s.Singer3,
		s.Composer1, s.Composer2,
		s.Lyricist1, s.Lyricist2,
		s.Year,
		s.Tonality,
		s.Lyrics,
	}
}
