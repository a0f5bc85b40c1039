package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franz/songbook/internal/catalog"
)

func displayable(songs ...catalog.Song) []catalog.DisplayableSong {
	out := make([]catalog.DisplayableSong, len(songs))
	for i, s := range songs {
		out[i] = catalog.DisplayableSong{Song: s, UniqueKey: catalog.Key(s, i)}
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	st := Aggregate(nil)

	assert.Equal(t, Statistics{YearRange: YearRange{Earliest: 9999, Latest: 0}}, st)
	assert.True(t, st.YearRange.IsEmpty())
}

func TestAggregateScenario(t *testing.T) {
	songs := catalog.Process([]catalog.RawRecord{
		{catalog.LabelTitle: "A", catalog.LabelYear: "1990", catalog.LabelSinger1: "X", catalog.LabelYoutube: "#"},
		{catalog.LabelTitle: "B", catalog.LabelYear: "1985", catalog.LabelSinger1: "Y", catalog.LabelYoutube: "http://example.com"},
	})

	st := Aggregate(songs)

	assert.Equal(t, 2, st.TotalSongs)
	assert.Equal(t, 1, st.SongsWithYoutube)
	assert.Equal(t, YearRange{Earliest: 1985, Latest: 1990}, st.YearRange)
	assert.False(t, st.YearRange.IsEmpty())
	assert.Equal(t, 2, st.UniqueYears)
	assert.Equal(t, 2, st.UniqueSingers)
}

func TestAggregateDeduplicatesAcrossRoles(t *testing.T) {
	songs := displayable(
		catalog.Song{Singer1: "Μπέλλου", Singer2: "Τσιτσάνης", Composer1: "Τσιτσάνης", Lyricist1: "Τσιτσάνης", Year: "1948"},
		catalog.Song{Singer1: "Τσιτσάνης", Singer3: "Νίνου", Composer1: "Χιώτης", Composer2: "Τσιτσάνης", Lyricist2: "Βίρβος", Year: "1948"},
		catalog.Song{Singer1: "Μπέλλου", Year: ""},
	)

	st := Aggregate(songs)

	assert.Equal(t, 3, st.TotalSongs)
	assert.Equal(t, 1, st.UniqueYears)
	assert.Equal(t, 3, st.UniqueSingers)
	assert.Equal(t, 2, st.UniqueComposers)
	assert.Equal(t, 2, st.UniqueLyricists)
}

func TestSongsWithYoutube(t *testing.T) {
	songs := displayable(
		catalog.Song{YoutubeLink: ""},
		catalog.Song{YoutubeLink: "#"},
		catalog.Song{YoutubeLink: "https://youtu.be/x"},
		catalog.Song{YoutubeLink: " #"},
	)

	assert.Equal(t, 2, Aggregate(songs).SongsWithYoutube)
}

func TestYearRange(t *testing.T) {
	tests := []struct {
		name     string
		years    []string
		expected YearRange
	}{
		{"missing years do not lower earliest", []string{"", "1960", "1940"}, YearRange{1940, 1960}},
		{"no parseable year", []string{"", "άγνωστο"}, YearRange{NoEarliestYear, NoLatestYear}},
		{"prefix parse", []string{"1962 (live)", " 1950"}, YearRange{1950, 1962}},
		{"sentinel year excluded from earliest", []string{"9999", "1970"}, YearRange{1970, 9999}},
		{"only sentinel year", []string{"9999"}, YearRange{NoEarliestYear, 9999}},
		{"negative years count for latest", []string{"-5", "-10"}, YearRange{-10, -5}},
		{"unparseable counts as zero for latest", []string{"-5", "x"}, YearRange{-5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs := make([]catalog.Song, len(tt.years))
			for i, y := range tt.years {
				songs[i] = catalog.Song{Year: y}
			}
			assert.Equal(t, tt.expected, Aggregate(displayable(songs...)).YearRange)
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		year  int
		ok    bool
	}{
		{"1935", 1935, true},
		{"  1935", 1935, true},
		{"1935-1940", 1935, true},
		{"+12", 12, true},
		{"-300", -300, true},
		{"", 0, false},
		{"c. 1935", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		year, ok := ParseYear(tt.input)
		assert.Equal(t, tt.ok, ok, "ParseYear(%q)", tt.input)
		assert.Equal(t, tt.year, year, "ParseYear(%q)", tt.input)
	}
}
