package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// RawRecord is one catalog entry as exported by the source spreadsheet,
// keyed by the Greek column labels. It is treated as immutable input.
type RawRecord map[string]string

// UnmarshalJSON accepts any JSON scalar as a field value. Exports often
// carry numeric years ("Έτος": 1990); those are stringified. Nulls are
// dropped so they read as absent.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := make(RawRecord, len(fields))
	for label, value := range fields {
		if value == nil {
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", label, err)
		}
		out[label] = s
	}
	*r = out
	return nil
}

// Song is the normalized catalog entry.
//
// The "1" fields (Composer1, Lyricist1, Singer1) are the primary credits and
// are always considered present. The "2"/"3" fields are optional and never
// stand in for a primary credit.
type Song struct {
	Title       string `json:"title"`
	Lyrics      string `json:"lyrics"`
	Tonality    string `json:"tonality"`
	YoutubeLink string `json:"youtubeLink"`
	MusicPath   string `json:"musicPath"`
	Composer1   string `json:"composer1"`
	Composer2   string `json:"composer2,omitempty"`
	Lyricist1   string `json:"lyricist1"`
	Lyricist2   string `json:"lyricist2,omitempty"`
	Singer1     string `json:"singer1"`
	Singer2     string `json:"singer2,omitempty"`
	Singer3     string `json:"singer3,omitempty"`
	Year        string `json:"year"`
}

// DisplayableSong is a Song plus the presentation fields computed once at
// processing time.
type DisplayableSong struct {
	Song
	Height    int    `json:"height"`
	UniqueKey string `json:"uniqueKey"`
}

// Singers returns the non-empty singer credits in role order.
func (s Song) Singers() []string {
	return nonEmpty(s.Singer1, s.Singer2, s.Singer3)
}

// Composers returns the non-empty composer credits in role order.
func (s Song) Composers() []string {
	return nonEmpty(s.Composer1, s.Composer2)
}

// Lyricists returns the non-empty lyricist credits in role order.
func (s Song) Lyricists() []string {
	return nonEmpty(s.Lyricist1, s.Lyricist2)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
