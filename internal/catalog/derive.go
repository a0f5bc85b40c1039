package catalog

import (
	"math/rand/v2"
	"strconv"
)

// Card sizing constants, in layout units.
const (
	BaseHeight   = 180
	CreditHeight = 15
	HeightJitter = 20
)

// KeySeparator joins the parts of a UniqueKey.
const KeySeparator = "-"

// Rand is the randomness source used for height jitter.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide math/rand/v2 source.
var DefaultRand Rand = globalRand{}

// Height returns the card height hint for a song: the base height, one
// CreditHeight per secondary credit present, and a jitter in [0, HeightJitter).
// A nil rng uses DefaultRand.
func Height(song Song, rng Rand) int {
	if rng == nil {
		rng = DefaultRand
	}

	height := BaseHeight
	for _, extra := range []string{song.Singer2, song.Singer3, song.Composer2, song.Lyricist2} {
		if extra != "" {
			height += CreditHeight
		}
	}
	return height + rng.IntN(HeightJitter)
}

// Key returns the identifier of a song within one processed catalog.
// It is unique only because index is.
func Key(song Song, index int) string {
	return song.Title + KeySeparator + song.Year + KeySeparator + strconv.Itoa(index)
}
