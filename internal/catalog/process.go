package catalog

// Processor turns raw records into a displayable catalog.
type Processor struct {
	// Rand drives height jitter. Nil uses DefaultRand.
	Rand Rand
}

// Process normalizes every record and attaches its derived fields, using the
// record's position as the ordinal index. Output order and length match the input.
func (p Processor) Process(raws []RawRecord) []DisplayableSong {
	songs := make([]DisplayableSong, len(raws))
	for i, raw := range raws {
		song := Normalize(raw)
		songs[i] = DisplayableSong{
			Song:      song,
			Height:    Height(song, p.Rand),
			UniqueKey: Key(song, i),
		}
	}
	return songs
}

// Process runs the default Processor.
func Process(raws []RawRecord) []DisplayableSong {
	return Processor{}.Process(raws)
}
