package catalog

// Normalize maps a raw record onto a Song using FieldMappings.
// Missing labels leave the field empty; nothing is validated or defaulted.
func Normalize(raw RawRecord) Song {
	var song Song
	for _, m := range FieldMappings {
		*m.ref(&song) = raw[m.Label]
	}
	return song
}

// Denormalize is the inverse of Normalize. Empty optional fields are omitted.
func (s Song) Denormalize() RawRecord {
	raw := make(RawRecord, len(FieldMappings))
	for _, m := range FieldMappings {
		v := *m.ref(&s)
		if m.Optional && v == "" {
			continue
		}
		raw[m.Label] = v
	}
	return raw
}
