package catalog

// Column labels used by the catalog export.
const (
	LabelTitle     = "Τίτλος τραγουδιού"
	LabelLyrics    = "Στίχοι του τραγουδιού"
	LabelTonality  = "ΤΟΝΙΚΗ"
	LabelYoutube   = "LINK_YOUTUBE"
	LabelMusicPath = "Musicpath"
	LabelComposer1 = "Συνθέτης_1"
	LabelComposer2 = "Συνθέτης_2"
	LabelLyricist1 = "Στιχουργός_1"
	LabelLyricist2 = "Στιχουργός_2"
	LabelSinger1   = "Τραγουδιστής_1"
	LabelSinger2   = "Τραγουδιστής_2"
	LabelSinger3   = "Τραγουδιστής_3"
	LabelYear      = "Έτος"
)

// FieldMapping binds one raw column label to a Song field.
type FieldMapping struct {
	Label    string
	Field    string
	Optional bool
	ref      func(*Song) *string
}

// FieldMappings is the translation table from raw labels to Song fields,
// in export column order.
var FieldMappings = []FieldMapping{
	{Label: LabelTitle, Field: "title", ref: func(s *Song) *string { return &s.Title }},
	{Label: LabelLyrics, Field: "lyrics", ref: func(s *Song) *string { return &s.Lyrics }},
	{Label: LabelTonality, Field: "tonality", ref: func(s *Song) *string { return &s.Tonality }},
	{Label: LabelYoutube, Field: "youtubeLink", ref: func(s *Song) *string { return &s.YoutubeLink }},
	{Label: LabelMusicPath, Field: "musicPath", ref: func(s *Song) *string { return &s.MusicPath }},
	{Label: LabelComposer1, Field: "composer1", ref: func(s *Song) *string { return &s.Composer1 }},
	{Label: LabelComposer2, Field: "composer2", Optional: true, ref: func(s *Song) *string { return &s.Composer2 }},
	{Label: LabelLyricist1, Field: "lyricist1", ref: func(s *Song) *string { return &s.Lyricist1 }},
	{Label: LabelLyricist2, Field: "lyricist2", Optional: true, ref: func(s *Song) *string { return &s.Lyricist2 }},
	{Label: LabelSinger1, Field: "singer1", ref: func(s *Song) *string { return &s.Singer1 }},
	{Label: LabelSinger2, Field: "singer2", Optional: true, ref: func(s *Song) *string { return &s.Singer2 }},
	{Label: LabelSinger3, Field: "singer3", Optional: true, ref: func(s *Song) *string { return &s.Singer3 }},
	{Label: LabelYear, Field: "year", ref: func(s *Song) *string { return &s.Year }},
}
