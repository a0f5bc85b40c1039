package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/report"
	"github.com/franz/songbook/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show the number of songs, distinct years, singers, composers and
lyricists, how many songs link a YouTube video, and the year range.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "print statistics as JSON")
}

type statsOutput struct {
	stats.Statistics
	YearRangeEmpty bool `json:"yearRangeEmpty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	songs, _, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}

	st := stats.Aggregate(songs)
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeStatsJSON(cmd.OutOrStdout(), st)
	}

	writeStatsText(cmd.OutOrStdout(), st)
	return nil
}

func writeStatsJSON(w io.Writer, st stats.Statistics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statsOutput{Statistics: st, YearRangeEmpty: st.YearRange.IsEmpty()}); err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	return nil
}

func writeStatsText(w io.Writer, st stats.Statistics) {
	fmt.Fprintf(w, "Songs:             %s\n", humanize.Comma(int64(st.TotalSongs)))
	fmt.Fprintf(w, "Distinct years:    %s\n", humanize.Comma(int64(st.UniqueYears)))
	fmt.Fprintf(w, "Singers:           %s\n", humanize.Comma(int64(st.UniqueSingers)))
	fmt.Fprintf(w, "Composers:         %s\n", humanize.Comma(int64(st.UniqueComposers)))
	fmt.Fprintf(w, "Lyricists:         %s\n", humanize.Comma(int64(st.UniqueLyricists)))
	fmt.Fprintf(w, "With YouTube link: %s\n", humanize.Comma(int64(st.SongsWithYoutube)))
	fmt.Fprintf(w, "Years:             %s\n", report.FormatYearRange(st.YearRange))
}
