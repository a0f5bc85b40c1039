package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/franz/songbook/internal/audit"
	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/query"
	"github.com/franz/songbook/internal/stats"
)

// CatalogReport is a complete catalog summary
type CatalogReport struct {
	GeneratedAt time.Time
	Source      string

	Stats stats.Statistics

	GroupKey query.GroupKey
	Groups   []GroupSummary

	// Audit is optional
	Audit *audit.Result
}

// GroupSummary is one group with its size
type GroupSummary struct {
	Label string
	Count int
}

// Build assembles a report for songs grouped by key
func Build(songs []catalog.DisplayableSong, key query.GroupKey, source string) *CatalogReport {
	report := &CatalogReport{
		GeneratedAt: time.Now(),
		Source:      source,
		Stats:       stats.Aggregate(songs),
		GroupKey:    key,
		Groups:      make([]GroupSummary, 0),
	}

	for _, g := range query.GroupBy(songs, key) {
		report.Groups = append(report.Groups, GroupSummary{Label: g.Label, Count: len(g.Songs)})
	}

	// Largest groups first; ties keep first-occurrence order
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Count > report.Groups[j].Count
	})

	return report
}

// TopGroups returns at most limit groups
func (r *CatalogReport) TopGroups(limit int) []GroupSummary {
	if limit <= 0 || len(r.Groups) <= limit {
		return r.Groups
	}
	return r.Groups[:limit]
}

// FormatYearRange renders the year range, or "n/a" when no song had a year
func FormatYearRange(yr stats.YearRange) string {
	if yr.IsEmpty() {
		return "n/a"
	}
	if yr.Earliest == stats.NoEarliestYear {
		return fmt.Sprintf("n/a – %d", yr.Latest)
	}
	return fmt.Sprintf("%d – %d", yr.Earliest, yr.Latest)
}

// WriteMarkdown writes the report as Markdown
func WriteMarkdown(report *CatalogReport, outputPath string, groupLimit int) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(RenderMarkdown(report, groupLimit)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// RenderMarkdown renders the report
func RenderMarkdown(report *CatalogReport, groupLimit int) string {
	var md strings.Builder
	st := report.Stats

	md.WriteString("# Song Catalog Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	if report.Source != "" {
		md.WriteString(fmt.Sprintf("**Source:** `%s`\n\n", report.Source))
	}
	md.WriteString("---\n\n")

	// Overview
	md.WriteString("## Overview\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Songs | %s |\n", humanize.Comma(int64(st.TotalSongs))))
	md.WriteString(fmt.Sprintf("| Distinct years | %s |\n", humanize.Comma(int64(st.UniqueYears))))
	md.WriteString(fmt.Sprintf("| Singers | %s |\n", humanize.Comma(int64(st.UniqueSingers))))
	md.WriteString(fmt.Sprintf("| Composers | %s |\n", humanize.Comma(int64(st.UniqueComposers))))
	md.WriteString(fmt.Sprintf("| Lyricists | %s |\n", humanize.Comma(int64(st.UniqueLyricists))))
	md.WriteString(fmt.Sprintf("| With YouTube link | %s |\n", humanize.Comma(int64(st.SongsWithYoutube))))
	md.WriteString(fmt.Sprintf("| Years | %s |\n", FormatYearRange(st.YearRange)))
	md.WriteString("\n")

	// Groups
	if len(report.Groups) > 0 {
		groups := report.TopGroups(groupLimit)
		md.WriteString(fmt.Sprintf("## Songs by %s\n\n", report.GroupKey))
		if len(groups) < len(report.Groups) {
			md.WriteString(fmt.Sprintf("*Top %d of %d groups*\n\n", len(groups), len(report.Groups)))
		}
		md.WriteString("| Group | Songs | Share |\n")
		md.WriteString("|-------|-------|-------|\n")
		for _, g := range groups {
			share := 0.0
			if st.TotalSongs > 0 {
				share = float64(g.Count) * 100 / float64(st.TotalSongs)
			}
			md.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", escapeCell(g.Label), g.Count, share))
		}
		md.WriteString("\n")
	}

	// Audit
	if report.Audit != nil {
		res := report.Audit
		md.WriteString("## Audio File Audit\n\n")
		md.WriteString(fmt.Sprintf("Checked %d songs, %d findings.\n\n", res.Checked, len(res.Findings)))

		if len(res.Findings) > 0 {
			md.WriteString("| Kind | Count |\n")
			md.WriteString("|------|-------|\n")
			for _, kind := range audit.Kinds {
				if n := res.Count(kind); n > 0 {
					md.WriteString(fmt.Sprintf("| %s | %d |\n", kind, n))
				}
			}
			md.WriteString("\n")

			md.WriteString("| # | Song | Kind | Path | Detail |\n")
			md.WriteString("|---|------|------|------|--------|\n")
			for _, f := range res.Findings {
				md.WriteString(fmt.Sprintf("| %d | %s | %s | `%s` | %s |\n",
					f.Index+1, escapeCell(f.Title), f.Kind, truncatePath(f.Path, 60), escapeCell(f.Detail)))
			}
			md.WriteString("\n")
		}
	}

	md.WriteString("---\n\n")
	md.WriteString("*Generated by songbook*\n")

	return md.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// truncatePath truncates a file path to a maximum length, keeping start and end
func truncatePath(path string, maxLen int) string {
	r := []rune(path)
	if len(r) <= maxLen {
		return path
	}
	start := maxLen/2 - 2
	end := len(r) - (maxLen/2 - 2)
	return string(r[:start]) + "..." + string(r[end:])
}
