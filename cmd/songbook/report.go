package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/query"
	"github.com/franz/songbook/internal/report"
	"github.com/franz/songbook/internal/util"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a Markdown summary of the catalog",
	Long: `Generate a catalog report in Markdown format.

The report includes:
- Catalog statistics and year range
- Group sizes for the chosen attribute, largest first
- Audio file audit findings (with --audit)

The report is saved to artifacts/reports/<timestamp>/catalog.md unless
--out is given.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("out", "", "Output directory for report (default: artifacts/reports/<timestamp>)")
	reportCmd.Flags().String("by", string(query.GroupBySinger), "group key: "+joinKeys(query.GroupKeys))
	reportCmd.Flags().Int("top", 25, "number of groups to include (0 = all)")
	reportCmd.Flags().Bool("audit", false, "audit the musicPath files and include the findings")
}

func runReport(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	key, err := query.ParseGroupKey(by)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")
	withAudit, _ := cmd.Flags().GetBool("audit")

	util.InfoLog("=== Generating Catalog Report ===")

	songs, source, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}
	util.InfoLog("Source: %s (%d songs)", source, len(songs))

	catalogReport := report.Build(songs, key, source)

	if withAudit {
		util.InfoLog("Auditing audio files...")
		result, err := newAuditor().Audit(cmd.Context(), songs)
		if err != nil {
			return err
		}
		catalogReport.Audit = result
	}

	outputDir, _ := cmd.Flags().GetString("out")
	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join("artifacts", "reports", timestamp)
	}
	outputPath := filepath.Join(outputDir, "catalog.md")

	if err := report.WriteMarkdown(catalogReport, outputPath, top); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	util.SuccessLog("Report written to %s", outputPath)
	return nil
}
