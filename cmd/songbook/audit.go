package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/audit"
	"github.com/franz/songbook/internal/util"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the audio files referenced by the catalog",
	Long: `Open the file named by each song's musicPath, read its embedded tags and
report songs whose file is missing, unreadable, or whose tag title or year
disagrees with the catalog.

Relative paths are resolved against --root (config: audit.root).`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().String("root", "", "base directory for relative musicPath values")
	auditCmd.Flags().Int("workers", util.DefaultAuditWorkers, "number of files read in parallel")
}

// newAuditor builds an auditor from the audit.* config keys
func newAuditor() *audit.Auditor {
	a := audit.NewAuditor(GetConfigString("audit.root", ""), GetConfigInt("audit.workers", util.DefaultAuditWorkers))
	a.Progress = true
	return a
}

func runAudit(cmd *cobra.Command, args []string) error {
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		setConfig("audit.root", root)
	}
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		setConfig("audit.workers", workers)
	}

	songs, _, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}

	result, err := newAuditor().Audit(cmd.Context(), songs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Findings {
		line := fmt.Sprintf("%4d  %-16s %s", f.Index+1, f.Kind, f.Title)
		if f.Path != "" {
			line += "  " + f.Path
		}
		if f.Detail != "" {
			line += "  (" + f.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}

	if len(result.Findings) == 0 {
		util.SuccessLog("Checked %d songs in %s, no findings", result.Checked, result.Duration.Round(time.Millisecond))
		return nil
	}

	for _, kind := range audit.Kinds {
		if n := result.Count(kind); n > 0 {
			util.InfoLog("%-16s %d", kind, n)
		}
	}
	util.WarnLog("Checked %d songs in %s, %d findings", result.Checked, result.Duration.Round(time.Millisecond), len(result.Findings))
	return nil
}
