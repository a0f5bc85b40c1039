package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/loader"
	"github.com/franz/songbook/internal/store"
	"github.com/franz/songbook/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the configuration",
	Long: `Run diagnostic checks to ensure songbook can operate correctly.

This command checks:
- SQLite version
- Snapshot database accessibility
- Catalog source (file readable and decodable, or endpoint URL)
- Audit root directory (if configured)`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== Songbook Doctor ===")

	results := []checkResult{
		checkSQLite(),
		checkDatabase(GetConfigString("db", util.DefaultDBPath)),
		checkSource(GetConfigString("source", "")),
	}
	if root := GetConfigString("audit.root", ""); root != "" {
		results = append(results, checkAuditRoot(root))
	}

	hasErrors := false
	for _, r := range results {
		line := r.name
		if r.message != "" {
			line += ": " + r.message
		}

		switch {
		case r.error:
			hasErrors = true
			util.ErrorLog("[✗] %s", line)
		case r.warning:
			util.WarnLog("[⚠] %s", line)
		default:
			util.SuccessLog("[✓] %s", line)
		}
	}

	if hasErrors {
		return fmt.Errorf("diagnostics failed")
	}
	return nil
}

func checkSQLite() checkResult {
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{name: "SQLite", error: true, message: "unable to determine version"}
	}
	return checkResult{name: "SQLite", message: fmt.Sprintf("version %s (built-in)", version)}
}

func checkDatabase(dbPath string) checkResult {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{name: "Database", message: fmt.Sprintf("%s (will be created on first fetch)", dbPath)}
		}
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("cannot access %s: %v", dbPath, err)}
	}
	if !info.Mode().IsRegular() {
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("%s is not a regular file", dbPath)}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("cannot open %s: %v", dbPath, err)}
	}
	defer db.Close()

	snaps, err := db.ListSnapshots("")
	if err != nil {
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("cannot read snapshots: %v", err)}
	}

	return checkResult{
		name:    "Database",
		message: fmt.Sprintf("%s (%s, %d snapshots)", dbPath, humanize.Bytes(uint64(info.Size())), len(snaps)),
	}
}

func checkSource(location string) checkResult {
	if location == "" {
		return checkResult{name: "Source", error: true, message: "no catalog source (use --source or SONGBOOK_SOURCE)"}
	}
	if loader.IsEndpoint(location) {
		return checkResult{name: "Source", message: fmt.Sprintf("%s (endpoint, fetched on demand)", location)}
	}

	records, err := loader.NewFileLoader().Load(location)
	if err != nil {
		return checkResult{name: "Source", error: true, message: err.Error()}
	}
	if len(records) == 0 {
		return checkResult{name: "Source", warning: true, message: fmt.Sprintf("%s (no records)", location)}
	}
	return checkResult{name: "Source", message: fmt.Sprintf("%s (%d records)", location, len(records))}
}

func checkAuditRoot(path string) checkResult {
	info, err := os.Stat(path)
	if err != nil {
		return checkResult{name: "Audit root", warning: true, message: fmt.Sprintf("cannot access %s: %v", path, err)}
	}
	if !info.IsDir() {
		return checkResult{name: "Audit root", warning: true, message: fmt.Sprintf("%s is not a directory", path)}
	}
	return checkResult{name: "Audit root", message: path}
}
