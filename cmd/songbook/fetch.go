package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/songbook/internal/loader"
	"github.com/franz/songbook/internal/store"
	"github.com/franz/songbook/internal/util"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download a catalog endpoint and store a snapshot",
	Long: `Download the catalog published at an http(s) endpoint and store the
payload in the snapshot database. Later commands fall back to the newest
snapshot when the endpoint cannot be reached.

Without an argument the configured source is fetched. Older snapshots of
the same endpoint beyond --keep are pruned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored catalog snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshots,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(snapshotsCmd)

	fetchCmd.Flags().Int("keep", 5, "snapshots to keep per endpoint (0 = keep all)")
	viper.BindPFlag("fetch.keep", fetchCmd.Flags().Lookup("keep"))

	snapshotsCmd.Flags().Bool("all", false, "list snapshots of every source, not only the configured one")
}

func runFetch(cmd *cobra.Command, args []string) error {
	endpoint := GetConfigString("source", "")
	if len(args) > 0 {
		endpoint = args[0]
	}
	if !loader.IsEndpoint(endpoint) {
		return fmt.Errorf("%w: %q is not an http(s) URL", util.ErrInvalidConfig, endpoint)
	}

	db, err := store.Open(GetConfigString("db", util.DefaultDBPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	util.InfoLog("Fetching %s", endpoint)
	records, payload, err := loader.NewAPILoader(apiOptions()).Fetch(cmd.Context(), endpoint)
	if err != nil {
		return err
	}

	snap, err := db.SaveSnapshot(endpoint, payload, len(records))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	util.SuccessLog("Stored snapshot %s: %s records, %s", shortID(snap.ID),
		humanize.Comma(int64(snap.RecordCount)), humanize.Bytes(uint64(snap.SizeBytes)))

	if keep := viper.GetInt("fetch.keep"); keep > 0 {
		pruned, err := db.PruneSnapshots(endpoint, keep)
		if err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		if pruned > 0 {
			util.InfoLog("Pruned %d old snapshots", pruned)
		}
	}

	return nil
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	source := GetConfigString("source", "")
	if all, _ := cmd.Flags().GetBool("all"); all {
		source = ""
	}

	db, err := store.Open(GetConfigString("db", util.DefaultDBPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	snaps, err := db.ListSnapshots(source)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, "No snapshots.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(out, "%s  %-14s %8s records %9s  %s\n",
			shortID(s.ID), humanize.Time(s.FetchedAt), humanize.Comma(int64(s.RecordCount)),
			humanize.Bytes(uint64(s.SizeBytes)), s.Source)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
