package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/query"
	"github.com/franz/songbook/internal/util"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Group songs by year, singer, composer or tonality",
	Long: `Partition the catalog by the chosen attribute. Groups appear in the order
their label first occurs in the catalog; songs without a value are
collected under the "unknown" label of that attribute.

Use --songs to list the titles of each group.`,
	Args: cobra.NoArgs,
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)

	groupsCmd.Flags().String("by", string(query.GroupByYear), "group key: "+joinKeys(query.GroupKeys))
	groupsCmd.Flags().Bool("songs", false, "list the songs of each group")
}

func runGroups(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	key, err := query.ParseGroupKey(by)
	if err != nil {
		return err
	}
	showSongs, _ := cmd.Flags().GetBool("songs")

	songs, _, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	groups := query.GroupBy(songs, key)
	if groups.Len() == 0 {
		fmt.Fprintln(out, "No songs.")
		return nil
	}

	width := util.GetTerminalWidth()
	for _, g := range groups {
		fmt.Fprintf(out, "%s (%d)\n", g.Label, len(g.Songs))
		if !showSongs {
			continue
		}
		for _, s := range g.Songs {
			fmt.Fprintf(out, "  • %s\n", util.Truncate(s.Title, width-4))
		}
	}
	fmt.Fprintf(out, "\n%d groups by %s\n", groups.Len(), key)
	return nil
}
