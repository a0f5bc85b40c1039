package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/franz/songbook/internal/query"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the songs of the catalog",
	Long: `List every song of the catalog, sorted by title (default), year, singer
or composer. All keys, years included, compare as text with Greek
collation, so songs lacking a value come first.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search songs by title, lyrics, credits, year or tonality",
	Long: `Search the catalog for songs whose title, lyrics, singers, composers,
lyricists, year or tonality contain the query, ignoring case. The result
keeps catalog order unless --sort is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)

	listCmd.Flags().String("sort", string(query.SortByTitle), "sort key: "+joinKeys(query.SortKeys))
	searchCmd.Flags().String("sort", "", "sort key: "+joinKeys(query.SortKeys))
}

func runList(cmd *cobra.Command, args []string) error {
	songs, _, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	printSongs(cmd.OutOrStdout(), query.Sort(songs, query.ParseSortKey(sortBy)))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	songs, _, err := loadSongs(cmd.Context())
	if err != nil {
		return err
	}

	results := query.Search(songs, strings.Join(args, " "))
	if sortBy, _ := cmd.Flags().GetString("sort"); sortBy != "" {
		results = query.Sort(results, query.ParseSortKey(sortBy))
	}

	printSongs(cmd.OutOrStdout(), results)
	return nil
}

func joinKeys[K ~string](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
