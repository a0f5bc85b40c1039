package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/loader"
	"github.com/franz/songbook/internal/store"
	"github.com/franz/songbook/internal/util"
)

// apiOptions builds loader options from the fetch.* config keys
func apiOptions() loader.APIOptions {
	opts := loader.DefaultAPIOptions()
	opts.Timeout = GetConfigDuration("fetch.timeout", util.DefaultFetchTimeout)
	opts.RetryCount = viper.GetInt("fetch.retries")
	return opts
}

// openSource resolves the configured catalog source. For endpoints the
// snapshot database is opened as well; the returned func closes it.
func openSource() (loader.Source, func(), error) {
	location := GetConfigString("source", "")
	if location == "" {
		return loader.Source{}, nil, fmt.Errorf("%w: no catalog source (use --source or SONGBOOK_SOURCE)", util.ErrInvalidConfig)
	}

	src := loader.Source{Location: location}
	closeFn := func() {}

	if loader.IsEndpoint(location) {
		src.API = loader.NewAPILoader(apiOptions())

		dbPath := GetConfigString("db", util.DefaultDBPath)
		db, err := store.Open(dbPath)
		if err != nil {
			// Loading still works without snapshots
			util.WarnLog("Snapshot database unavailable (%s): %v", dbPath, err)
		} else {
			src.Snapshots = db
			closeFn = func() { db.Close() }
		}
	}

	return src, closeFn, nil
}

// loadSongs loads and processes the configured catalog
func loadSongs(ctx context.Context) ([]catalog.DisplayableSong, string, error) {
	src, closeFn, err := openSource()
	if err != nil {
		return nil, "", err
	}
	defer closeFn()

	util.DebugLog("Loading catalog from %s", src.Location)
	songs := loader.LoadCatalog(ctx, src)
	util.DebugLog("Loaded %d songs", len(songs))
	return songs, src.Location, nil
}

// printSongs writes one line per song, sized to the terminal
func printSongs(w io.Writer, songs []catalog.DisplayableSong) {
	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs.")
		return
	}

	width := util.GetTerminalWidth()
	// title | singer | composer | year
	titleW := max(20, (width-16)*2/5)
	nameW := max(12, (width-16-titleW)/2)

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n", titleW, "TITLE", nameW, "SINGER", nameW, "COMPOSER", "YEAR")
	fmt.Fprintln(w, strings.Repeat("─", min(width, titleW+2*nameW+10)))
	for _, s := range songs {
		fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
			titleW, util.Truncate(s.Title, titleW),
			nameW, util.Truncate(strings.Join(s.Singers(), ", "), nameW),
			nameW, util.Truncate(strings.Join(s.Composers(), ", "), nameW),
			s.Year)
	}
	fmt.Fprintf(w, "\n%d songs\n", len(songs))
}
