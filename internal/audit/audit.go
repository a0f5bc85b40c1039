// Package audit checks the audio files referenced by catalog songs against
// their embedded tags.
package audit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/stats"
	"github.com/franz/songbook/internal/util"
)

// Kind classifies a finding
type Kind string

const (
	KindMissingPath    Kind = "missing_path"
	KindMissingFile    Kind = "missing_file"
	KindUnreadableTags Kind = "unreadable_tags"
	KindTitleMismatch  Kind = "title_mismatch"
	KindYearMismatch   Kind = "year_mismatch"
)

// Kinds lists every finding kind in report order
var Kinds = []Kind{KindMissingPath, KindMissingFile, KindUnreadableTags, KindTitleMismatch, KindYearMismatch}

// Finding is one problem found for a song
type Finding struct {
	Index     int    `json:"index"`
	UniqueKey string `json:"uniqueKey"`
	Title     string `json:"title"`
	Path      string `json:"path,omitempty"`
	Kind      Kind   `json:"kind"`
	Detail    string `json:"detail,omitempty"`
}

// Result holds the outcome of an audit
type Result struct {
	Checked  int           `json:"checked"`
	Findings []Finding     `json:"findings"`
	Duration time.Duration `json:"duration"`
}

// Count returns the number of findings of kind
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Auditor reads the tags of musicPath files
type Auditor struct {
	Fs       afero.Fs
	Root     string // base directory for relative paths
	Workers  int
	Progress bool
}

// NewAuditor returns an auditor on the OS filesystem
func NewAuditor(root string, workers int) *Auditor {
	return &Auditor{Fs: afero.NewOsFs(), Root: root, Workers: workers}
}

// Audit checks every song. Findings are ordered by catalog position.
// It stops early and returns the context error if ctx is cancelled.
func (a *Auditor) Audit(ctx context.Context, songs []catalog.DisplayableSong) (*Result, error) {
	start := time.Now()
	workers := a.Workers
	if workers <= 0 {
		workers = util.DefaultAuditWorkers
	}

	var bar *progressbar.ProgressBar
	if a.Progress && util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(songs),
			progressbar.OptionSetDescription("Auditing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("songs"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	p := pool.NewWithResults[[]Finding]().
		WithContext(ctx).
		WithMaxGoroutines(workers)

	for i, song := range songs {
		p.Go(func(ctx context.Context) ([]Finding, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			findings := a.check(i, song)
			if bar != nil {
				bar.Add(1)
			}
			return findings, nil
		})
	}

	batches, err := p.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	result := &Result{Checked: len(songs), Findings: make([]Finding, 0)}
	for _, batch := range batches {
		result.Findings = append(result.Findings, batch...)
	}
	sort.SliceStable(result.Findings, func(i, j int) bool {
		return result.Findings[i].Index < result.Findings[j].Index
	})
	result.Duration = time.Since(start)

	util.DebugLog("Audited %d songs in %s: %d findings", result.Checked, result.Duration, len(result.Findings))
	return result, nil
}

func (a *Auditor) check(index int, song catalog.DisplayableSong) []Finding {
	finding := func(kind Kind, path, detail string) Finding {
		return Finding{Index: index, UniqueKey: song.UniqueKey, Title: song.Title, Path: path, Kind: kind, Detail: detail}
	}

	if strings.TrimSpace(song.MusicPath) == "" {
		return []Finding{finding(KindMissingPath, "", "")}
	}

	path := a.resolve(song.MusicPath)
	f, err := a.Fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Finding{finding(KindMissingFile, path, "")}
		}
		return []Finding{finding(KindMissingFile, path, err.Error())}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return []Finding{finding(KindUnreadableTags, path, err.Error())}
	}

	var findings []Finding
	if t := m.Title(); t != "" && !sameTitle(t, song.Title) {
		findings = append(findings, finding(KindTitleMismatch, path, fmt.Sprintf("tag title %q", t)))
	}
	if tagYear := m.Year(); tagYear > 0 {
		if year, ok := stats.ParseYear(song.Year); ok && year != tagYear {
			findings = append(findings, finding(KindYearMismatch, path, fmt.Sprintf("tag year %d", tagYear)))
		}
	}
	return findings
}

func (a *Auditor) resolve(musicPath string) string {
	p := filepath.FromSlash(strings.TrimSpace(musicPath))
	if a.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.Root, p)
}

func sameTitle(a, b string) bool {
	clean := func(s string) string {
		return strings.TrimSpace(norm.NFC.String(s))
	}
	return strings.EqualFold(clean(a), clean(b))
}
