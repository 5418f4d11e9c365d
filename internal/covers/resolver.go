// file: internal/covers/resolver.go
// version: 1.1.0
// guid: 9f0a1b2c-3d4e-5f6a-7b8c-9d0e1f2a3b4c

package covers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/library"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/report"
)

// maxCoverBytes caps a single cover download.
const maxCoverBytes = 10 * 1024 * 1024

// Provider resolves a cover image URL for a book title. An empty URL with a
// nil error means no usable result; both misses and errors fall through to
// the next provider.
type Provider interface {
	Name() string
	FindCover(title string) (string, error)
}

// Candidate is a resolved but not-yet-downloaded cover image URL with its
// provider source. Discarded after download or failure.
type Candidate struct {
	URL    string
	Source string
}

// Resolver finds and downloads missing cover art for every book folder in
// the library. Providers are queried strictly in order; the first usable
// result wins.
type Resolver struct {
	cfg        *config.Config
	log        *logging.Logger
	providers  []Provider
	limiter    *rate.Limiter
	httpClient *http.Client

	// ShowProgress renders a progress bar across folders; left off in tests
	// and when output is piped.
	ShowProgress bool
}

// New creates a Resolver with the default provider chain: iTunes first,
// Open Library as fallback.
func New(cfg *config.Config, log *logging.Logger) *Resolver {
	return NewWithProviders(cfg, log,
		NewITunesClient(cfg.HTTPTimeout),
		NewOpenLibraryClient(cfg.HTTPTimeout),
	)
}

// NewWithProviders creates a Resolver with an explicit provider chain.
func NewWithProviders(cfg *config.Config, log *logging.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		cfg:        cfg,
		log:        log,
		providers:  providers,
		limiter:    rate.NewLimiter(rate.Every(cfg.ProviderDelay), 1),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Run processes every book folder in the library once. A missing library
// directory is a fatal precondition: the run logs an error and returns
// without processing any item.
func (r *Resolver) Run(ctx context.Context) report.Stats {
	var stats report.Stats

	r.log.Infof("Cover art resolver")
	r.log.Infof("Library folder: %s", r.cfg.LibraryDir)
	r.log.Infof("Cover filename: %s", r.cfg.CoverFilename)
	if r.cfg.DryRun {
		r.log.Infof("DRY RUN MODE - no files will be downloaded")
	}

	if !library.DirExists(r.cfg.LibraryDir) {
		r.log.Errorf("library folder does not exist: %s", r.cfg.LibraryDir)
		return stats
	}

	folders, err := library.BookFolders(r.cfg.LibraryDir)
	if err != nil {
		r.log.Errorf("%v", err)
		return stats
	}
	if len(folders) == 0 {
		r.log.Infof("No book folders found")
		return stats
	}

	r.log.Infof("Found %d book folder(s)", len(folders))

	var bar *progressbar.ProgressBar
	if r.ShowProgress {
		bar = progressbar.Default(int64(len(folders)))
	}

	for _, folder := range folders {
		stats.Record(r.resolveFolder(ctx, folder, &stats))
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	r.log.Infof("Total folders processed: %d", stats.Processed)
	r.log.Infof("Already had cover art: %d", stats.Skipped)
	for _, p := range r.providers {
		r.log.Infof("Downloaded from %s: %d", p.Name(), stats.BySource[p.Name()])
	}
	r.log.Infof("Failed to find: %d", stats.Failed)
	return stats
}

// resolveFolder walks one folder through the cover states: folders that
// already hold a recognized cover are terminal skips and never touch a
// provider; otherwise providers are queried in order and the first hit is
// downloaded.
func (r *Resolver) resolveFolder(ctx context.Context, folder string, stats *report.Stats) report.Result {
	title := filepath.Base(folder)
	r.log.Infof("%s", title)

	if library.HasCoverArt(folder) {
		r.log.Infof("  already has cover art")
		return report.Skipped(title, "has cover")
	}

	// Fixed courtesy delay between items that hit the providers.
	if err := r.limiter.Wait(ctx); err != nil {
		return report.Failedf(title, "canceled: %v", err)
	}

	candidate, found := r.resolve(title)
	if !found {
		r.log.Infof("  no cover art found")
		return report.Failed(title, "not found")
	}

	coverPath := filepath.Join(folder, r.cfg.CoverFilename)

	if r.cfg.DryRun {
		r.log.Infof("  [DRY RUN] would download from %s: %s", candidate.Source, candidate.URL)
		r.log.Infof("  [DRY RUN] would save to: %s", coverPath)
		return report.Success(title)
	}

	r.log.Infof("  downloading from %s...", candidate.Source)
	if err := r.download(candidate.URL, coverPath); err != nil {
		r.log.Errorf("  download failed: %v", err)
		return report.Failedf(title, "download: %v", err)
	}

	r.log.Infof("  saved to: %s", coverPath)
	stats.RecordSource(candidate.Source)
	return report.Success(title)
}

// resolve queries the provider chain in order. Provider errors and empty
// results are both treated as misses, never surfaced as run errors.
func (r *Resolver) resolve(title string) (Candidate, bool) {
	for _, p := range r.providers {
		coverURL, err := p.FindCover(title)
		if err != nil {
			r.log.Infof("  %s lookup failed: %v", p.Name(), err)
			continue
		}
		if coverURL == "" {
			r.log.Infof("  not found on %s", p.Name())
			continue
		}
		r.log.Infof("  found on %s: %s", p.Name(), coverURL)
		return Candidate{URL: coverURL, Source: p.Name()}, true
	}
	return Candidate{}, false
}

// download streams the image at coverURL to destPath. Partial files are
// removed on failure so a bad download never counts as existing cover art.
func (r *Resolver) download(coverURL, destPath string) error {
	resp, err := r.httpClient.Get(coverURL)
	if err != nil {
		return fmt.Errorf("failed to download cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cover download returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unexpected content type: %s", contentType)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create cover file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxCoverBytes)); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to write cover file: %w", err)
	}
	return nil
}
