// file: internal/organizer/organizer.go
// version: 2.0.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package organizer

import (
	"os"
	"path/filepath"

	"github.com/plexkit/audiobook-keeper/internal/artwork"
	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/fileops"
	"github.com/plexkit/audiobook-keeper/internal/library"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/report"
)

// Organizer copies audio files into per-book library folders and attaches
// matching album art renamed to the configured cover filename. Copies are
// non-destructive; a destination file whose size already matches the source
// marks the item as already organized.
type Organizer struct {
	cfg *config.Config
	log *logging.Logger
}

// New creates an Organizer.
func New(cfg *config.Config, log *logging.Logger) *Organizer {
	return &Organizer{cfg: cfg, log: log}
}

// Run processes every audio file in the source directory once. The source
// and art directories must exist; the library directory is created on
// demand. Per-item failures are counted and the loop continues.
func (o *Organizer) Run() report.Stats {
	var stats report.Stats

	o.log.Infof("Organizing audiobooks")
	o.log.Infof("Audio source: %s", o.cfg.SourceDir)
	o.log.Infof("Album art source: %s", o.cfg.ArtDir)
	o.log.Infof("Destination: %s", o.cfg.LibraryDir)
	if o.cfg.DryRun {
		o.log.Infof("DRY RUN MODE - no files will be copied")
	}

	if !library.DirExists(o.cfg.SourceDir) {
		o.log.Errorf("audio source folder does not exist: %s", o.cfg.SourceDir)
		return stats
	}
	if !library.DirExists(o.cfg.ArtDir) {
		o.log.Errorf("album art folder does not exist: %s", o.cfg.ArtDir)
		return stats
	}

	if !library.DirExists(o.cfg.LibraryDir) && !o.cfg.DryRun {
		if err := os.MkdirAll(o.cfg.LibraryDir, 0o755); err != nil {
			o.log.Errorf("creating destination folder: %v", err)
			return stats
		}
		o.log.Infof("Created destination folder: %s", o.cfg.LibraryDir)
	}

	files, err := library.ListAudioFiles(o.cfg.SourceDir)
	if err != nil {
		o.log.Errorf("%v", err)
		return stats
	}
	if len(files) == 0 {
		o.log.Infof("No audio files found in source folder")
		return stats
	}

	o.log.Infof("Found %d audio file(s) to process", len(files))

	for _, f := range files {
		stats.Record(o.organizeOne(f))
	}

	o.log.Infof("Successfully processed: %d", stats.Succeeded)
	o.log.Infof("Skipped (already exist): %d", stats.Skipped)
	o.log.Infof("Failures: %d", stats.Failed)
	return stats
}

func (o *Organizer) organizeOne(f library.AudioFile) report.Result {
	bookFolder := filepath.Join(o.cfg.LibraryDir, f.Base)
	destination := filepath.Join(bookFolder, filepath.Base(f.Path))

	// Size-equal destination means the item was organized by an earlier run.
	if destInfo, err := os.Stat(destination); err == nil {
		srcInfo, err := os.Stat(f.Path)
		if err != nil {
			o.log.Errorf("processing %s: %v", filepath.Base(f.Path), err)
			return report.Failedf(f.Base, "stat source: %v", err)
		}
		if srcInfo.Size() == destInfo.Size() {
			o.log.Infof("Skipping (already exists): %s", f.Base)
			return report.Skipped(f.Base, "already organized")
		}
		o.log.Infof("Processing (file size mismatch): %s", f.Base)
	} else {
		o.log.Infof("Processing (new): %s", f.Base)
	}

	if o.cfg.DryRun {
		o.log.Infof("  [DRY RUN] would create folder: %s", bookFolder)
		o.log.Infof("  [DRY RUN] would copy audio file to: %s", destination)
	} else {
		if err := os.MkdirAll(bookFolder, 0o755); err != nil {
			o.log.Errorf("processing %s: %v", filepath.Base(f.Path), err)
			return report.Failedf(f.Base, "create folder: %v", err)
		}
		o.log.Infof("  created folder: %s", bookFolder)

		if err := fileops.CopyFile(f.Path, destination); err != nil {
			o.log.Errorf("processing %s: %v", filepath.Base(f.Path), err)
			return report.Failedf(f.Base, "copy audio: %v", err)
		}
		o.log.Infof("  copied audio file to: %s", destination)
	}

	o.attachArt(f, bookFolder)
	return report.Success(f.Base)
}

// attachArt copies the matching local album art into the book folder under
// the configured cover filename, falling back to artwork embedded in the
// audio file's tags. A missing cover is a warning, never a failure.
func (o *Organizer) attachArt(f library.AudioFile, bookFolder string) {
	coverDest := filepath.Join(bookFolder, o.cfg.CoverFilename)

	if artPath, ok := library.FindMatchingArt(o.cfg.ArtDir, f.Base); ok {
		if o.cfg.DryRun {
			o.log.Infof("  [DRY RUN] would copy album art: %s -> %s", filepath.Base(artPath), o.cfg.CoverFilename)
			return
		}
		if err := fileops.CopyFile(artPath, coverDest); err != nil {
			o.log.Warnf("copying album art for %s: %v", f.Base, err)
			return
		}
		o.log.Infof("  copied album art: %s -> %s", filepath.Base(artPath), o.cfg.CoverFilename)
		return
	}

	if artwork.HasEmbedded(f.Path) {
		if o.cfg.DryRun {
			o.log.Infof("  [DRY RUN] would extract embedded artwork -> %s", o.cfg.CoverFilename)
			return
		}
		if err := artwork.ExtractEmbedded(f.Path, coverDest); err != nil {
			o.log.Warnf("extracting embedded artwork for %s: %v", f.Base, err)
			return
		}
		o.log.Infof("  extracted embedded artwork -> %s", o.cfg.CoverFilename)
		return
	}

	o.log.Warnf("no matching album art found for: %s", f.Base)
}
