// file: internal/mover/mover.go
// version: 1.0.0
// guid: 4a5b6c7d-8e9f-0a1b-2c3d-4e5f6a7b8c9d

package mover

import (
	"path/filepath"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/fileops"
	"github.com/plexkit/audiobook-keeper/internal/library"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/report"
)

// Mover relocates audio files from a flat source directory into per-book
// folders under the library directory. The move is destructive: on success
// the source file no longer exists at its original path.
type Mover struct {
	cfg *config.Config
	log *logging.Logger
}

// New creates a Mover.
func New(cfg *config.Config, log *logging.Logger) *Mover {
	return &Mover{cfg: cfg, log: log}
}

// Run processes every audio file in the source directory once. Missing
// source or library directories are fatal preconditions: the run logs an
// error and returns without processing any item. Per-item failures are
// counted and the loop continues.
func (m *Mover) Run() report.Stats {
	var stats report.Stats

	m.log.Infof("Moving audiobooks from %s to %s", m.cfg.SourceDir, m.cfg.LibraryDir)
	if m.cfg.DryRun {
		m.log.Infof("DRY RUN MODE - no files will be moved")
	}

	if !library.DirExists(m.cfg.SourceDir) {
		m.log.Errorf("source folder does not exist: %s", m.cfg.SourceDir)
		return stats
	}
	if !library.DirExists(m.cfg.LibraryDir) {
		m.log.Errorf("library folder does not exist: %s", m.cfg.LibraryDir)
		return stats
	}

	files, err := library.ListAudioFiles(m.cfg.SourceDir)
	if err != nil {
		m.log.Errorf("%v", err)
		return stats
	}
	if len(files) == 0 {
		m.log.Infof("No audio files found in %s", m.cfg.SourceDir)
		return stats
	}

	m.log.Infof("Found %d audiobook(s) to process", len(files))

	for _, f := range files {
		stats.Record(m.moveOne(f))
	}

	m.log.Infof("Moved %d, skipped %d, failed %d", stats.Succeeded, stats.Skipped, stats.Failed)
	return stats
}

func (m *Mover) moveOne(f library.AudioFile) report.Result {
	bookFolder := filepath.Join(m.cfg.LibraryDir, f.Base)
	destination := filepath.Join(bookFolder, filepath.Base(f.Path))

	m.log.Infof("%s", filepath.Base(f.Path))
	m.log.Infof("  -> creating folder: %s", bookFolder)
	m.log.Infof("  -> moving to: %s", destination)

	if m.cfg.DryRun {
		m.log.Infof("  [DRY RUN] no changes made")
		return report.Success(f.Base)
	}

	if err := fileops.MoveFile(f.Path, destination); err != nil {
		m.log.Errorf("  moving %s: %v", filepath.Base(f.Path), err)
		return report.Failedf(f.Base, "move: %v", err)
	}

	m.log.Infof("  moved successfully")
	return report.Success(f.Base)
}
