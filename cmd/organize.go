// file: cmd/organize.go
// version: 1.0.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/organizer"
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Copy audiobooks and album art into per-book folders",
	Long: `Copy every audio file in the source directory into a folder named
after the file's base name, and attach matching album art from the art
directory renamed to the cover filename. Copies are non-destructive and a
destination file of matching size is skipped, so repeated runs are safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.SourceDir == "" {
			return fmt.Errorf("source directory not specified")
		}
		if config.AppConfig.ArtDir == "" {
			return fmt.Errorf("art directory not specified")
		}
		if config.AppConfig.LibraryDir == "" {
			return fmt.Errorf("library directory not specified")
		}

		log := logging.Open(config.AppConfig.LogPath)
		defer log.Close()

		organizer.New(&config.AppConfig, log).Run()
		return nil
	},
}
