// file: cmd/run.go
// version: 1.0.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/covers"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/organizer"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Organize audiobooks, then fetch missing cover art",
	Long:  `Run the organize workflow followed by the covers workflow.`,
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
		covers.New(&config.AppConfig, log).Run(context.Background())
		return nil
	},
}
