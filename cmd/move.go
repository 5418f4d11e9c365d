// file: cmd/move.go
// version: 1.0.0
// guid: 4f5a6b7c-8d9e-0f1a-2b3c-4d5e6f7a8b9c

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/mover"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move downloaded audiobooks into per-book folders",
	Long: `Move every audio file in the source directory into a folder named
after the file's base name inside the library directory. The move is
destructive: the source file no longer exists afterwards. A destination
file that already exists fails that item and leaves the source in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.SourceDir == "" {
			return fmt.Errorf("source directory not specified")
		}
		if config.AppConfig.LibraryDir == "" {
			return fmt.Errorf("library directory not specified")
		}

		log := logging.Open(config.AppConfig.LogPath)
		defer log.Close()

		mover.New(&config.AppConfig, log).Run()
		return nil
	},
}
