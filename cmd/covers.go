// file: cmd/covers.go
// version: 1.0.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/covers"
	"github.com/plexkit/audiobook-keeper/internal/logging"
)

var coversProgress bool

// coversCmd represents the covers command
var coversCmd = &cobra.Command{
	Use:   "covers",
	Short: "Download missing cover art for book folders",
	Long: `Scan every book folder in the library and, for folders lacking a
recognized cover file, search iTunes first and Open Library second for
cover art and download the first hit as the cover filename. A fixed
courtesy delay is applied between lookups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.LibraryDir == "" {
			return fmt.Errorf("library directory not specified")
		}

		log := logging.Open(config.AppConfig.LogPath)
		defer log.Close()

		resolver := covers.New(&config.AppConfig, log)
		resolver.ShowProgress = coversProgress
		resolver.Run(context.Background())
		return nil
	},
}

func init() {
	coversCmd.Flags().BoolVar(&coversProgress, "progress", false, "render a progress bar across folders")
}
