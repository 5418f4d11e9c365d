// file: cmd/watch.go
// version: 1.0.0
// guid: 8d9e0f1a-2b3c-4d5e-6f7a-8b9c0d1e2f3a

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/logging"
	"github.com/plexkit/audiobook-keeper/internal/mover"
	"github.com/plexkit/audiobook-keeper/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source directory and move new audiobooks as they arrive",
	Long: `Watch the source directory for new audio files and run the move
workflow once events settle for the debounce period. Runs until
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.SourceDir == "" {
			return fmt.Errorf("source directory not specified")
		}
		if config.AppConfig.LibraryDir == "" {
			return fmt.Errorf("library directory not specified")
		}

		log := logging.Open(config.AppConfig.LogPath)
		defer log.Close()

		m := mover.New(&config.AppConfig, log)
		w := watcher.New(func(sourceDir string) {
			log.Infof("Changes settled in %s, moving new audiobooks", sourceDir)
			m.Run()
		}, watchDebounce)

		if err := w.Start(config.AppConfig.SourceDir); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Stop()

		log.Infof("Watching %s (debounce %s), press Ctrl-C to stop", config.AppConfig.SourceDir, watchDebounce)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Infof("Stopping watcher")
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "settle period after the last file event")
}
