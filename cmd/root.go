// file: cmd/root.go
// version: 1.0.0
// guid: 3e4f5a6b-7c8d-9e0f-1a2b-3c4d5e6f7a8b

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plexkit/audiobook-keeper/internal/config"
)

var cfgFile string
var sourceDir string
var artDir string
var libraryDir string
var coverName string
var logPath string
var dryRun bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiobook-keeper",
	Short: "Keep a Plex audiobook library tidy",
	Long: `Audiobook Keeper moves downloaded audiobooks into per-book folders,
copies matching album art alongside them, and fetches missing cover art
from the iTunes and Open Library APIs.

Every command supports --dry-run, which narrates each action without
touching the filesystem or downloading anything.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.audiobook-keeper.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source", "", "flat directory holding downloaded audio files")
	rootCmd.PersistentFlags().StringVar(&artDir, "art-source", "", "directory holding local album art")
	rootCmd.PersistentFlags().StringVar(&libraryDir, "library", "", "destination library of per-book folders")
	rootCmd.PersistentFlags().StringVar(&coverName, "cover-name", "cover.jpg", "filename cover images are written under")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "audiobook-keeper.log", "append-only plaintext log file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "narrate actions without performing them")

	viper.BindPFlag("source_dir", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("art_dir", rootCmd.PersistentFlags().Lookup("art-source"))
	viper.BindPFlag("library_dir", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("cover_filename", rootCmd.PersistentFlags().Lookup("cover-name"))
	viper.BindPFlag("log_path", rootCmd.PersistentFlags().Lookup("log"))
	viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))

	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(coversCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".audiobook-keeper")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
