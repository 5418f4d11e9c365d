// file: internal/config/config.go
// version: 1.0.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings shared by every workflow. Each workflow entry
// point receives a *Config rather than reading globals itself.
type Config struct {
	// SourceDir is the flat directory holding downloaded audio files.
	SourceDir string
	// ArtDir is the directory holding local album art for the organizer.
	ArtDir string
	// LibraryDir is the destination library of per-book folders.
	LibraryDir string
	// CoverFilename is the name cover images are written under inside each
	// book folder.
	CoverFilename string
	// LogPath is the append-only plaintext log file.
	LogPath string
	// DryRun narrates every action without touching the filesystem or the
	// network beyond read-only lookups.
	DryRun bool
	// ProviderDelay is the fixed courtesy pause between cover lookups.
	ProviderDelay time.Duration
	// HTTPTimeout bounds every metadata and image request.
	HTTPTimeout time.Duration
}

// AppConfig is the process-wide configuration populated by InitConfig.
var AppConfig Config

// InitConfig loads the application configuration from viper.
func InitConfig() {
	viper.SetDefault("cover_filename", "cover.jpg")
	viper.SetDefault("log_path", "audiobook-keeper.log")
	viper.SetDefault("provider_delay", "500ms")
	viper.SetDefault("http_timeout", "15s")

	AppConfig = Config{
		SourceDir:     viper.GetString("source_dir"),
		ArtDir:        viper.GetString("art_dir"),
		LibraryDir:    viper.GetString("library_dir"),
		CoverFilename: viper.GetString("cover_filename"),
		LogPath:       viper.GetString("log_path"),
		DryRun:        viper.GetBool("dry_run"),
		ProviderDelay: viper.GetDuration("provider_delay"),
		HTTPTimeout:   viper.GetDuration("http_timeout"),
	}

	if AppConfig.CoverFilename == "" {
		AppConfig.CoverFilename = "cover.jpg"
	}
	if AppConfig.ProviderDelay <= 0 {
		AppConfig.ProviderDelay = 500 * time.Millisecond
	}
	if AppConfig.HTTPTimeout <= 0 {
		AppConfig.HTTPTimeout = 15 * time.Second
	}
}
