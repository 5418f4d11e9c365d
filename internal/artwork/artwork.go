// file: internal/artwork/artwork.go
// version: 1.0.0
// guid: 8e9f0a1b-2c3d-4e5f-6a7b-8c9d0e1f2a3b

package artwork

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// ExtractEmbedded reads the artwork embedded in an audio file's tags and
// writes it to destPath. Returns an error when the file carries no artwork.
func ExtractEmbedded(audioPath, destPath string) error {
	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("failed to read audio tags: %w", err)
	}

	pic := meta.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return fmt.Errorf("no embedded artwork in %s", audioPath)
	}

	if err := os.WriteFile(destPath, pic.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write artwork: %w", err)
	}
	return nil
}

// HasEmbedded reports whether the audio file carries embedded artwork.
func HasEmbedded(audioPath string) bool {
	f, err := os.Open(audioPath)
	if err != nil {
		return false
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return false
	}
	pic := meta.Picture()
	return pic != nil && len(pic.Data) > 0
}
