// file: internal/library/library.go
// version: 1.2.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// audioExtensions are the file extensions treated as audiobook audio.
var audioExtensions = map[string]bool{
	".m4b":  true,
	".mp3":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".flac": true,
	".wma":  true,
}

// artExtensions are probed, in order, when matching local album art by base
// name. Case variants are listed explicitly to match art exported by tools
// that upper-case extensions.
var artExtensions = []string{".jpg", ".jpeg", ".png", ".JPG", ".JPEG", ".PNG"}

// coverNames are the filenames that count as existing cover art inside a
// book folder.
var coverNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"poster.jpg", "poster.jpeg", "poster.png",
}

// AudioFile is one audio item discovered in a source directory. Base is the
// filename with the extension stripped and doubles as the book folder name.
type AudioFile struct {
	Path string
	Base string
}

// IsAudioFile reports whether name has a recognized audio extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// BaseName returns the filename without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ListAudioFiles returns the audio files directly inside dir, in lexical
// order. Subdirectories are not descended into.
func ListAudioFiles(dir string) ([]AudioFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	var files []AudioFile
	for _, entry := range entries {
		if entry.IsDir() || !IsAudioFile(entry.Name()) {
			continue
		}
		files = append(files, AudioFile{
			Path: filepath.Join(dir, entry.Name()),
			Base: BaseName(entry.Name()),
		})
	}
	return files, nil
}

// BookFolders returns the per-book subdirectories of root, in lexical order.
func BookFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read library directory: %w", err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(root, entry.Name()))
		}
	}
	return folders, nil
}

// HasCoverArt reports whether folder already contains any recognized cover
// filename.
func HasCoverArt(folder string) bool {
	for _, name := range coverNames {
		if _, err := os.Stat(filepath.Join(folder, name)); err == nil {
			return true
		}
	}
	return false
}

// FindMatchingArt looks for an image in artDir whose base name equals base
// exactly. The first extension match wins; ok is false when nothing matches.
func FindMatchingArt(artDir, base string) (path string, ok bool) {
	for _, ext := range artExtensions {
		candidate := filepath.Join(artDir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
