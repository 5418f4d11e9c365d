// file: cmd/commands_test.go
// version: 1.0.0
// guid: 9e0f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMoveCommand(t *testing.T) {
	source := t.TempDir()
	library := t.TempDir()
	logPath := filepath.Join(t.TempDir(), "keeper.log")
	writeFile(t, filepath.Join(source, "My Book.m4b"), "audio")

	rootCmd.SetArgs([]string{"move", "--source", source, "--library", library, "--log", logPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(library, "My Book", "My Book.m4b")); err != nil {
		t.Errorf("file not moved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(source, "My Book.m4b")); !os.IsNotExist(err) {
		t.Error("source file should be gone")
	}

	logData, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(logData), "My Book.m4b") {
		t.Errorf("log should mention the moved file: %q", logData)
	}
}

func TestMoveCommandRequiresSource(t *testing.T) {
	rootCmd.SetArgs([]string{"move", "--source", "", "--library", ""})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected usage error without --source")
	}
}

func TestOrganizeCommand(t *testing.T) {
	source := t.TempDir()
	art := t.TempDir()
	library := filepath.Join(t.TempDir(), "library")
	logPath := filepath.Join(t.TempDir(), "keeper.log")
	writeFile(t, filepath.Join(source, "Dune.m4b"), "audio")
	writeFile(t, filepath.Join(art, "Dune.jpg"), "art")

	rootCmd.SetArgs([]string{
		"organize",
		"--source", source,
		"--art-source", art,
		"--library", library,
		"--log", logPath,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(library, "Dune", "Dune.m4b")); err != nil {
		t.Errorf("audio not organized: %v", err)
	}
	if _, err := os.Stat(filepath.Join(library, "Dune", "cover.jpg")); err != nil {
		t.Errorf("art not attached: %v", err)
	}
}

func TestCoversCommandDryRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"resultCount": 1,
			"results": [{"artworkUrl100": "https://example.com/100x100bb.jpg"}]
		}`))
	}))
	defer server.Close()
	t.Setenv("ITUNES_BASE_URL", server.URL)

	library := t.TempDir()
	if err := os.MkdirAll(filepath.Join(library, "Dune"), 0o755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(t.TempDir(), "keeper.log")

	rootCmd.SetArgs([]string{"covers", "--library", library, "--log", logPath, "--dry-run"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	// Resolution ran, download did not.
	entries, _ := os.ReadDir(filepath.Join(library, "Dune"))
	if len(entries) != 0 {
		t.Errorf("dry run must not write covers, found %d entries", len(entries))
	}
	logData, _ := os.ReadFile(logPath)
	if !strings.Contains(string(logData), "600x600") {
		t.Errorf("log should show the upgraded artwork URL: %q", logData)
	}
}
