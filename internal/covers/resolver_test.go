// file: internal/covers/resolver_test.go
// version: 1.1.0
// guid: 4e5f6a7b-8c9d-0e1f-2a3b-4c5d6e7f8a9b

package covers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plexkit/audiobook-keeper/internal/config"
	"github.com/plexkit/audiobook-keeper/internal/logging"
)

type stubProvider struct {
	name  string
	url   string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) FindCover(title string) (string, error) {
	s.calls++
	return s.url, s.err
}

func testConfig(libraryDir string) *config.Config {
	return &config.Config{
		LibraryDir:    libraryDir,
		CoverFilename: "cover.jpg",
		ProviderDelay: time.Millisecond,
		HTTPTimeout:   5 * time.Second,
	}
}

func testLogger() *logging.Logger {
	l := logging.Open("")
	l.SetConsole(nil)
	return l
}

func makeBookFolder(t *testing.T, root, name string) string {
	t.Helper()
	folder := filepath.Join(root, name)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	return folder
}

// imageServer serves JPEG bytes on every path.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolverSkipsFoldersWithCover(t *testing.T) {
	root := t.TempDir()
	folder := makeBookFolder(t, root, "Dune")
	if err := os.WriteFile(filepath.Join(folder, "poster.png"), []byte("art"), 0o644); err != nil {
		t.Fatal(err)
	}

	primary := &stubProvider{name: "A"}
	fallback := &stubProvider{name: "B"}
	r := NewWithProviders(testConfig(root), testLogger(), primary, fallback)

	stats := r.Run(context.Background())

	if primary.calls != 0 || fallback.calls != 0 {
		t.Errorf("providers must not be queried for covered folders (A=%d, B=%d)", primary.calls, fallback.calls)
	}
	if stats.Skipped != 1 || stats.Processed != 1 {
		t.Errorf("expected 1 skipped of 1 processed, got %+v", stats)
	}
	// Folder contents untouched.
	entries, _ := os.ReadDir(folder)
	if len(entries) != 1 {
		t.Errorf("folder must not be modified, has %d entries", len(entries))
	}
}

func TestResolverPrimaryProviderWins(t *testing.T) {
	server := imageServer(t)
	root := t.TempDir()
	folder := makeBookFolder(t, root, "Dune")

	primary := &stubProvider{name: "A", url: server.URL + "/cover.jpg"}
	fallback := &stubProvider{name: "B", url: server.URL + "/other.jpg"}
	r := NewWithProviders(testConfig(root), testLogger(), primary, fallback)

	stats := r.Run(context.Background())

	if primary.calls != 1 {
		t.Errorf("expected primary queried once, got %d", primary.calls)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not be queried when primary hits, got %d", fallback.calls)
	}
	if stats.Succeeded != 1 || stats.BySource["A"] != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(folder, "cover.jpg")); err != nil {
		t.Errorf("cover.jpg should exist: %v", err)
	}
}

func TestResolverFallsBackOnce(t *testing.T) {
	server := imageServer(t)
	root := t.TempDir()
	makeBookFolder(t, root, "Obscure Title")

	primary := &stubProvider{name: "A"} // no result
	fallback := &stubProvider{name: "B", url: server.URL + "/cover.jpg"}
	r := NewWithProviders(testConfig(root), testLogger(), primary, fallback)

	stats := r.Run(context.Background())

	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("expected each provider queried exactly once, got A=%d B=%d", primary.calls, fallback.calls)
	}
	if stats.BySource["B"] != 1 {
		t.Errorf("expected success credited to fallback, got %+v", stats)
	}
}

func TestResolverProviderErrorIsAMiss(t *testing.T) {
	server := imageServer(t)
	root := t.TempDir()
	makeBookFolder(t, root, "Dune")

	primary := &stubProvider{name: "A", err: context.DeadlineExceeded}
	fallback := &stubProvider{name: "B", url: server.URL + "/cover.jpg"}
	r := NewWithProviders(testConfig(root), testLogger(), primary, fallback)

	stats := r.Run(context.Background())

	if stats.Failed != 0 || stats.Succeeded != 1 {
		t.Errorf("provider error must fall through, got %+v", stats)
	}
}

func TestResolverNotFound(t *testing.T) {
	root := t.TempDir()
	folder := makeBookFolder(t, root, "Nowhere Book")

	primary := &stubProvider{name: "A"}
	fallback := &stubProvider{name: "B"}
	r := NewWithProviders(testConfig(root), testLogger(), primary, fallback)

	stats := r.Run(context.Background())

	if stats.Failed != 1 {
		t.Errorf("expected 1 failed, got %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(folder, "cover.jpg")); !os.IsNotExist(err) {
		t.Error("no cover file should be written")
	}
}

func TestResolverDryRun(t *testing.T) {
	server := imageServer(t)
	root := t.TempDir()
	folder := makeBookFolder(t, root, "Dune")

	cfg := testConfig(root)
	cfg.DryRun = true
	primary := &stubProvider{name: "A", url: server.URL + "/cover.jpg"}
	r := NewWithProviders(cfg, testLogger(), primary)

	stats := r.Run(context.Background())

	if primary.calls != 1 {
		t.Errorf("dry run still performs resolution, got %d calls", primary.calls)
	}
	if stats.Succeeded != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	entries, _ := os.ReadDir(folder)
	if len(entries) != 0 {
		t.Errorf("dry run must not write files, folder has %d entries", len(entries))
	}
}

func TestResolverDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	root := t.TempDir()
	folder := makeBookFolder(t, root, "Dune")

	primary := &stubProvider{name: "A", url: server.URL + "/gone.jpg"}
	r := NewWithProviders(testConfig(root), testLogger(), primary)

	stats := r.Run(context.Background())

	if stats.Failed != 1 {
		t.Errorf("expected download failure counted, got %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(folder, "cover.jpg")); !os.IsNotExist(err) {
		t.Error("failed download must not leave a cover file")
	}
}

func TestResolverRejectsNonImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not art</html>"))
	}))
	defer server.Close()

	root := t.TempDir()
	makeBookFolder(t, root, "Dune")

	primary := &stubProvider{name: "A", url: server.URL + "/page"}
	r := NewWithProviders(testConfig(root), testLogger(), primary)

	stats := r.Run(context.Background())
	if stats.Failed != 1 {
		t.Errorf("expected non-image response to fail the item, got %+v", stats)
	}
}

func TestResolverMissingLibraryDir(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "nope"))
	primary := &stubProvider{name: "A"}
	r := NewWithProviders(cfg, testLogger(), primary)

	stats := r.Run(context.Background())

	if stats.Processed != 0 || primary.calls != 0 {
		t.Errorf("missing library dir must abort before processing, got %+v", stats)
	}
}

// End-to-end through the real iTunes client: a folder named Dune, a search
// result whose artwork URL carries the 100x100 marker, and a resolver that
// must fetch the 600x600 variant and save it as cover.jpg.
func TestResolverUpgradesITunesArtwork(t *testing.T) {
	var requestedPaths []string
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		switch r.URL.Path {
		case "/search":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"resultCount": 1,
				"results": [{"artworkUrl100": "` + server.URL + `/art/100x100bb.jpg"}]
			}`))
		case "/art/600x600bb.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	root := t.TempDir()
	folder := makeBookFolder(t, root, "Dune")

	cfg := testConfig(root)
	itunes := NewITunesClientWithBaseURL(server.URL, cfg.HTTPTimeout)
	r := NewWithProviders(cfg, testLogger(), itunes)

	stats := r.Run(context.Background())

	if stats.Succeeded != 1 || stats.BySource["iTunes"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	data, err := os.ReadFile(filepath.Join(folder, "cover.jpg"))
	if err != nil {
		t.Fatalf("cover.jpg missing: %v", err)
	}
	if len(data) != 4 {
		t.Errorf("unexpected cover bytes: %v", data)
	}
	for _, p := range requestedPaths {
		if p == "/art/100x100bb.jpg" {
			t.Error("low-resolution artwork must never be requested")
		}
	}
}
