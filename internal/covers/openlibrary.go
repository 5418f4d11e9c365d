// file: internal/covers/openlibrary.go
// version: 1.0.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package covers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// OpenLibraryClient searches the Open Library API for book covers. It is
// the fallback provider when iTunes has no result.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenLibraryClient creates a new Open Library search client.
func NewOpenLibraryClient(timeout time.Duration) *OpenLibraryClient {
	baseURL := os.Getenv("OPENLIBRARY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	return NewOpenLibraryClientWithBaseURL(baseURL, timeout)
}

// NewOpenLibraryClientWithBaseURL creates a client with a custom base URL (for testing).
func NewOpenLibraryClientWithBaseURL(baseURL string, timeout time.Duration) *OpenLibraryClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenLibraryClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this provider.
func (c *OpenLibraryClient) Name() string {
	return "Open Library"
}

// Open Library search API response types
type openLibraryDoc struct {
	Title  string `json:"title"`
	CoverI int    `json:"cover_i"`
}

type openLibrarySearchResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

// FindCover searches for a book by free-text title and returns the large
// cover image URL built from the result's cover identifier. An empty URL
// with a nil error means the provider had no usable result.
func (c *OpenLibraryClient) FindCover(title string) (string, error) {
	searchURL := fmt.Sprintf("%s/search.json?title=%s&limit=1", c.baseURL, url.QueryEscape(title))

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return "", fmt.Errorf("failed to search Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Open Library API returned status %d", resp.StatusCode)
	}

	var searchResp openLibrarySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode Open Library response: %w", err)
	}

	if searchResp.NumFound == 0 || len(searchResp.Docs) == 0 {
		return "", nil
	}
	coverID := searchResp.Docs[0].CoverI
	if coverID <= 0 {
		return "", nil
	}
	return CoverImageURL(coverID), nil
}

// CoverImageURL builds the large Open Library cover image URL for a cover
// identifier.
func CoverImageURL(coverID int) string {
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", coverID)
}
