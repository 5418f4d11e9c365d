// file: internal/covers/itunes.go
// version: 1.0.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

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

// ITunesClient searches the iTunes Store API for audiobook artwork. It is
// the primary cover provider.
type ITunesClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewITunesClient creates a new iTunes search client.
func NewITunesClient(timeout time.Duration) *ITunesClient {
	baseURL := os.Getenv("ITUNES_BASE_URL")
	if baseURL == "" {
		baseURL = "https://itunes.apple.com"
	}
	return NewITunesClientWithBaseURL(baseURL, timeout)
}

// NewITunesClientWithBaseURL creates a client with a custom base URL (for testing).
func NewITunesClientWithBaseURL(baseURL string, timeout time.Duration) *ITunesClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ITunesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this provider.
func (c *ITunesClient) Name() string {
	return "iTunes"
}

// iTunes search API response types
type itunesResult struct {
	ArtworkURL100 string `json:"artworkUrl100"`
}

type itunesSearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []itunesResult `json:"results"`
}

// FindCover searches for an audiobook by free-text title and returns a
// high-resolution artwork URL. An empty URL with a nil error means the
// provider had no usable result.
func (c *ITunesClient) FindCover(title string) (string, error) {
	searchURL := fmt.Sprintf("%s/search?term=%s&media=audiobook&limit=1", c.baseURL, url.QueryEscape(title))

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return "", fmt.Errorf("failed to search iTunes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("iTunes API returned status %d", resp.StatusCode)
	}

	var searchResp itunesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode iTunes response: %w", err)
	}

	if searchResp.ResultCount == 0 || len(searchResp.Results) == 0 {
		return "", nil
	}
	raw := searchResp.Results[0].ArtworkURL100
	if raw == "" {
		return "", nil
	}
	return UpgradeArtworkURL(raw), nil
}

// UpgradeArtworkURL rewrites the standard 100x100 iTunes artwork URL to its
// 600x600 variant. URLs without the low-resolution marker pass through
// unchanged.
func UpgradeArtworkURL(rawURL string) string {
	return strings.Replace(rawURL, "100x100", "600x600", 1)
}
