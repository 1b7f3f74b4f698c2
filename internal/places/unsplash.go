package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// DefaultUnsplashURL is the photo search endpoint of the public Unsplash API.
const DefaultUnsplashURL = "https://api.unsplash.com/search/photos"

var (
	ErrNoAccessKey = errors.New("unsplash access key not configured")
	ErrNoResults   = errors.New("no photo found")
)

// PhotoSearcher finds a photo URL for a free-text query.
type PhotoSearcher interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
}

// UnsplashClient implements PhotoSearcher against the Unsplash search API.
type UnsplashClient struct {
	httpClient *http.Client
	endpoint   string
	accessKey  string
}

// NewUnsplashClient creates a client. An empty endpoint means DefaultUnsplashURL.
func NewUnsplashClient(accessKey, endpoint string, httpClient *http.Client) *UnsplashClient {
	if endpoint == "" {
		endpoint = DefaultUnsplashURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &UnsplashClient{httpClient: httpClient, endpoint: endpoint, accessKey: accessKey}
}

// SearchPhoto returns the small rendition of the first landscape result.
func (c *UnsplashClient) SearchPhoto(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", ErrNoAccessKey
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("photo search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("photo search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	small := gjson.GetBytes(body, "results.0.urls.small")
	if !small.Exists() || small.String() == "" {
		return "", ErrNoResults
	}
	return small.String(), nil
}
