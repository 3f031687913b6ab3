package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Cabral137/monitor-precos/helpers"
	apperrors "github.com/Cabral137/monitor-precos/pkg/errors"
	"github.com/Cabral137/monitor-precos/services/cache"
)

// RenderClient fetches product pages through a remote render API (ScrapFly
// compatible). Sites that require client-side rendering set the profile's
// RenderJS flag, which is forwarded to the API; the page itself is never
// rendered in-process. When no API key is configured the client falls back
// to a direct request with browser headers.
type RenderClient struct {
	apiURL    string
	apiKey    string
	country   string
	cacheSvc  cache.CacheService
	blockTime time.Duration
	client    *http.Client
}

// NewRenderClient creates a render API client. cacheSvc may be nil to
// disable rate-limit block windows.
func NewRenderClient(apiURL, apiKey, country string, cacheSvc cache.CacheService, blockTime time.Duration) *RenderClient {
	return &RenderClient{
		apiURL:    apiURL,
		apiKey:    apiKey,
		country:   country,
		cacheSvc:  cacheSvc,
		blockTime: blockTime,
		// Render APIs hold the connection open while the page loads
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Fetch returns the page content for a product URL. A fetch failure aborts
// the whole check for that product; extraction is never run on absent
// content.
func (c *RenderClient) Fetch(ctx context.Context, pageURL string, renderJS bool) (io.Reader, error) {
	blockKey := blockKeyFor(pageURL)

	// Respect an active block window for the target domain
	if c.cacheSvc != nil && blockKey != "" {
		if _, err := c.cacheSvc.Get(blockKey); err == nil {
			return nil, apperrors.NewRateLimit(pageURL, c.blockTime)
		}
	}

	if c.apiKey == "" {
		return helpers.FetchWithBrowserHeaders(pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL, nil)
	if err != nil {
		return nil, apperrors.NewFetch(pageURL, "failed to create request", err)
	}

	query := req.URL.Query()
	query.Set("key", c.apiKey)
	query.Set("url", pageURL)
	query.Set("render_js", strconv.FormatBool(renderJS))
	query.Set("country", c.country)
	req.URL.RawQuery = query.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewFetch(pageURL, "render API request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		// Stop hitting the API for this domain until the window expires
		if c.cacheSvc != nil && blockKey != "" {
			blockSeconds := fmt.Sprintf("%d", c.blockTime/time.Second)
			if setErr := c.cacheSvc.Set(blockKey, []byte(blockSeconds), c.blockTime); setErr != nil {
				return nil, apperrors.NewCache(pageURL, "failed to set block window", setErr)
			}
		}
		return nil, apperrors.NewRateLimit(pageURL, c.blockTime)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFetch(pageURL, fmt.Sprintf("render API status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFetch(pageURL, "failed to read response body", err)
	}

	// The API wraps the rendered page in a JSON envelope
	var envelope struct {
		Result struct {
			Content string `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewFetch(pageURL, "failed to parse render API response", err)
	}
	if envelope.Result.Content == "" {
		return nil, apperrors.NewFetch(pageURL, "render API returned no content", nil)
	}

	return strings.NewReader(envelope.Result.Content), nil
}

// blockKeyFor derives the rate-limit cache key from the page's host.
func blockKeyFor(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "fetch_block:" + u.Host
}
