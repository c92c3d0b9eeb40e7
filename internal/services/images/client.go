package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reelforge/internal/config"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	defaultPerQuery    = 3
)

// Client wraps the Pexels photo search API.
type Client struct {
	cfg        config.Images
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a photo search client from the images settings.
func NewClient(cfg config.Images, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.PerQuery <= 0 {
		cfg.PerQuery = defaultPerQuery
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// Photo is a single search result with the download URL already selected for
// the requested orientation.
type Photo struct {
	ID  int64
	URL string
	Alt string
}

type searchResponse struct {
	Photos []struct {
		ID  int64 `json:"id"`
		Src struct {
			Original  string `json:"original"`
			Large2x   string `json:"large2x"`
			Large     string `json:"large"`
			Portrait  string `json:"portrait"`
			Landscape string `json:"landscape"`
		} `json:"src"`
		Alt string `json:"alt"`
	} `json:"photos"`
}

// Search queries for photos matching the query, preferring the variant that
// matches the given orientation ("portrait" or "landscape").
func (c *Client) Search(ctx context.Context, query, orientation string) ([]Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("images search: query required")
	}
	if !c.Enabled() {
		return nil, errors.New("images search: api key required")
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/search")
	if err != nil {
		return nil, fmt.Errorf("images search: build url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(c.cfg.PerQuery))
	if orientation == "portrait" || orientation == "landscape" {
		params.Set("orientation", orientation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("images search: new request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("images search: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("images search: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("images search: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("images search: decode response: %w", err)
	}

	photos := make([]Photo, 0, len(parsed.Photos))
	for _, p := range parsed.Photos {
		u := p.Src.Large2x
		if orientation == "portrait" && p.Src.Portrait != "" {
			u = p.Src.Portrait
		} else if orientation == "landscape" && p.Src.Landscape != "" {
			u = p.Src.Landscape
		}
		if u == "" {
			u = p.Src.Original
		}
		if u == "" {
			continue
		}
		photos = append(photos, Photo{ID: p.ID, URL: u, Alt: strings.TrimSpace(p.Alt)})
	}
	return photos, nil
}

// Download fetches the photo at the given URL and writes it to destPath.
func (c *Client) Download(ctx context.Context, photoURL, destPath string) error {
	if strings.TrimSpace(photoURL) == "" {
		return errors.New("images download: url required")
	}
	if destPath == "" {
		return errors.New("images download: destination path required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return fmt.Errorf("images download: new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("images download: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("images download: http %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("images download: create directory: %w", err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("images download: create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("images download: write file: %w", err)
	}
	return nil
}
