package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"reelforge/internal/config"
)

const defaultHTTPTimeout = 300 * time.Second

// Client uploads objects to a Supabase Storage bucket.
type Client struct {
	cfg        config.Storage
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

// NewClient constructs a storage client from the storage settings.
func NewClient(cfg config.Storage, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
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

// UploadFile uploads the file at sourcePath to the configured bucket under
// objectKey and returns the public URL of the stored object.
func (c *Client) UploadFile(ctx context.Context, sourcePath, objectKey, contentType string) (string, error) {
	objectKey = strings.Trim(strings.TrimSpace(objectKey), "/")
	if objectKey == "" {
		return "", errors.New("storage upload: object key required")
	}
	if strings.TrimSpace(c.cfg.BaseURL) == "" || strings.TrimSpace(c.cfg.ServiceKey) == "" {
		return "", errors.New("storage upload: base url and service key required")
	}
	if strings.TrimSpace(c.cfg.Bucket) == "" {
		return "", errors.New("storage upload: bucket required")
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("storage upload: read source: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("storage upload: source file is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/storage/v1/object/", c.cfg.Bucket, objectKey)
	if err != nil {
		return "", fmt.Errorf("storage upload: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage upload: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	// Overwrite on re-upload so retried projects do not collide with stale objects.
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("storage upload: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage upload: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return c.PublicURL(objectKey)
}

// PublicURL returns the public object URL for the given key.
func (c *Client) PublicURL(objectKey string) (string, error) {
	objectKey = strings.Trim(strings.TrimSpace(objectKey), "/")
	if objectKey == "" {
		return "", errors.New("storage url: object key required")
	}
	public, err := url.JoinPath(c.cfg.BaseURL, "/storage/v1/object/public/", c.cfg.Bucket, objectKey)
	if err != nil {
		return "", fmt.Errorf("storage url: build url: %w", err)
	}
	return public, nil
}
