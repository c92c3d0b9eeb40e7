package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelforge/internal/config"
	"reelforge/internal/transcript"
)

const (
	defaultHTTPTimeout = 300 * time.Second

	// The Whisper API rejects uploads above 25MB.
	maxUploadBytes = 25 * 1024 * 1024
)

// Client wraps the Whisper audio transcription API.
type Client struct {
	cfg        config.Transcribe
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

// NewClient constructs a transcription client from the transcribe settings.
func NewClient(cfg config.Transcribe, opts ...Option) *Client {
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

// Result carries the parsed transcript words along with the raw verbose JSON
// payload so callers can persist it for later replay.
type Result struct {
	Words []transcript.Word
	Raw   []byte
}

// TranscribeFile uploads the audio file at audioPath and returns word-level
// transcript timings.
func (c *Client) TranscribeFile(ctx context.Context, audioPath string) (Result, error) {
	var empty Result
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, errors.New("transcribe: api key required")
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		return empty, fmt.Errorf("transcribe: stat audio: %w", err)
	}
	if info.Size() == 0 {
		return empty, errors.New("transcribe: audio file is empty")
	}
	if info.Size() > maxUploadBytes {
		return empty, fmt.Errorf("transcribe: audio file is %d bytes, exceeds %d byte upload limit", info.Size(), maxUploadBytes)
	}

	body, contentType, err := c.buildUpload(audioPath)
	if err != nil {
		return empty, err
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/v1/audio/transcriptions")
	if err != nil {
		return empty, fmt.Errorf("transcribe: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return empty, fmt.Errorf("transcribe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("transcribe: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	words, err := transcript.Parse(raw)
	if err != nil {
		return empty, fmt.Errorf("transcribe: parse payload: %w", err)
	}
	if len(words) == 0 {
		return empty, errors.New("transcribe: no words in transcription")
	}
	return Result{Words: words, Raw: raw}, nil
}

func (c *Client) buildUpload(audioPath string) (io.Reader, string, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: read audio: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("transcribe: write form file: %w", err)
	}

	fields := map[string]string{
		"model":           c.cfg.Model,
		"response_format": "verbose_json",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("transcribe: write field %s: %w", name, err)
		}
	}
	if err := writer.WriteField("timestamp_granularities[]", "word"); err != nil {
		return nil, "", fmt.Errorf("transcribe: write granularity field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("transcribe: close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
