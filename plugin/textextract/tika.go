// Package textextract extracts plain text from uploaded course sheets
// (PDF and similar formats) through an Apache Tika server.
package textextract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// SupportedMimeTypes lists the formats accepted for course sheet upload.
var SupportedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// Config holds the text extraction configuration.
type Config struct {
	// TikaServerURL is the URL of the Tika server (e.g., http://localhost:9998)
	TikaServerURL string
	// Timeout is the HTTP timeout for Tika server requests
	Timeout time.Duration
}

// DefaultConfig returns the default text extraction configuration.
func DefaultConfig() *Config {
	return &Config{
		TikaServerURL: "http://localhost:9998",
		Timeout:       30 * time.Second,
	}
}

// ConfigFromEnv creates extraction config from environment variables.
func ConfigFromEnv() *Config {
	config := DefaultConfig()

	if url := os.Getenv("ACADEMY_TEXTEXTRACT_TIKA_URL"); url != "" {
		config.TikaServerURL = url
	}
	if timeout := os.Getenv("ACADEMY_TEXTEXTRACT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Timeout = d
		}
	}
	return config
}

// Client extracts text from documents via a Tika server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new text extraction client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// IsSupported reports whether contentType can be extracted.
func (c *Client) IsSupported(contentType string) bool {
	for _, mimeType := range SupportedMimeTypes {
		if mimeType == contentType {
			return true
		}
	}
	return false
}

// ExtractText extracts the plain text of a document.
func (c *Client) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if !c.IsSupported(contentType) {
		return "", errors.Errorf("unsupported content type: %s", contentType)
	}
	if contentType == "text/plain" {
		return string(data), nil
	}
	if c.config.TikaServerURL == "" {
		return "", errors.New("no Tika server configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.config.TikaServerURL+"/tika",
		bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "tika server request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("tika server returned status %d: %s", resp.StatusCode, string(body))
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}
	return string(text), nil
}
