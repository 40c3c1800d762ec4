package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Options configures the fetch behavior
type Options struct {
	MaxSize       int64         // Maximum payload size in bytes (0 = no limit)
	Timeout       time.Duration // Request timeout
	UserAgent     string        // User agent string
	ValidateAudio bool          // Validate content-type is audio
}

// DefaultOptions returns default fetch options
func DefaultOptions() Options {
	return Options{
		MaxSize:       50 * 1024 * 1024, // 50MB default max
		Timeout:       2 * time.Minute,
		UserAgent:     "TrackAnalyzerAPI/1.0",
		ValidateAudio: true,
	}
}

// Fetcher resolves blob references (HTTP URLs) to in-memory audio bytes.
type Fetcher struct {
	client  *http.Client
	options Options
}

// NewFetcher creates a new fetcher with the given options
func NewFetcher(options Options) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // Don't compress audio
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
	}
}

// FetchBytes downloads a URL into memory and returns the payload with its
// content type.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, string, error) {
	log.Printf("[DEBUG] Fetching audio from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.options.UserAgent)
	req.Header.Set("Accept", "audio/*,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if f.options.ValidateAudio && !isAudioContentType(contentType) {
		return nil, "", fmt.Errorf("invalid content type: %s", contentType)
	}

	if f.options.MaxSize > 0 && resp.ContentLength > f.options.MaxSize {
		return nil, "", fmt.Errorf("payload size %d exceeds limit %d", resp.ContentLength, f.options.MaxSize)
	}

	reader := io.Reader(resp.Body)
	if f.options.MaxSize > 0 {
		// Read one extra byte to detect oversized bodies without a
		// Content-Length header.
		reader = io.LimitReader(resp.Body, f.options.MaxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read payload: %w", err)
	}
	if f.options.MaxSize > 0 && int64(len(data)) > f.options.MaxSize {
		return nil, "", fmt.Errorf("payload exceeds limit %d", f.options.MaxSize)
	}

	log.Printf("[DEBUG] Fetched %d bytes (%s)", len(data), contentType)
	return data, contentType, nil
}

// isAudioContentType checks whether a content type plausibly carries audio
func isAudioContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" || ct == "application/octet-stream" || ct == "binary/octet-stream" {
		// Plenty of storage backends serve audio without a proper type
		return true
	}
	return strings.HasPrefix(ct, "audio/") ||
		strings.HasPrefix(ct, "video/") // Some hosts mislabel audio containers
}
