package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBytes(t *testing.T) {
	payload := []byte("RIFFxxxxWAVEfake-wav-payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TrackAnalyzerAPI/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewFetcher(DefaultOptions())
	data, contentType, err := fetcher.FetchBytes(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "audio/wav", contentType)
}

func TestFetchBytesRejectsNonAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not audio</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(DefaultOptions())
	_, _, err := fetcher.FetchBytes(context.Background(), server.URL)
	assert.ErrorContains(t, err, "invalid content type")
}

func TestFetchBytesAllowsOctetStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0xFF, 0xFB, 0x90, 0x00})
	}))
	defer server.Close()

	fetcher := NewFetcher(DefaultOptions())
	data, _, err := fetcher.FetchBytes(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

func TestFetchBytesEnforcesSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxSize = 1024
	fetcher := NewFetcher(opts)

	_, _, err := fetcher.FetchBytes(context.Background(), server.URL)
	assert.ErrorContains(t, err, "exceeds limit")
}

func TestFetchBytesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(DefaultOptions())
	_, _, err := fetcher.FetchBytes(context.Background(), server.URL)
	assert.ErrorContains(t, err, "status 404")
}
