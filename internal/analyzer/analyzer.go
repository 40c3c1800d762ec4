package analyzer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/tracktag/analyzer-api/internal/audio"
)

// ErrInvalidDataURL is returned when a data URL cannot be parsed.
var ErrInvalidDataURL = errors.New("invalid data URL")

// Analyzer is the single public entry point of the feature-extraction
// core. It owns the lazily-initialized engine handle and fans the decoded
// buffer out to the three estimators.
type Analyzer struct {
	handle     *EngineHandle
	registry   *audio.Registry
	targetRate int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRegistry overrides the decoder registry.
func WithRegistry(r *audio.Registry) Option {
	return func(a *Analyzer) { a.registry = r }
}

// WithTargetRate overrides the estimators' sample rate.
func WithTargetRate(rate int) Option {
	return func(a *Analyzer) { a.targetRate = rate }
}

// New creates an Analyzer around the given engine handle.
func New(handle *EngineHandle, opts ...Option) *Analyzer {
	a := &Analyzer{
		handle:     handle,
		registry:   audio.DefaultRegistry(),
		targetRate: audio.TargetSampleRate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Preload eagerly initializes the extraction engine. A failed earlier
// attempt is retried; this is the only path that re-attempts
// initialization within a process run.
func (a *Analyzer) Preload(ctx context.Context) error {
	a.handle.Retry()
	_, _, err := a.handle.Ensure(ctx)
	return err
}

// EngineReady reports whether the primary engine initialized successfully.
func (a *Analyzer) EngineReady() bool {
	return a.handle.Ready()
}

// Analyze decodes data, resamples it to the target rate and runs the
// energy, tempo and key estimators concurrently over the same buffer.
// Decode failures are returned to the caller; engine unavailability is
// not an error and only shows up as lower confidence values.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (*AnalysisResult, error) {
	tempoEngine, keyEngine, err := a.handle.Ensure(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		// Engine unavailable: estimators run their fallback paths.
		tempoEngine, keyEngine = nil, nil
	}

	buf, err := a.registry.Decode(data)
	if err != nil {
		return nil, err
	}
	buf = audio.Resample(buf, a.targetRate)

	log.Printf("[DEBUG] Analyzing %.2fs of audio at %d Hz (engine ready: %t)",
		buf.Duration(), buf.SampleRate(), tempoEngine != nil)

	var (
		wg     sync.WaitGroup
		energy float64
		tempo  TempoEstimate
		key    KeyEstimate
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		energy = Energy(buf)
	}()
	go func() {
		defer wg.Done()
		tempo = EstimateTempo(ctx, tempoEngine, buf)
	}()
	go func() {
		defer wg.Done()
		key = EstimateKey(ctx, keyEngine, buf)
	}()
	wg.Wait()

	return &AnalysisResult{
		BPM:        tempo.BPM,
		MusicalKey: key.Key,
		Energy:     energy,
		Confidence: Confidence{
			BPM: tempo.Confidence,
			Key: key.Confidence,
		},
	}, nil
}

// AnalyzeDataURL decodes a base64 data URL (e.g. "data:audio/wav;base64,...")
// and analyzes the contained bytes.
func (a *Analyzer) AnalyzeDataURL(ctx context.Context, dataURL string) (*AnalysisResult, error) {
	data, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, data)
}

// DecodeDataURL extracts the raw bytes from a base64 data URL.
func DecodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, ErrInvalidDataURL
	}
	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 {
		return nil, ErrInvalidDataURL
	}
	meta := dataURL[5:comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: only base64 encoding is supported", ErrInvalidDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return data, nil
}
