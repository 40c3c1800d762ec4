package analyzer

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/tracktag/analyzer-api/internal/audio"
)

// EngineKey is a raw key detection as reported by an extraction engine.
// Note uses the engine's own naming convention ("C#", "Db", ...); Scale is
// "major" or "minor" in any casing. Strength may be zero when the engine
// does not report one.
type EngineKey struct {
	Note     string
	Scale    string
	Strength float64
}

// TempoEngine estimates raw tempo in BPM from a sample buffer.
type TempoEngine interface {
	EstimateTempo(ctx context.Context, buf *audio.SampleBuffer) (float64, error)
}

// KeyEngine estimates the musical key from a sample buffer.
type KeyEngine interface {
	EstimateKey(ctx context.Context, buf *audio.SampleBuffer) (EngineKey, error)
}

// EngineFactory constructs the primary extraction engine. It is invoked at
// most once per process run (unless a caller explicitly retries preload).
type EngineFactory func(ctx context.Context) (TempoEngine, KeyEngine, error)

// ErrEngineUnavailable is returned by Ensure once initialization has
// permanently failed for this process run.
var ErrEngineUnavailable = errors.New("extraction engine unavailable")

type engineState int

const (
	stateUninitialized engineState = iota
	stateInitializing
	stateReady
	stateUnavailable
)

// EngineHandle is the process-wide, lazily-initialized handle to the
// primary extraction engine. The first caller of Ensure starts exactly one
// initialization attempt; concurrent callers wait on that same attempt
// instead of starting their own. The outcome (ready or unavailable) is
// cached for the process lifetime.
type EngineHandle struct {
	factory EngineFactory

	mu    sync.Mutex
	state engineState
	done  chan struct{}
	tempo TempoEngine
	key   KeyEngine
	err   error
}

// NewEngineHandle creates an uninitialized handle around factory.
func NewEngineHandle(factory EngineFactory) *EngineHandle {
	return &EngineHandle{factory: factory}
}

// Ensure returns the engines, initializing them on first use. All callers
// that arrive while initialization is in flight block until it resolves.
// After a failed attempt every subsequent call returns ErrEngineUnavailable
// without retrying.
func (h *EngineHandle) Ensure(ctx context.Context) (TempoEngine, KeyEngine, error) {
	h.mu.Lock()
	switch h.state {
	case stateReady:
		tempo, key := h.tempo, h.key
		h.mu.Unlock()
		return tempo, key, nil
	case stateUnavailable:
		h.mu.Unlock()
		return nil, nil, ErrEngineUnavailable
	case stateInitializing:
		done := h.done
		h.mu.Unlock()
		select {
		case <-done:
			return h.resolved()
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	// First caller: start the single initialization attempt.
	done := make(chan struct{})
	h.state = stateInitializing
	h.done = done
	h.mu.Unlock()

	go h.initialize(done)

	select {
	case <-done:
		return h.resolved()
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// initialize runs the factory and records the permanent outcome. It runs
// detached from any single caller's context so that one caller giving up
// does not poison the shared attempt.
func (h *EngineHandle) initialize(done chan struct{}) {
	tempo, key, err := h.factory(context.Background())

	h.mu.Lock()
	if err != nil {
		log.Printf("[WARN] Extraction engine initialization failed, using fallback estimators: %v", err)
		h.state = stateUnavailable
		h.err = err
	} else {
		h.state = stateReady
		h.tempo = tempo
		h.key = key
	}
	h.mu.Unlock()
	close(done)
}

// resolved reads the settled outcome after the init attempt finished.
func (h *EngineHandle) resolved() (TempoEngine, KeyEngine, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == stateReady {
		return h.tempo, h.key, nil
	}
	return nil, nil, ErrEngineUnavailable
}

// Ready reports whether the engine initialized successfully.
func (h *EngineHandle) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == stateReady
}

// Retry clears a failed initialization so the next Ensure attempts again.
// This is the one explicit escape hatch from the unavailable state; it has
// no effect while initialization is in flight or after success.
func (h *EngineHandle) Retry() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == stateUnavailable {
		h.state = stateUninitialized
		h.done = nil
		h.err = nil
	}
}
