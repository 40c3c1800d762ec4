package analyzer

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracktag/analyzer-api/internal/audio"
)

// testWAV builds a mono PCM16 WAV of a sine tone.
func testWAV(freq float64, seconds float64, rate int) []byte {
	n := int(seconds * float64(rate))
	dataSize := n * 2
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], 1)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(rate*2))
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i := 0; i < n; i++ {
		v := int16(0.5 * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		binary.LittleEndian.PutUint16(buf[44+2*i:46+2*i], uint16(v))
	}
	return buf
}

func readyAnalyzer(tempo TempoEngine, key KeyEngine) *Analyzer {
	handle := NewEngineHandle(func(ctx context.Context) (TempoEngine, KeyEngine, error) {
		return tempo, key, nil
	})
	return New(handle)
}

func unavailableAnalyzer() *Analyzer {
	handle := NewEngineHandle(func(ctx context.Context) (TempoEngine, KeyEngine, error) {
		return nil, nil, errors.New("engine missing")
	})
	return New(handle)
}

func TestAnalyzeWithReadyEngine(t *testing.T) {
	a := readyAnalyzer(
		stubTempoEngine{bpm: 128},
		stubKeyEngine{key: EngineKey{Note: "G", Scale: "minor", Strength: 0.9}},
	)

	result, err := a.Analyze(context.Background(), testWAV(440, 1, 44100))
	require.NoError(t, err)

	assert.Equal(t, 128, result.BPM)
	assert.Equal(t, "G Minor", result.MusicalKey)
	assert.Equal(t, 0.85, result.Confidence.BPM)
	assert.Equal(t, 0.9, result.Confidence.Key)
	// 0.5 amplitude sine: RMS ~0.354, above the 0.3 reference.
	assert.Equal(t, 1.0, result.Energy)
}

func TestAnalyzeResultInvariants(t *testing.T) {
	a := unavailableAnalyzer()

	result, err := a.Analyze(context.Background(), testWAV(440, 1, 22050))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.BPM, 60)
	assert.LessOrEqual(t, result.BPM, 200)
	assert.GreaterOrEqual(t, result.Energy, 0.0)
	assert.LessOrEqual(t, result.Energy, 1.0)
	assert.GreaterOrEqual(t, result.Confidence.BPM, 0.0)
	assert.LessOrEqual(t, result.Confidence.BPM, 1.0)
	assert.GreaterOrEqual(t, result.Confidence.Key, 0.0)
	assert.LessOrEqual(t, result.Confidence.Key, 1.0)
	assertCanonicalKey(t, result.MusicalKey)
}

func TestAnalyzeEngineUnavailableUsesFallbacks(t *testing.T) {
	a := unavailableAnalyzer()

	result, err := a.Analyze(context.Background(), testWAV(440, 1, 44100))
	require.NoError(t, err)

	// Fallback paths are only observable through the lower confidences.
	assert.LessOrEqual(t, result.Confidence.BPM, 0.5)
	assert.Equal(t, 0.5, result.Confidence.Key)
	assert.False(t, a.EngineReady())
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := readyAnalyzer(
		stubTempoEngine{bpm: 101},
		stubKeyEngine{key: EngineKey{Note: "D", Scale: "major", Strength: 0.75}},
	)
	data := testWAV(330, 1, 44100)

	first, err := a.Analyze(context.Background(), data)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeDecodeFailureIsHardError(t *testing.T) {
	a := readyAnalyzer(stubTempoEngine{bpm: 120}, stubKeyEngine{})

	_, err := a.Analyze(context.Background(), []byte("not audio at all"))
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, err = a.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, audio.ErrEmptyInput)
}

func TestAnalyzeDataURL(t *testing.T) {
	a := unavailableAnalyzer()
	wavBytes := testWAV(440, 1, 44100)
	dataURL := "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wavBytes)

	fromURL, err := a.AnalyzeDataURL(context.Background(), dataURL)
	require.NoError(t, err)

	fromBytes, err := a.Analyze(context.Background(), wavBytes)
	require.NoError(t, err)
	assert.Equal(t, fromBytes, fromURL)
}

func TestDecodeDataURLErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no data prefix", "http://example.com/track.wav"},
		{"no comma", "data:audio/wav;base64"},
		{"not base64 encoded", "data:audio/wav,rawbytes"},
		{"bad base64 payload", "data:audio/wav;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDataURL(tt.url)
			assert.ErrorIs(t, err, ErrInvalidDataURL)
		})
	}
}

func TestPreloadRetriesFailedInit(t *testing.T) {
	attempts := 0
	handle := NewEngineHandle(func(ctx context.Context) (TempoEngine, KeyEngine, error) {
		attempts++
		if attempts == 1 {
			return nil, nil, errors.New("first attempt fails")
		}
		return stubTempoEngine{bpm: 120}, stubKeyEngine{}, nil
	})
	a := New(handle)

	err := a.Preload(context.Background())
	require.Error(t, err)

	err = a.Preload(context.Background())
	require.NoError(t, err)
	assert.True(t, a.EngineReady())
}
