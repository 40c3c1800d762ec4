package audio

import (
	"bytes"
	"io"
	"sync"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
)

// Decoder converts container bytes into interleaved float32 PCM in [-1,1].
// It returns the samples, the channel count and the native sample rate.
type Decoder interface {
	Decode(data []byte) (samples []float32, channels, sampleRate int, err error)
}

// Registry maps container format keys (e.g. "wav", "mp3") to decoders.
type Registry struct {
	codecs map[string]Decoder
	mtx    sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	d, ok := r.codecs[format]
	return d, ok
}

// DefaultRegistry returns a registry with all built-in decoders registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAVDecoder{})
	r.Register("ogg", VorbisDecoder{})
	r.Register("mp3", MP3Decoder{})
	return r
}

var defaultRegistry = DefaultRegistry()

// Decode sniffs the container format of data, decodes it and reduces the
// result to a single channel. Stereo (and higher) input is folded down by
// taking the arithmetic mean of all channel samples at the same frame.
// The returned buffer keeps the container's native sample rate.
func Decode(data []byte) (*SampleBuffer, error) {
	return defaultRegistry.Decode(data)
}

// Decode decodes data with the registered decoder for its sniffed format.
func (r *Registry) Decode(data []byte) (*SampleBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	format, ok := SniffFormat(data)
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	dec, ok := r.Get(format)
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	samples, channels, rate, err := dec.Decode(data)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	if len(samples) == 0 || channels <= 0 || rate <= 0 {
		return nil, &DecodeError{Format: format, Err: ErrNoSamples}
	}

	return NewSampleBuffer(downmixMono(samples, channels), rate), nil
}

// SniffFormat inspects leading magic bytes and reports the container format.
func SniffFormat(data []byte) (string, bool) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav", true
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		return "ogg", true
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return "mp3", true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync, no ID3 header
		return "mp3", true
	}
	return "", false
}

// downmixMono folds interleaved multi-channel samples into one channel by
// averaging each frame. Mono input is returned as-is.
func downmixMono(samples []float32, channels int) []float32 {
	if channels == 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float32, frames)
	inv := float32(1.0) / float32(channels)
	for f := 0; f < frames; f++ {
		sum := float32(0)
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += samples[base+c]
		}
		mono[f] = sum * inv
	}
	return mono
}

// WAVDecoder decodes RIFF/WAVE PCM via go-audio/wav.
type WAVDecoder struct{}

func (WAVDecoder) Decode(data []byte) ([]float32, int, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}
	if dec.Err() != nil {
		return nil, 0, 0, dec.Err()
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}

	return samples, buf.Format.NumChannels, buf.Format.SampleRate, nil
}

// MP3Decoder decodes MPEG audio via hajimehoshi/go-mp3.
type MP3Decoder struct{}

func (MP3Decoder) Decode(data []byte) ([]float32, int, int, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, err
	}

	// go-mp3 always emits 16-bit little-endian stereo PCM
	const channels = 2
	var samples []float32
	raw := make([]byte, 8192)
	for {
		n, err := dec.Read(raw)
		for i := 0; i+1 < n; i += 2 {
			v := int16(uint16(raw[i]) | uint16(raw[i+1])<<8)
			samples = append(samples, float32(v)/32768.0)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, err
		}
	}

	return samples, channels, dec.SampleRate(), nil
}

// VorbisDecoder decodes Ogg Vorbis via jfreymuth/oggvorbis.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(data []byte) ([]float32, int, int, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, err
	}
	return samples, format.Channels, format.SampleRate, nil
}
