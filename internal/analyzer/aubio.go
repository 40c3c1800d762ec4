package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tracktag/analyzer-api/internal/audio"
)

// AubioEngine runs the aubio CLI as the primary extraction engine. Sample
// buffers are handed over as temporary PCM16 WAV files.
type AubioEngine struct {
	bin     string
	timeout time.Duration
}

var (
	bpmLineRe        = regexp.MustCompile(`([0-9]+(\.[0-9]+)?)\s*bpm`)
	keyLineRe        = regexp.MustCompile(`([a-g][#b]?)\s+(major|minor)`)
	keyConfidenceRe  = regexp.MustCompile(`confidence\s*([0-9]+(\.[0-9]+)?)`)
)

// NewAubioEngine resolves the aubio binary and returns an engine bound to
// it. Initialization fails when the binary cannot be found, which routes
// all estimator calls to the fallback heuristics.
func NewAubioEngine(bin string, timeout time.Duration) (*AubioEngine, error) {
	if bin == "" {
		bin = "aubio"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("aubio not found: %w", err)
	}
	return &AubioEngine{bin: resolved, timeout: timeout}, nil
}

// AubioFactory returns an EngineFactory producing an AubioEngine for both
// tempo and key extraction.
func AubioFactory(bin string, timeout time.Duration) EngineFactory {
	return func(ctx context.Context) (TempoEngine, KeyEngine, error) {
		engine, err := NewAubioEngine(bin, timeout)
		if err != nil {
			return nil, nil, err
		}
		return engine, engine, nil
	}
}

// EstimateTempo runs `aubio tempo` and returns the median of the reported
// BPM series.
func (e *AubioEngine) EstimateTempo(ctx context.Context, buf *audio.SampleBuffer) (float64, error) {
	out, err := e.run(ctx, buf, "tempo")
	if err != nil {
		return 0, err
	}

	var vals []float64
	sc := bufio.NewScanner(strings.NewReader(strings.ToLower(out)))
	for sc.Scan() {
		if m := bpmLineRe.FindStringSubmatch(sc.Text()); len(m) >= 2 {
			if v, perr := strconv.ParseFloat(m[1], 64); perr == nil && v > 0 {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("aubio tempo reported no bpm values")
	}

	sort.Float64s(vals)
	return vals[len(vals)/2], nil
}

// EstimateKey runs `aubio key` and parses the detected tonic and scale.
func (e *AubioEngine) EstimateKey(ctx context.Context, buf *audio.SampleBuffer) (EngineKey, error) {
	out, err := e.run(ctx, buf, "key")
	if err != nil {
		return EngineKey{}, err
	}

	lower := strings.ToLower(out)
	m := keyLineRe.FindStringSubmatch(lower)
	if len(m) < 3 {
		return EngineKey{}, fmt.Errorf("aubio key output unparseable")
	}

	key := EngineKey{
		Note:  strings.ToUpper(m[1][:1]) + m[1][1:],
		Scale: m[2],
	}
	if c := keyConfidenceRe.FindStringSubmatch(lower); len(c) >= 2 {
		if v, perr := strconv.ParseFloat(c[1], 64); perr == nil {
			key.Strength = v
		}
	}
	return key, nil
}

// run writes buf to a temp WAV and invokes an aubio subcommand against it.
func (e *AubioEngine) run(ctx context.Context, buf *audio.SampleBuffer, subcommand string) (string, error) {
	path, cleanup, err := writeTempWAV(buf)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.bin, subcommand, "-i", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil && stdout.Len() == 0 {
		return "", fmt.Errorf("aubio %s failed: %w: %s", subcommand, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// writeTempWAV encodes buf as a mono PCM16 WAV in the system temp dir and
// returns the file path with a cleanup func.
func writeTempWAV(buf *audio.SampleBuffer) (string, func(), error) {
	f, err := os.CreateTemp("", "analysis_*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp wav: %w", err)
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	enc := wav.NewEncoder(f, buf.SampleRate(), 16, 1, 1)

	samples := buf.Samples()
	ints := make([]int, len(samples))
	for i, s := range samples {
		v := int(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		ints[i] = v
	}

	pcm := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate()},
		Data:           ints,
		SourceBitDepth: 16,
	}

	if err := enc.Write(pcm); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encoding temp wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("finalizing temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}

	return path, cleanup, nil
}
