package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input byte buffer is empty
	ErrEmptyInput = errors.New("empty audio input")

	// ErrUnsupportedFormat is returned when the input bytes do not match
	// any registered container format
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoSamples is returned when a container decodes to zero samples
	ErrNoSamples = errors.New("audio contains no samples")
)

// DecodeError wraps a decoder failure with the format that was attempted.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s audio: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
