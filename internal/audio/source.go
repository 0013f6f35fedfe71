package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source is one recording to analyze, either an in-memory buffer or a file
// path. The caller resolves which variant it has before invoking the core.
type Source struct {
	path string
	data []byte
}

func FromFile(path string) Source { return Source{path: path} }

func FromBuffer(data []byte) Source { return Source{data: data} }

func (s Source) IsZero() bool { return s.path == "" && s.data == nil }

// open returns a seekable reader over the audio bytes and a release func that
// must be called on every exit path.
func (s Source) open() (io.ReadSeeker, func() error, error) {
	if s.data != nil {
		return bytes.NewReader(s.data), func() error { return nil }, nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, &DecodeError{Reason: "open audio file", Err: err}
	}
	return f, f.Close, nil
}

// Bytes returns the raw encoded audio, for forwarding to collaborators.
func (s Source) Bytes() ([]byte, error) {
	if s.data != nil {
		return s.data, nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return b, nil
}

// DecodeError means the audio could not be read as a valid recording. The
// analysis that hit it aborts entirely.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode audio: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode audio: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
