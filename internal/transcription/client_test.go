package transcription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocal-coach-go/internal/logger"
)

func TestTranscribeUsesTextField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transcribe", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "recording.wav", header.Filename)

		w.Write([]byte(`{"text": "hello from the service"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	text, err := c.Transcribe(context.Background(), []byte("RIFFfake"))
	require.NoError(t, err)
	assert.Equal(t, "hello from the service", text)
}

func TestTranscribeFallsBackToSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"segments": [{"start": 0, "end": 1.2, "text": " hello "}, {"start": 1.2, "end": 2.0, "text": "world"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	text, err := c.Transcribe(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestTranscribeDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unsupported format", http.StatusUnsupportedMediaType)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	_, err := c.Transcribe(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request rejected 415")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTranscribeRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"text": "second try"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second, logger.New())
	text, err := c.Transcribe(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestTranscribeHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, 10*time.Second, logger.New())
	_, err := c.Transcribe(ctx, nil)
	assert.Error(t, err)
}

func TestMock(t *testing.T) {
	m := &Mock{Text: "canned"}
	text, err := m.Transcribe(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "canned", text)
}
