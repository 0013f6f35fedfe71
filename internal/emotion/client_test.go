package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocal-coach-go/internal/logger"
	"vocal-coach-go/internal/types"
)

func TestClassifyBuildsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect", r.URL.Path)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "great work everyone", req.Text)

		w.Write([]byte(`{"emotions": [{"label": "joy", "score": 0.7}, {"label": "neutral", "score": 0.3}], "dominant_emotion": "joy"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	profile, err := c.Classify(context.Background(), "great work everyone")
	require.NoError(t, err)
	assert.Equal(t, "joy", profile.Primary)
	assert.InDelta(t, 0.7, profile.Confidence(), 1e-9)
	assert.InDelta(t, 0.3, profile.Scores["neutral"], 1e-9)
}

func TestClassifyIgnoresUnknownDominantEmotion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"emotions": [{"label": "confident", "score": 0.9}], "dominant_emotion": "surprise"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	profile, err := c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "confident", profile.Primary, "dominant label not in scores falls back to max score")
}

func TestClassifyEmptyEmotionListIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"emotions": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	profile, err := c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "neutral", profile.Primary)
}

func TestClassifyDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.New())
	_, err := c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClassifyRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"emotions": [{"label": "joy", "score": 1.0}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second, logger.New())
	profile, err := c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "joy", profile.Primary)
}

func TestMockClassifier(t *testing.T) {
	m := &Mock{Profile: types.NewEmotionProfile(map[string]float64{"confident": 1})}
	profile, err := m.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "confident", profile.Primary)
}
