package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"vocal-coach-go/internal/logger"
	"vocal-coach-go/internal/types"
)

// Classifier is the text-emotion collaborator. Implementations load their
// model once and are reused read-only.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.EmotionProfile, error)
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Emotions []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"emotions"`
	DominantEmotion string `json:"dominant_emotion"`
}

// Client talks to an HTTP emotion service exposing POST /detect.
type Client struct {
	url  string
	http *http.Client
	log  *logrus.Entry
}

func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		url:  strings.TrimRight(url, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.Component("emotion"),
	}
}

func (c *Client) Classify(ctx context.Context, text string) (types.EmotionProfile, error) {
	payload, err := json.Marshal(detectRequest{Text: text})
	if err != nil {
		return types.EmotionProfile{}, err
	}

	var out detectResponse
	if err := c.doJSON(ctx, c.url+"/detect", payload, &out); err != nil {
		return types.EmotionProfile{}, fmt.Errorf("classify emotion: %w", err)
	}

	scores := make(map[string]float64, len(out.Emotions))
	for _, e := range out.Emotions {
		scores[e.Label] = e.Score
	}
	profile := types.NewEmotionProfile(scores)
	if out.DominantEmotion != "" {
		if _, ok := scores[out.DominantEmotion]; ok {
			profile.Primary = out.DominantEmotion
		}
	}
	return profile, nil
}

func (c *Client) doJSON(ctx context.Context, url string, payload []byte, target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.http.Timeout
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, respBody)
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request rejected %d: %s", resp.StatusCode, respBody)
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(respBody, target); err != nil {
			lastErr = fmt.Errorf("decode response: %w", err)
			return lastErr
		}
		lastErr = nil
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.WithError(err).WithField("retry_in", wait.String()).Warn("emotion call failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
