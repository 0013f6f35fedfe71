package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"vocal-coach-go/internal/logger"
)

// Transcriber is the speech-to-text collaborator. Implementations load their
// model once and are reused read-only; Transcribe is safe to call from
// concurrent analyses.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}

type transcribeResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Client talks to an HTTP transcription service exposing POST /transcribe
// with a multipart wav upload.
type Client struct {
	url  string
	http *http.Client
	log  *logrus.Entry
}

func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		url:  strings.TrimRight(url, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.Component("transcription"),
	}
}

func (c *Client) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "recording.wav")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(wavData); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var out transcribeResponse
	if err := c.doJSON(ctx, c.url+"/transcribe", w.FormDataContentType(), body.Bytes(), &out); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	if out.Text != "" {
		return out.Text, nil
	}
	parts := make([]string, 0, len(out.Segments))
	for _, s := range out.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

// doJSON posts the payload with exponential backoff, rebuilding the request
// each attempt and treating 4xx responses as permanent failures.
func (c *Client) doJSON(ctx context.Context, url, contentType string, payload []byte, target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.http.Timeout
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)

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
		c.log.WithError(err).WithField("retry_in", wait.String()).Warn("transcription call failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
