package transcription

import "context"

// Mock returns a fixed transcript, for tests and for running the pipeline
// without a transcription service.
type Mock struct {
	Text string
	Err  error
}

func (m *Mock) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	return m.Text, m.Err
}
