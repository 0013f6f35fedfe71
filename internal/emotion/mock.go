package emotion

import (
	"context"

	"vocal-coach-go/internal/types"
)

// Mock returns a fixed profile, for tests and for running the pipeline
// without an emotion service.
type Mock struct {
	Profile types.EmotionProfile
	Err     error
}

func (m *Mock) Classify(ctx context.Context, text string) (types.EmotionProfile, error) {
	return m.Profile, m.Err
}
