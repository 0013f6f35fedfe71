package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocal-coach-go/internal/types"
)

func sampleRecord() Record {
	return Record{
		ExerciseID: "warmup-1",
		Descriptors: types.DescriptorSet{
			PitchVariability:  32,
			EnergyVariability: 0.07,
			SpeechRate:        3.4,
			PauseRatio:        0.18,
			Duration:          12.5,
		},
		Emotions:   types.NewEmotionProfile(map[string]float64{"confident": 0.7, "neutral": 0.3}),
		Score:      78.5,
		Transcript: "the quick brown fox jumps over the lazy dog",
	}
}

func TestSaveAssignsIdentityAndTimestamp(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	saved, err := s.Save(sampleRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.RecordedAt.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	saved, err := s.Save(sampleRecord())
	require.NoError(t, err)

	loaded, ok, err := s.Load("warmup-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, saved.Descriptors, loaded.Descriptors)
	assert.Equal(t, "confident", loaded.Emotions.Primary)
	assert.InDelta(t, 78.5, loaded.Score, 1e-9)
	assert.Equal(t, saved.Transcript, loaded.Transcript)
}

func TestLoadMissingBenchmark(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Load("never-recorded")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveReplacesPreviousBenchmark(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := s.Save(sampleRecord())
	require.NoError(t, err)

	rec := sampleRecord()
	rec.Score = 91
	second, err := s.Save(rec)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	loaded, ok, err := s.Load("warmup-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.ID, loaded.ID)
	assert.InDelta(t, 91.0, loaded.Score, 1e-9)
}

func TestSaveRequiresExerciseID(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(Record{})
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	_, _, err = s.Load("bad")
	assert.Error(t, err)
}
