package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vocal-coach-go/internal/types"
)

// Record is one reference delivery for an exercise, persisted as a JSON
// document so the comparative path can run without re-analyzing the
// benchmark audio.
type Record struct {
	ID          string               `json:"id"`
	ExerciseID  string               `json:"exercise_id"`
	Descriptors types.DescriptorSet  `json:"descriptors"`
	Emotions    types.EmotionProfile `json:"emotions"`
	Score       float64              `json:"score"`
	Transcript  string               `json:"transcript,omitempty"`
	RecordedAt  time.Time            `json:"recorded_at"`
}

// Store keeps one benchmark record per exercise under a directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create benchmark dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(exerciseID string) string {
	return filepath.Join(s.dir, exerciseID+".json")
}

// Save writes the benchmark for an exercise, replacing any previous one. The
// record id is assigned here.
func (s *Store) Save(rec Record) (Record, error) {
	if rec.ExerciseID == "" {
		return Record{}, fmt.Errorf("benchmark record needs an exercise id")
	}
	rec.ID = uuid.New().String()
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	f, err := os.Create(s.path(rec.ExerciseID))
	if err != nil {
		return Record{}, fmt.Errorf("create benchmark file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return Record{}, fmt.Errorf("write benchmark: %w", err)
	}
	return rec, nil
}

// Load returns the benchmark for an exercise, or ok=false when none is
// stored, which callers treat as "comparison unavailable" rather than an
// error.
func (s *Store) Load(exerciseID string) (Record, bool, error) {
	data, err := os.ReadFile(s.path(exerciseID))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("read benchmark: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("parse benchmark: %w", err)
	}
	return rec, true, nil
}
