package types

// Point is one sample of a per-frame contour: time in seconds from the start
// of the (silence-trimmed) recording, and the measured value at that frame.
type Point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// DescriptorSet bundles the acoustic measurements computed from one recording.
// PauseRatio and EmphasisRatio are fractions of the same frame count that
// EnergySeries covers. The json names are the persistence contract.
type DescriptorSet struct {
	PitchSeries            []Point `json:"pitchSeries"`
	EnergySeries           []Point `json:"energySeries"`
	PitchVariability       float64 `json:"pitchVariability"`
	EnergyVariability      float64 `json:"energyVariability"`
	SpeechRate             float64 `json:"speechRate"`
	PauseRatio             float64 `json:"pauseRatio"`
	EmphasisRatio          float64 `json:"emphasisRatio"`
	Duration               float64 `json:"duration"`
	EstimatedSyllableCount int     `json:"estimatedSyllableCount"`
}

// EmotionProfile maps emotion labels to classifier confidences. Confidences
// are non-negative and sum to ~1.0.
type EmotionProfile struct {
	Scores  map[string]float64 `json:"scores"`
	Primary string             `json:"primaryEmotion"`
}

// NeutralEmotion is the fallback profile when the classifier is unavailable.
func NeutralEmotion() EmotionProfile {
	return EmotionProfile{Scores: map[string]float64{"neutral": 1.0}, Primary: "neutral"}
}

// NewEmotionProfile builds a profile from raw scores, picking the
// highest-confidence label as primary. Empty input yields the neutral profile.
func NewEmotionProfile(scores map[string]float64) EmotionProfile {
	if len(scores) == 0 {
		return NeutralEmotion()
	}
	primary := ""
	best := -1.0
	for label, score := range scores {
		if score > best || (score == best && label < primary) {
			primary = label
			best = score
		}
	}
	return EmotionProfile{Scores: scores, Primary: primary}
}

// Confidence returns the score of the primary emotion.
func (p EmotionProfile) Confidence() float64 {
	return p.Scores[p.Primary]
}

// ContentAccuracy reports how closely a transcript matched the target text.
// Word lists are unordered sets, each capped to 10 entries.
type ContentAccuracy struct {
	AccuracyScore     int      `json:"accuracyScore"`
	Feedback          string   `json:"feedback"`
	MissingWords      []string `json:"missingWords"`
	AddedWords        []string `json:"addedWords"`
	BenchmarkAccuracy *int     `json:"benchmarkAccuracy,omitempty"`
}

// FeedbackReport is the non-comparative analysis output. Strengths and
// Suggestions are never empty: a generic sentence is substituted when no
// dimension qualifies.
type FeedbackReport struct {
	OverallAssessment string           `json:"overallAssessment"`
	SpecificFeedback  []string         `json:"specificFeedback"`
	Strengths         []string         `json:"strengths"`
	Suggestions       []string         `json:"suggestions"`
	ContentAccuracy   *ContentAccuracy `json:"contentAccuracy,omitempty"`
}

// Comparison holds the classified observations from a benchmark comparison.
type Comparison struct {
	General      []string `json:"general"`
	Strengths    []string `json:"strengths"`
	Matches      []string `json:"matches"`
	Improvements []string `json:"improvements"`
}

// ComparativeReport extends FeedbackReport with benchmark comparison results.
// Similarity is the 5-factor composite on a 0-100 scale.
type ComparativeReport struct {
	FeedbackReport
	Comparison Comparison `json:"comparison"`
	Similarity float64    `json:"similarity"`
}
