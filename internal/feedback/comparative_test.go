package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocal-coach-go/internal/types"
)

func subject(d types.DescriptorSet, emotions types.EmotionProfile, score float64) Subject {
	return Subject{Descriptors: d, Emotions: emotions, Score: score}
}

func TestGenerateComparativeIdenticalSubjects(t *testing.T) {
	e := NewEngine()
	s := subject(goodDelivery(), confidentProfile(), 80)

	report := e.GenerateComparative(s, s, "")

	assert.InDelta(t, 100.0, report.Similarity, 1e-9)
	assert.Len(t, report.Comparison.Matches, 5, "four dimensions plus emotion")
	assert.Empty(t, report.Comparison.Strengths)
	assert.Empty(t, report.Comparison.Improvements)
	assert.Empty(t, report.Comparison.General)
	assert.Contains(t, report.OverallAssessment, "very close to the benchmark")
	assert.Contains(t, report.OverallAssessment, "on par with the benchmark")
}

func TestGenerateComparativeIdenticalZeroSubjects(t *testing.T) {
	e := NewEngine()
	s := subject(types.DescriptorSet{}, types.NeutralEmotion(), 0)

	report := e.GenerateComparative(s, s, "")
	assert.InDelta(t, 100.0, report.Similarity, 1e-9)
}

func TestClassifyWithinToleranceIsMatch(t *testing.T) {
	c := comparisonDim{dim: pitchDim, user: 22, benchmark: 20, tolerance: 0.2, matchText: "match"}
	kind, text := c.classify()
	assert.Equal(t, classMatch, kind)
	assert.Equal(t, "match", text)
}

func TestClassifyUserAheadIsStrength(t *testing.T) {
	// Both sides already high on pitch, so exceeding is a strength.
	c := comparisonDim{dim: pitchDim, user: 45, benchmark: 31, tolerance: 0.2, strengthText: "strength"}
	kind, text := c.classify()
	assert.Equal(t, classStrength, kind)
	assert.Equal(t, "strength", text)
}

func TestClassifyOverdoneIsImprovement(t *testing.T) {
	// User far above a benchmark that is not itself high: overdone.
	c := comparisonDim{dim: pitchDim, user: 40, benchmark: 20, tolerance: 0.2, overdoneText: "overdone"}
	kind, text := c.classify()
	assert.Equal(t, classImprovement, kind)
	assert.Equal(t, "overdone", text)
}

func TestClassifyBehindGoodBenchmarkIsImprovement(t *testing.T) {
	c := comparisonDim{dim: pitchDim, user: 10, benchmark: 35, tolerance: 0.2, improveText: "improve"}
	kind, text := c.classify()
	assert.Equal(t, classImprovement, kind)
	assert.Equal(t, "improve", text)
}

func TestClassifyBehindWeakBenchmarkIsGeneral(t *testing.T) {
	// Benchmark sits in a below-good bucket; trailing it is an observation,
	// not a required improvement.
	c := comparisonDim{dim: pitchDim, user: 5, benchmark: 20, tolerance: 0.2, generalText: "general"}
	kind, text := c.classify()
	assert.Equal(t, classGeneral, kind)
	assert.Equal(t, "general", text)
}

func TestClassifyRateUsesTighterTolerance(t *testing.T) {
	within := comparisonDim{dim: rateDim, user: 3.3, benchmark: 3.0, tolerance: rateTolerance, matchText: "match"}
	kind, _ := within.classify()
	assert.Equal(t, classMatch, kind)

	outside := comparisonDim{dim: rateDim, user: 3.5, benchmark: 3.0, tolerance: rateTolerance, strengthText: "strength"}
	kind, _ = outside.classify()
	assert.Equal(t, classStrength, kind)
}

func TestEmotionComparisonRules(t *testing.T) {
	e := NewEngine()
	d := goodDelivery()

	// Benchmark desirable, user not: improvement.
	report := e.GenerateComparative(
		subject(d, types.NeutralEmotion(), 70),
		subject(d, confidentProfile(), 70),
		"",
	)
	require.Len(t, report.Comparison.Improvements, 1)
	assert.Contains(t, report.Comparison.Improvements[0], "confident")

	// Neither desirable: just an observation.
	report = e.GenerateComparative(
		subject(d, types.NewEmotionProfile(map[string]float64{"sadness": 1}), 70),
		subject(d, types.NeutralEmotion(), 70),
		"",
	)
	assert.Empty(t, report.Comparison.Improvements)
	require.Len(t, report.Comparison.General, 1)
	assert.Contains(t, report.Comparison.General[0], "neutral")
}

func TestCompositeSimilarity(t *testing.T) {
	user := types.DescriptorSet{PitchVariability: 30, EnergyVariability: 0.05, SpeechRate: 3.0, PauseRatio: 0.2}
	bench := types.DescriptorSet{PitchVariability: 20, EnergyVariability: 0.05, SpeechRate: 3.0, PauseRatio: 0.2}

	// Pitch factor 0.5, three exact factors, emotion match: mean 0.9.
	assert.InDelta(t, 90.0, compositeSimilarity(user, bench, true), 1e-9)
	// Emotion mismatch swaps the 1.0 for 0.5.
	assert.InDelta(t, 80.0, compositeSimilarity(user, bench, false), 1e-9)
}

func TestSimilarityFactorZeroBenchmark(t *testing.T) {
	assert.InDelta(t, 1.0, similarityFactor(0, 0), 1e-9)
	assert.InDelta(t, 0.5, similarityFactor(0.2, 0), 1e-9)
	assert.InDelta(t, 0.0, similarityFactor(50, 10), 1e-9, "difference capped at the benchmark value")
}

func TestComparativeAssessmentPaceAndExpressiveness(t *testing.T) {
	e := NewEngine()
	slow := goodDelivery()
	slow.SpeechRate = 2.4

	report := e.GenerateComparative(
		subject(slow, confidentProfile(), 60),
		subject(goodDelivery(), confidentProfile(), 80),
		"",
	)
	assert.Contains(t, report.OverallAssessment, "You speak slower than the benchmark.")
	assert.Contains(t, report.OverallAssessment, "The benchmark delivery is more expressive than yours.")
	assert.Contains(t, report.OverallAssessment, "Both deliveries carry a confident tone.")
}

func TestGenerateComparativeContentAccuracy(t *testing.T) {
	e := NewEngine()
	user := subject(goodDelivery(), confidentProfile(), 80)
	user.Transcript = "hello world"
	bench := subject(goodDelivery(), confidentProfile(), 80)
	bench.Transcript = "hello there world"

	report := e.GenerateComparative(user, bench, "hello there world")
	require.NotNil(t, report.ContentAccuracy)
	require.NotNil(t, report.ContentAccuracy.BenchmarkAccuracy)
	assert.Equal(t, 100, *report.ContentAccuracy.BenchmarkAccuracy)

	// No target text, no content accuracy section.
	assert.Nil(t, e.GenerateComparative(user, bench, "").ContentAccuracy)
}

func TestGenerateComparativeKeepsBaseFeedback(t *testing.T) {
	e := NewEngine()
	report := e.GenerateComparative(
		subject(goodDelivery(), confidentProfile(), 80),
		subject(goodDelivery(), confidentProfile(), 80),
		"",
	)
	assert.Len(t, report.SpecificFeedback, 6)
	assert.NotEmpty(t, report.Strengths)
	assert.NotEmpty(t, report.Suggestions)
}
