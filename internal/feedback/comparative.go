package feedback

import (
	"fmt"
	"math"
	"strings"

	"vocal-coach-go/internal/accuracy"
	"vocal-coach-go/internal/types"
)

// Subject is one side of a benchmark comparison.
type Subject struct {
	Descriptors types.DescriptorSet
	Emotions    types.EmotionProfile
	Score       float64
	Transcript  string
}

// Match tolerances on the relative difference |user-benchmark|/benchmark.
const (
	defaultTolerance = 0.2
	rateTolerance    = 0.1
)

// GenerateComparative diffs the user against a benchmark recording. The
// classification rules are symmetric up to the documented directional
// wording: swapping the sides only flips which texts are chosen.
func (e *Engine) GenerateComparative(user, benchmark Subject, targetText string) types.ComparativeReport {
	primary := user.Emotions.Primary
	if primary == "" {
		primary = "neutral"
	}
	benchPrimary := benchmark.Emotions.Primary
	if benchPrimary == "" {
		benchPrimary = "neutral"
	}

	var cmp types.Comparison
	for _, c := range comparisonDims(user.Descriptors, benchmark.Descriptors) {
		kind, text := c.classify()
		switch kind {
		case classMatch:
			cmp.Matches = append(cmp.Matches, text)
		case classStrength:
			cmp.Strengths = append(cmp.Strengths, text)
		case classImprovement:
			cmp.Improvements = append(cmp.Improvements, text)
		case classGeneral:
			cmp.General = append(cmp.General, text)
		}
	}

	// Emotion: a mismatch is only a required improvement when the benchmark
	// hits a desirable tone and the user does not.
	if primary == benchPrimary {
		cmp.Matches = append(cmp.Matches, fmt.Sprintf("Your emotional tone matches the benchmark (%s).", primary))
	} else if desirableEmotions[benchPrimary] && !desirableEmotions[primary] {
		cmp.Improvements = append(cmp.Improvements, fmt.Sprintf("The benchmark conveys a %s tone while yours reads %s. Aim for that %s color.", benchPrimary, primary, benchPrimary))
	} else {
		cmp.General = append(cmp.General, fmt.Sprintf("The benchmark conveys a primarily %s tone while yours is %s.", benchPrimary, primary))
	}

	similarity := compositeSimilarity(user.Descriptors, benchmark.Descriptors, primary == benchPrimary)

	report := types.ComparativeReport{
		FeedbackReport: e.Generate(user.Descriptors, user.Emotions, user.Score, "", ""),
		Comparison:     cmp,
		Similarity:     similarity,
	}
	report.OverallAssessment = comparativeAssessment(similarity, user, benchmark, primary, benchPrimary)

	if targetText != "" && user.Transcript != "" {
		report.ContentAccuracy = accuracy.EvaluateComparative(user.Transcript, benchmark.Transcript, targetText)
	}

	return report
}

type classification int

const (
	classMatch classification = iota
	classStrength
	classImprovement
	classGeneral
)

// comparisonDim carries one dimension's values plus its directional wording.
type comparisonDim struct {
	dim       dimension
	user      float64
	benchmark float64
	tolerance float64

	matchText    string
	strengthText string
	overdoneText string
	improveText  string
	generalText  string
}

func (c comparisonDim) classify() (classification, string) {
	relDiff := 0.0
	if c.benchmark != 0 {
		relDiff = math.Abs(c.user-c.benchmark) / c.benchmark
	}

	switch {
	case relDiff <= c.tolerance:
		return classMatch, c.matchText
	case c.user > c.benchmark:
		if c.dim.isHigh(c.user) && !c.dim.isHigh(c.benchmark) {
			return classImprovement, c.overdoneText
		}
		return classStrength, c.strengthText
	default:
		// The benchmark is ahead; only demand improvement when the benchmark
		// itself is at least at its good bucket.
		if !c.dim.isGood(c.benchmark) {
			return classGeneral, c.generalText
		}
		return classImprovement, c.improveText
	}
}

func comparisonDims(user, benchmark types.DescriptorSet) []comparisonDim {
	return []comparisonDim{
		{
			dim: pitchDim, user: user.PitchVariability, benchmark: benchmark.PitchVariability, tolerance: defaultTolerance,
			matchText:    "Your pitch variation closely matches the benchmark.",
			strengthText: "Your pitch variation exceeds the benchmark - a strong expressive range.",
			overdoneText: "Your pitch variation goes well beyond the benchmark. It may sound overdone - aim for more controlled variation.",
			improveText:  "Your pitch variation falls short of the benchmark. Work toward more tonal movement.",
			generalText:  "Your pitch variation is below the benchmark, though the benchmark itself is modest on this dimension.",
		},
		{
			dim: energyDim, user: user.EnergyVariability, benchmark: benchmark.EnergyVariability, tolerance: defaultTolerance,
			matchText:    "Your volume dynamics closely match the benchmark.",
			strengthText: "Your volume dynamics exceed the benchmark - emphatic delivery.",
			overdoneText: "Your volume swings go well beyond the benchmark. Rein them in for a more controlled delivery.",
			improveText:  "Your volume dynamics fall short of the benchmark. Push key words harder.",
			generalText:  "Your volume dynamics are below the benchmark, though the benchmark itself is flat on this dimension.",
		},
		{
			dim: rateDim, user: user.SpeechRate, benchmark: benchmark.SpeechRate, tolerance: rateTolerance,
			matchText:    "Your speaking pace closely matches the benchmark.",
			strengthText: "You speak faster than the benchmark while staying clear.",
			overdoneText: "You speak noticeably faster than the benchmark - slow down for a more controlled pace.",
			improveText:  "You speak slower than the benchmark. Try matching its pace.",
			generalText:  "You speak slower than the benchmark, though the benchmark's own pace is on the slow side.",
		},
		{
			dim: pauseDim, user: user.PauseRatio, benchmark: benchmark.PauseRatio, tolerance: defaultTolerance,
			matchText:    "Your use of pauses closely matches the benchmark.",
			strengthText: "You pause more generously than the benchmark, giving points room to land.",
			overdoneText: "You pause much more than the benchmark - tighten up the hesitations.",
			improveText:  "You pause less than the benchmark. Add deliberate pauses at key points.",
			generalText:  "You pause less than the benchmark, though the benchmark itself is light on pauses.",
		},
	}
}

// compositeSimilarity is the mean of five per-dimension factors on a 0-100
// scale: four relative-difference factors plus an emotion factor of 1.0 on a
// primary-emotion match and 0.5 otherwise.
func compositeSimilarity(user, benchmark types.DescriptorSet, emotionMatch bool) float64 {
	factors := []float64{
		similarityFactor(user.PitchVariability, benchmark.PitchVariability),
		similarityFactor(user.EnergyVariability, benchmark.EnergyVariability),
		similarityFactor(user.SpeechRate, benchmark.SpeechRate),
		similarityFactor(user.PauseRatio, benchmark.PauseRatio),
	}
	if emotionMatch {
		factors = append(factors, 1.0)
	} else {
		factors = append(factors, 0.5)
	}

	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	return 100 * sum / float64(len(factors))
}

func similarityFactor(user, benchmark float64) float64 {
	if benchmark == 0 {
		if user == 0 {
			return 1.0
		}
		return 0.5
	}
	return 1.0 - math.Min(math.Abs(user-benchmark)/benchmark, 1.0)
}

func comparativeAssessment(similarity float64, user, benchmark Subject, primary, benchPrimary string) string {
	var tier string
	switch {
	case similarity >= 80:
		tier = "Your delivery is very close to the benchmark."
	case similarity >= 60:
		tier = "Your delivery is fairly close to the benchmark, with room to close the gap."
	case similarity >= 40:
		tier = "Your delivery differs from the benchmark in several ways."
	default:
		tier = "Your delivery differs substantially from the benchmark."
	}

	var expressiveness string
	switch {
	case math.Abs(user.Score-benchmark.Score) <= 5:
		expressiveness = "Your expressiveness is on par with the benchmark."
	case user.Score > benchmark.Score:
		expressiveness = "Your delivery is more expressive than the benchmark."
	default:
		expressiveness = "The benchmark delivery is more expressive than yours."
	}

	var pace string
	rel := 0.0
	if benchmark.Descriptors.SpeechRate != 0 {
		rel = math.Abs(user.Descriptors.SpeechRate-benchmark.Descriptors.SpeechRate) / benchmark.Descriptors.SpeechRate
	}
	switch {
	case rel <= rateTolerance:
		pace = "Your pace tracks the benchmark."
	case user.Descriptors.SpeechRate > benchmark.Descriptors.SpeechRate:
		pace = "You speak faster than the benchmark."
	default:
		pace = "You speak slower than the benchmark."
	}

	var emotion string
	if primary == benchPrimary {
		emotion = fmt.Sprintf("Both deliveries carry a %s tone.", primary)
	} else {
		emotion = fmt.Sprintf("The benchmark carries a %s tone; yours reads %s.", benchPrimary, primary)
	}

	return strings.Join([]string{tier, expressiveness, pace, emotion}, " ")
}
