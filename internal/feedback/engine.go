package feedback

import (
	"fmt"
	"strings"

	"vocal-coach-go/internal/accuracy"
	"vocal-coach-go/internal/types"
)

// Engine turns a descriptor set, emotion profile and expressiveness score
// into human-readable feedback. It holds no state beyond its threshold
// tables and is a pure function of its inputs: absent numeric values behave
// as zero and a missing emotion behaves as neutral.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Generate produces the non-comparative feedback report. targetText enables
// content-accuracy scoring when a transcript is available; pass "" to skip.
func (e *Engine) Generate(d types.DescriptorSet, emotions types.EmotionProfile, score float64, transcript, targetText string) types.FeedbackReport {
	primary := emotions.Primary
	if primary == "" {
		primary = "neutral"
	}

	report := types.FeedbackReport{
		OverallAssessment: e.overallAssessment(d, score, primary),
		SpecificFeedback:  e.specificFeedback(d, primary),
		Strengths:         e.strengths(d, primary),
		Suggestions:       e.suggestions(d, primary),
	}

	if targetText != "" && transcript != "" {
		report.ContentAccuracy = accuracy.Evaluate(transcript, targetText)
	}

	return report
}

func expressivenessTier(score float64) string {
	switch {
	case score >= 80:
		return "very expressive"
	case score >= 60:
		return "expressive"
	case score >= 40:
		return "moderately expressive"
	case score >= 20:
		return "somewhat flat"
	default:
		return "monotonous"
	}
}

func (e *Engine) overallAssessment(d types.DescriptorSet, score float64, primary string) string {
	parts := []string{
		fmt.Sprintf("Overall, your delivery sounds %s.", expressivenessTier(score)),
		pitchDim.pick(d.PitchVariability).clause,
		energyDim.pick(d.EnergyVariability).clause,
		rateDim.pick(d.SpeechRate).clause,
		fmt.Sprintf("Your speech conveys a primarily %s tone.", primary),
	}
	return strings.Join(parts, " ")
}

// specificFeedback always emits exactly one sentence for each of the six
// dimensions, in fixed order.
func (e *Engine) specificFeedback(d types.DescriptorSet, primary string) []string {
	return []string{
		pitchDim.pick(d.PitchVariability).feedback,
		energyDim.pick(d.EnergyVariability).feedback,
		rateDim.pick(d.SpeechRate).feedback,
		pauseDim.pick(d.PauseRatio).feedback,
		emphasisDim.pick(d.EmphasisRatio).feedback,
		emotionFeedback(primary),
	}
}

func emotionFeedback(primary string) string {
	switch {
	case desirableEmotions[primary]:
		return fmt.Sprintf("Your %s tone comes through clearly - great emotional color.", primary)
	case primary == "neutral":
		return "Your tone reads as mostly neutral. Letting more feeling through will make the delivery memorable."
	default:
		return fmt.Sprintf("Your speech carries a primarily %s tone. Make sure that matches the message you intend.", primary)
	}
}

func (e *Engine) strengths(d types.DescriptorSet, primary string) []string {
	var out []string
	for _, dv := range dimensionValues(d) {
		if b := dv.dim.pick(dv.value); b.quality >= qualityGood {
			out = append(out, b.strength)
		}
	}
	if desirableEmotions[primary] {
		out = append(out, fmt.Sprintf("A clearly %s emotional tone", primary))
	}
	if len(out) == 0 {
		out = append(out, "You're making good progress with your speaking practice")
	}
	return out
}

func (e *Engine) suggestions(d types.DescriptorSet, primary string) []string {
	var out []string
	for _, dv := range dimensionValues(d) {
		if b := dv.dim.pick(dv.value); b.quality < qualityGood {
			out = append(out, b.suggestion)
		}
	}
	if !desirableEmotions[primary] {
		out = append(out, "Experiment with conveying more confidence or enthusiasm in your voice.")
	}
	if len(out) == 0 {
		out = append(out, "Keep building on your delivery - it's working well.")
	}
	return out
}

type dimValue struct {
	dim   dimension
	value float64
}

// dimensionValues fixes the dimension order used by every list.
func dimensionValues(d types.DescriptorSet) []dimValue {
	return []dimValue{
		{pitchDim, d.PitchVariability},
		{energyDim, d.EnergyVariability},
		{rateDim, d.SpeechRate},
		{pauseDim, d.PauseRatio},
		{emphasisDim, d.EmphasisRatio},
	}
}
