package scoring

import (
	"math"

	"vocal-coach-go/internal/types"
)

// Calibration constants. Historical scores were produced with exactly these
// weights and normalization ranges; changing any of them breaks comparability
// with stored results.
const (
	pitchWeight   = 0.35
	energyWeight  = 0.25
	rateWeight    = 0.15
	pauseWeight   = 0.15
	emotionWeight = 0.10

	pitchFullScale  = 50.0 // Hz stddev mapping to 1.0
	energyFullScale = 0.2  // RMS stddev mapping to 1.0
)

// Expressiveness maps a descriptor set and the primary-emotion confidence to
// a single score in [0, 100].
func Expressiveness(d types.DescriptorSet, emotionConfidence float64) float64 {
	weighted := pitchWeight*PitchScore(d.PitchVariability) +
		energyWeight*EnergyScore(d.EnergyVariability) +
		rateWeight*RateScore(d.SpeechRate) +
		pauseWeight*PauseScore(d.PauseRatio) +
		emotionWeight*emotionConfidence

	return clamp(weighted*100, 0, 100)
}

// PitchScore saturates at a pitch variability of 50 Hz.
func PitchScore(pitchVariability float64) float64 {
	return clamp(pitchVariability/pitchFullScale, 0, 1)
}

// EnergyScore saturates at an energy variability of 0.2 RMS.
func EnergyScore(energyVariability float64) float64 {
	return clamp(energyVariability/energyFullScale, 0, 1)
}

// RateScore peaks at 3.5 syllables/sec, ramps up below 2.0 and decays above
// 5.0.
func RateScore(speechRate float64) float64 {
	var score float64
	switch {
	case speechRate < 2.0:
		score = speechRate / 2.0
	case speechRate > 5.0:
		score = math.Max(0, 1.0-(speechRate-5.0)/3.0)
	default:
		score = 1.0 - math.Abs(speechRate-3.5)/1.5
	}
	return clamp(score, 0, 1)
}

// PauseScore treats a pause ratio of 0.15-0.3 as optimal.
func PauseScore(pauseRatio float64) float64 {
	switch {
	case pauseRatio < 0.15:
		return pauseRatio / 0.15
	case pauseRatio > 0.3:
		return math.Max(0, 1.0-(pauseRatio-0.3)/0.2)
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
