package features

import (
	"vocal-coach-go/internal/types"
)

// Frame geometry shared by the pitch and energy analyses. Pause and emphasis
// ratios are fractions of this frame grid, so the two must stay in lockstep.
const (
	frameSize = 2048
	hopSize   = 512

	pauseThresholdFactor    = 0.01
	emphasisThresholdFactor = 0.80
)

// Extractor converts decoded mono samples into an acoustic descriptor set.
// It is stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract computes the full descriptor set for one recording. Zero-length or
// all-silence input resolves to zero-valued descriptors, never an error.
func (e *Extractor) Extract(samples []float64, sampleRate int) types.DescriptorSet {
	var d types.DescriptorSet
	if len(samples) == 0 || sampleRate <= 0 {
		return d
	}
	d.Duration = float64(len(samples)) / float64(sampleRate)

	var (
		energy      []float64
		voicedPitch []float64
	)
	for start := 0; start == 0 || start+frameSize <= len(samples); start += hopSize {
		end := start + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		frame := samples[start:end]
		t := float64(start) / float64(sampleRate)

		v := rms(frame)
		energy = append(energy, v)
		d.EnergySeries = append(d.EnergySeries, types.Point{Time: t, Value: v})

		if hz, voiced := estimatePitch(frame, sampleRate); voiced {
			voicedPitch = append(voicedPitch, hz)
			d.PitchSeries = append(d.PitchSeries, types.Point{Time: t, Value: hz})
		}
	}

	d.PitchVariability = stdDev(voicedPitch)
	d.EnergyVariability = stdDev(energy)

	peak := maxOf(energy)
	if peak > 0 {
		pauseThreshold := pauseThresholdFactor * peak
		emphasisThreshold := emphasisThresholdFactor * peak
		pauses, emphases := 0, 0
		for _, v := range energy {
			if v < pauseThreshold {
				pauses++
			}
			if v > emphasisThreshold {
				emphases++
			}
		}
		d.PauseRatio = float64(pauses) / float64(len(energy))
		d.EmphasisRatio = float64(emphases) / float64(len(energy))
	} else if len(energy) > 0 {
		// Digital silence: every frame is a pause.
		d.PauseRatio = 1.0
	}

	d.EstimatedSyllableCount = countOnsets(energy)
	if d.Duration > 0 {
		d.SpeechRate = float64(d.EstimatedSyllableCount) / d.Duration
	}

	return d
}
