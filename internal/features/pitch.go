package features

// Approximate human voice range. Frames whose autocorrelation peak falls
// outside it, or is too weak relative to the zero-lag energy, are unvoiced.
const (
	pitchFloorHz = 65.0
	pitchCeilHz  = 2100.0

	// Minimum normalized autocorrelation peak for a frame to count as voiced.
	voicingThreshold = 0.30
)

// estimatePitch returns the fundamental frequency of one frame via
// autocorrelation peak picking, and whether the frame is voiced.
func estimatePitch(frame []float64, sampleRate int) (float64, bool) {
	n := len(frame)
	if n == 0 || sampleRate <= 0 {
		return 0, false
	}

	minLag := int(float64(sampleRate) / pitchCeilHz)
	maxLag := int(float64(sampleRate) / pitchFloorHz)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if minLag > maxLag {
		return 0, false
	}

	energy := 0.0
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0, false
	}

	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i < n-lag; i++ {
			sum += frame[i] * frame[i+lag]
		}
		if sum > bestVal {
			bestVal = sum
			bestLag = lag
		}
	}

	if bestLag == 0 || bestVal/energy < voicingThreshold {
		return 0, false
	}
	return float64(sampleRate) / float64(bestLag), true
}
