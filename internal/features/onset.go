package features

// countOnsets estimates syllable onsets from the per-frame energy contour.
// An onset is a local peak in the positive energy flux that clears an
// adaptive threshold (mean + one standard deviation of the flux).
func countOnsets(energy []float64) int {
	if len(energy) < 3 {
		if len(energy) > 0 && maxOf(energy) > 0 {
			return 1
		}
		return 0
	}

	flux := make([]float64, len(energy))
	for i := 1; i < len(energy); i++ {
		if d := energy[i] - energy[i-1]; d > 0 {
			flux[i] = d
		}
	}

	threshold := mean(flux) + stdDev(flux)
	if threshold <= 0 {
		return 0
	}

	count := 0
	for i := 1; i < len(flux)-1; i++ {
		if flux[i] >= threshold && flux[i] >= flux[i-1] && flux[i] > flux[i+1] {
			count++
		}
	}
	// Ramp at the very end of the contour still counts.
	if flux[len(flux)-1] >= threshold && flux[len(flux)-1] >= flux[len(flux)-2] {
		count++
	}
	return count
}
