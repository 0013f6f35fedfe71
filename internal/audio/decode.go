package audio

import (
	"math"

	"github.com/go-audio/wav"
)

// trimTopDB matches the silence-trim level applied at capture time: samples
// more than 20 dB below the peak are treated as leading/trailing silence.
const trimTopDB = 20.0

// Decode reads a WAV source into mono float64 samples in [-1, 1] and returns
// them with the sample rate, leading and trailing silence removed. A source
// that cannot be parsed yields a *DecodeError and no samples.
func Decode(src Source) ([]float64, int, error) {
	r, release, err := src.open()
	if err != nil {
		return nil, 0, err
	}
	defer release()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, &DecodeError{Reason: "not a valid wav file"}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, &DecodeError{Reason: "read pcm", Err: err}
	}
	if buf == nil || buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, 0, &DecodeError{Reason: "missing format header"}
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return TrimSilence(samples, trimTopDB), buf.Format.SampleRate, nil
}

// TrimSilence strips leading and trailing samples whose amplitude is more
// than topDB below the peak. All-silent input trims to nothing.
func TrimSilence(samples []float64, topDB float64) []float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return nil
	}
	threshold := peak * math.Pow(10, -topDB/20)

	start := 0
	for start < len(samples) && math.Abs(samples[start]) < threshold {
		start++
	}
	end := len(samples)
	for end > start && math.Abs(samples[end-1]) < threshold {
		end--
	}
	return samples[start:end]
}
