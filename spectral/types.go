package spectral

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

// SpectralEstimate is an ordered sequence of (frequency, value) pairs
// with frequency strictly increasing from 0 to Nyquist. The value
// semantics depend on the estimator that produced it: units^2/Hz for a
// PSD, peak-referenced units for an amplitude spectrum.
type SpectralEstimate struct {
	Frequencies []float64 `json:"frequencies"` // Hz
	Values      []float64 `json:"values"`
	SampleRate  float64   `json:"sample_rate"` // Hz
}

// TotalPower integrates the estimate over frequency with the
// trapezoidal rule. For a PSD this is the total signal power.
func (e *SpectralEstimate) TotalPower() float64 {
	if len(e.Frequencies) < 2 {
		return 0
	}
	return integrate.Trapezoidal(e.Frequencies, e.Values)
}

// Truncate returns a copy restricted to frequencies <= ceiling.
// A non-positive ceiling returns the estimate unchanged.
func (e *SpectralEstimate) Truncate(ceiling float64) *SpectralEstimate {
	if ceiling <= 0 {
		return e
	}

	n := 0
	for n < len(e.Frequencies) && e.Frequencies[n] <= ceiling {
		n++
	}

	return &SpectralEstimate{
		Frequencies: append([]float64(nil), e.Frequencies[:n]...),
		Values:      append([]float64(nil), e.Values[:n]...),
		SampleRate:  e.SampleRate,
	}
}

// Spectrogram is a frequency x time grid of dB-scaled power spectral
// density. Rows are indexed by Frequencies, columns by Times.
type Spectrogram struct {
	Frequencies []float64   `json:"frequencies"` // Hz, row axis
	Times       []float64   `json:"times"`       // seconds, column axis
	PowerDB     [][]float64 `json:"power_db"`    // [frequency][time]
	SampleRate  float64     `json:"sample_rate"` // Hz
	SegmentLen  int         `json:"segment_length"`
	Step        int         `json:"step"` // hop between columns, samples
}

// dbFloor is the smallest value a spectrogram cell is allowed to take
// before log conversion, so silent segments never produce -Inf.
// Machine epsilon for float64.
var dbFloor = math.Nextafter(1, 2) - 1

// frequencyAxis returns the one-sided bin frequencies for a transform
// of length segLen: bins spaced sampleRate/segLen from 0 to Nyquist.
func frequencyAxis(bins int, sampleRate float64, segLen int) []float64 {
	freqs := make([]float64, bins)
	delta := sampleRate / float64(segLen)
	for i := range freqs {
		freqs[i] = float64(i) * delta
	}
	return freqs
}
