package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amplitudeAt(t *testing.T, est *SpectralEstimate, f0 float64) float64 {
	t.Helper()
	best := 0
	for i, f := range est.Frequencies {
		if math.Abs(f-f0) < math.Abs(est.Frequencies[best]-f0) {
			best = i
		}
	}
	return est.Values[best]
}

func TestAmplitudeSineRectangular(t *testing.T) {
	fs := 1000.0
	n := 1000
	amplitude := 3.0
	f0 := 50.0 // 50 cycles in 1000 samples: exactly bin-aligned

	sig := mustSignal(t, sine(n, amplitude, f0, fs), fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowRectangular,
		Detrend: true,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	assert.InDelta(t, amplitude, amplitudeAt(t, amp, f0), 1e-6)
}

func TestAmplitudeSineHannCoherentGain(t *testing.T) {
	fs := 2048.0
	n := 2048
	amplitude := 0.75
	f0 := 8 * fs / float64(n) // bin 8

	sig := mustSignal(t, sine(n, amplitude, f0, fs), fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowHann,
		Detrend: true,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	// The coherent-gain correction must restore the true peak even
	// though the Hann taper attenuated the time-domain signal.
	assert.InDelta(t, amplitude, amplitudeAt(t, amp, f0), 1e-3*amplitude)
}

func TestAmplitudeDCOnly(t *testing.T) {
	fs := 100.0
	n := 400
	c := 2.5

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = c
	}
	sig := mustSignal(t, samples, fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowRectangular,
		Detrend: false, // keep the DC component
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	// Bin 0 holds C undoubled; everything else is numerically silent.
	assert.InDelta(t, c, amp.Values[0], 1e-9)
	for i := 1; i < len(amp.Values); i++ {
		assert.InDelta(t, 0, amp.Values[i], 1e-9, "bin %d", i)
	}
}

func TestAmplitudeEvenNyquistNotDoubled(t *testing.T) {
	fs := 1000.0
	n := 1000 // even: Nyquist bin present
	amplitude := 1.2

	// Alternating signal sits exactly on the Nyquist bin.
	samples := make([]float64, n)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = amplitude
		} else {
			samples[i] = -amplitude
		}
	}
	sig := mustSignal(t, samples, fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowRectangular,
		Detrend: false,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	last := len(amp.Values) - 1
	assert.InDelta(t, fs/2, amp.Frequencies[last], 1e-9)
	assert.InDelta(t, amplitude, amp.Values[last], 1e-9)
}

func TestAmplitudeOddLength(t *testing.T) {
	fs := 1005.0
	n := 1005 // odd: no Nyquist bin, every non-DC bin doubles
	amplitude := 1.8
	f0 := 15 * fs / float64(n) // bin 15

	sig := mustSignal(t, sine(n, amplitude, f0, fs), fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowRectangular,
		Detrend: true,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	require.Len(t, amp.Values, (n+1)/2)
	assert.Less(t, amp.Frequencies[len(amp.Frequencies)-1], fs/2)
	assert.InDelta(t, amplitude, amplitudeAt(t, amp, f0), 1e-6)

	// Doubling applies to the final bin too when there is no Nyquist.
	lastSig := mustSignal(t, sine(n, amplitude, float64((n-1)/2)*fs/float64(n), fs), fs)
	lastAmp, err := est.Estimate(lastSig)
	require.NoError(t, err)
	assert.InDelta(t, amplitude, lastAmp.Values[len(lastAmp.Values)-1], 1e-6)
}

func TestAmplitudeTruncate(t *testing.T) {
	fs := 1000.0
	sig := mustSignal(t, sine(1000, 1, 50, fs), fs)

	est, err := NewAmplitudeEstimator(AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5,
		Window:  WindowHann,
		Detrend: true,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	cut := amp.Truncate(100)
	require.NotEmpty(t, cut.Frequencies)
	assert.LessOrEqual(t, cut.Frequencies[len(cut.Frequencies)-1], 100.0)
	assert.Len(t, cut.Values, len(cut.Frequencies))

	// Truncation copies; the source estimate is untouched.
	assert.InDelta(t, fs/2, amp.Frequencies[len(amp.Frequencies)-1], 1e-9)
}
