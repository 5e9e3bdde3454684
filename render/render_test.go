package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralab/vibescope/spectral"
)

func testSignal(t *testing.T) *spectral.Signal {
	t.Helper()
	fs := 1000.0
	samples := make([]float64, 2048)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 50 * float64(i) / fs)
	}
	sig, err := spectral.NewSignal(samples, fs)
	require.NoError(t, err)
	return sig
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPSDPlotWritesFile(t *testing.T) {
	sig := testSignal(t)

	est, err := spectral.NewPSDEstimator(spectral.AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5, Window: spectral.WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	psd, err := est.Estimate(sig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "psd.png")
	require.NoError(t, PSDPlot(psd, path, 0))
	requirePNG(t, path)
}

func TestAmplitudePlotWritesFile(t *testing.T) {
	sig := testSignal(t)

	est, err := spectral.NewAmplitudeEstimator(spectral.AnalysisConfig{
		SegmentLength: 256, Overlap: 0.5, Window: spectral.WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	amp, err := est.Estimate(sig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "amplitude.png")
	require.NoError(t, AmplitudePlot(amp, path, 200))
	requirePNG(t, path)
}

func TestSpectrogramPlotWritesFile(t *testing.T) {
	sig := testSignal(t)

	builder, err := spectral.NewSpectrogramBuilder(spectral.AnalysisConfig{
		SegmentLength: 128, Overlap: 0.75, Window: spectral.WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	sp, err := builder.Build(sig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "spectrogram.png")
	require.NoError(t, SpectrogramPlot(sp, path))
	requirePNG(t, path)
}

func TestPlotsRejectEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.png")

	assert.Error(t, PSDPlot(nil, path, 0))
	assert.Error(t, AmplitudePlot(&spectral.SpectralEstimate{}, path, 0))
	assert.Error(t, SpectrogramPlot(&spectral.Spectrogram{}, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
