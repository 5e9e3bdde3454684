package signalio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralab/vibescope/spectral"
)

func TestWriteEstimateRoundTrip(t *testing.T) {
	est := &spectral.SpectralEstimate{
		Frequencies: []float64{0, 100, 200},
		Values:      []float64{0.5, 1.25, 0.0625},
		SampleRate:  400,
	}

	path := filepath.Join(t.TempDir(), "psd_welch.csv")
	require.NoError(t, WriteEstimate(path, est, "psd_units2_per_hz"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "freq_hz,psd_units2_per_hz", lines[0])
	assert.Equal(t, "100,1.25", lines[2])

	// Export and read back through the column reader.
	values, dropped, err := readColumn(strings.NewReader(string(raw)), 1, 1)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, est.Values, values)
}

func TestWriteEstimateEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := WriteEstimate(path, &spectral.SpectralEstimate{}, "v")
	assert.Error(t, err)

	// Nothing may be written for a rejected estimate.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
