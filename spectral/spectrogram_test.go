package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectrogramShapeMatchesPlanner(t *testing.T) {
	fs := 1000.0
	n := 4000
	cfg := AnalysisConfig{SegmentLength: 256, Overlap: 0.75, Window: WindowHann, Detrend: true}

	sig := mustSignal(t, sine(n, 1, 125, fs), fs)

	builder, err := NewSpectrogramBuilder(cfg)
	require.NoError(t, err)

	sp, err := builder.Build(sig)
	require.NoError(t, err)

	plan, err := planSegments(n, cfg.SegmentLength, cfg.Overlap)
	require.NoError(t, err)

	assert.Len(t, sp.Times, len(plan.starts))
	require.Len(t, sp.PowerDB, 256/2+1)
	for f, row := range sp.PowerDB {
		assert.Len(t, row, len(plan.starts), "row %d", f)
	}

	// Column spacing is step/fs and the first column starts at zero.
	assert.Equal(t, 0.0, sp.Times[0])
	if len(sp.Times) > 1 {
		assert.InDelta(t, float64(plan.step)/fs, sp.Times[1]-sp.Times[0], 1e-12)
	}
}

func TestSpectrogramSilentSignalHitsFloor(t *testing.T) {
	fs := 500.0
	sig := mustSignal(t, make([]float64, 2000), fs)

	builder, err := NewSpectrogramBuilder(AnalysisConfig{
		SegmentLength: 128, Overlap: 0.5, Window: WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	sp, err := builder.Build(sig)
	require.NoError(t, err)

	floor := 10 * math.Log10(dbFloor)
	for f, row := range sp.PowerDB {
		for c, v := range row {
			assert.Equal(t, floor, v, "row %d col %d", f, c)
		}
	}
}

func TestSpectrogramTonePeakRow(t *testing.T) {
	fs := 1024.0
	segLen := 128
	f0 := 16 * fs / float64(segLen) // bin-aligned at bin 16

	sig := mustSignal(t, sine(4096, 1, f0, fs), fs)

	builder, err := NewSpectrogramBuilder(AnalysisConfig{
		SegmentLength: segLen, Overlap: 0.5, Window: WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	sp, err := builder.Build(sig)
	require.NoError(t, err)

	// Every column peaks on the tone bin.
	for c := range sp.Times {
		peak := 0
		for f := range sp.PowerDB {
			if sp.PowerDB[f][c] > sp.PowerDB[peak][c] {
				peak = f
			}
		}
		assert.InDelta(t, f0, sp.Frequencies[peak], fs/float64(segLen), "column %d", c)
	}
}

func TestSpectrogramFrequencyCeiling(t *testing.T) {
	fs := 1000.0
	sig := mustSignal(t, sine(2000, 1, 60, fs), fs)

	builder, err := NewSpectrogramBuilder(AnalysisConfig{
		SegmentLength: 200, Overlap: 0.5, Window: WindowHann, Detrend: true,
		FrequencyCeiling: 100,
	})
	require.NoError(t, err)

	sp, err := builder.Build(sig)
	require.NoError(t, err)

	require.NotEmpty(t, sp.Frequencies)
	assert.LessOrEqual(t, sp.Frequencies[len(sp.Frequencies)-1], 100.0)
	assert.Len(t, sp.PowerDB, len(sp.Frequencies))

	// Truncation is display-only: remaining rows match the untruncated grid.
	full, err := NewSpectrogramBuilder(AnalysisConfig{
		SegmentLength: 200, Overlap: 0.5, Window: WindowHann, Detrend: true,
	})
	require.NoError(t, err)

	fullSp, err := full.Build(sig)
	require.NoError(t, err)
	for f := range sp.PowerDB {
		assert.Equal(t, fullSp.PowerDB[f], sp.PowerDB[f], "row %d", f)
	}
}

func TestSpectrogramAllValuesFinite(t *testing.T) {
	fs := 1000.0
	sig := mustSignal(t, sine(999, 0.5, 40, fs), fs)

	builder, err := NewSpectrogramBuilder(AnalysisConfig{
		SegmentLength: 4096, Overlap: 0.9, Window: WindowHamming, Detrend: true,
	})
	require.NoError(t, err)

	// Segment length clamps to the record, yielding one full column.
	sp, err := builder.Build(sig)
	require.NoError(t, err)

	assert.Len(t, sp.Times, 1)
	for f, row := range sp.PowerDB {
		for c, v := range row {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "row %d col %d", f, c)
		}
	}
}
