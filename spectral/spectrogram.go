package spectral

import (
	"math"
	"runtime"
	"sync"

	"github.com/spectralab/vibescope/logging"
)

// SpectrogramBuilder produces a frequency x time grid of per-segment
// PSD converted to decibels. The per-segment computation is identical
// to the Welch path, but segments become columns instead of being
// averaged.
type SpectrogramBuilder struct {
	cfg    AnalysisConfig
	logger logging.Logger
}

// NewSpectrogramBuilder validates the configuration and returns a
// builder.
func NewSpectrogramBuilder(cfg AnalysisConfig) (*SpectrogramBuilder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SpectrogramBuilder{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "spectrogram_builder",
		}),
	}, nil
}

// Build computes the spectrogram. Columns are processed in parallel;
// every segment is an independent copy and each worker writes only its
// own column, so no synchronization beyond the final join is needed.
// Cell values are 10*log10(max(psd, eps)) so silent segments land on a
// finite floor instead of -Inf.
func (b *SpectrogramBuilder) Build(sig *Signal) (*Spectrogram, error) {
	if sig == nil || len(sig.Samples) == 0 {
		return nil, errEmptySignal()
	}
	if sig.SampleRate <= 0 {
		return nil, errSampleRate(sig.SampleRate)
	}

	plan, err := planSegments(sig.Len(), b.cfg.SegmentLength, b.cfg.Overlap)
	if err != nil {
		return nil, err
	}

	win, err := NewWindow(b.cfg.Window, plan.length)
	if err != nil {
		return nil, err
	}

	cols := len(plan.starts)
	bins := plan.length/2 + 1

	b.logger.Debug("Building spectrogram", logging.Fields{
		"signal_length":  sig.Len(),
		"segment_length": plan.length,
		"step":           plan.step,
		"columns":        cols,
	})

	// Per-column linear power, computed by a small worker pool.
	columns := make([][]float64, cols)

	jobs := make(chan int, cols)

	var wg sync.WaitGroup
	for w := 0; w < b.workerCount(cols); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			seg := make([]float64, plan.length)
			for col := range jobs {
				start := plan.starts[col]
				copy(seg, sig.Samples[start:start+plan.length])
				spec := windowedSpectrum(seg, win, b.cfg.Detrend)

				power := make([]float64, bins)
				binPower(spec, sig.SampleRate, win.SumSquares, power)
				columns[col] = power
			}
		}()
	}

	for col := 0; col < cols; col++ {
		jobs <- col
	}
	close(jobs)
	wg.Wait()

	// Assemble the frequency x time grid in dB, optionally truncating
	// rows above the display ceiling.
	freqs := frequencyAxis(bins, sig.SampleRate, plan.length)
	rows := bins
	if b.cfg.FrequencyCeiling > 0 {
		rows = 0
		for rows < bins && freqs[rows] <= b.cfg.FrequencyCeiling {
			rows++
		}
		freqs = freqs[:rows]
	}

	grid := make([][]float64, rows)
	for f := range grid {
		row := make([]float64, cols)
		for t := range row {
			row[t] = 10 * math.Log10(math.Max(columns[t][f], dbFloor))
		}
		grid[f] = row
	}

	times := make([]float64, cols)
	for t, start := range plan.starts {
		times[t] = float64(start) / sig.SampleRate
	}

	return &Spectrogram{
		Frequencies: freqs,
		Times:       times,
		PowerDB:     grid,
		SampleRate:  sig.SampleRate,
		SegmentLen:  plan.length,
		Step:        plan.step,
	}, nil
}

// workerCount sizes the pool to the workload so short records do not
// pay goroutine overhead.
func (b *SpectrogramBuilder) workerCount(cols int) int {
	n := runtime.NumCPU()
	if cols < n {
		n = cols
	}
	if n < 1 {
		n = 1
	}
	return n
}
