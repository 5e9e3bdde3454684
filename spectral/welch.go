package spectral

import (
	"github.com/spectralab/vibescope/logging"
)

// PSDEstimator computes an averaged power spectral density with
// Welch's method: overlapping windowed segments, per-segment
// periodograms, unweighted arithmetic averaging. Averaging trades
// frequency resolution for estimator variance; the caller controls
// that trade-off through SegmentLength and Overlap.
type PSDEstimator struct {
	cfg    AnalysisConfig
	logger logging.Logger
}

// NewPSDEstimator validates the configuration and returns an
// estimator. The estimator holds no per-call state; it is safe to
// reuse across signals and the same input always yields the same
// output.
func NewPSDEstimator(cfg AnalysisConfig) (*PSDEstimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &PSDEstimator{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "psd_estimator",
		}),
	}, nil
}

// Estimate computes the Welch PSD of the signal in units^2/Hz over
// L/2+1 bins spanning 0 to Nyquist, where L is the segment length
// clamped to the signal length.
func (e *PSDEstimator) Estimate(sig *Signal) (*SpectralEstimate, error) {
	if sig == nil || len(sig.Samples) == 0 {
		return nil, errEmptySignal()
	}
	if sig.SampleRate <= 0 {
		return nil, errSampleRate(sig.SampleRate)
	}

	plan, err := planSegments(sig.Len(), e.cfg.SegmentLength, e.cfg.Overlap)
	if err != nil {
		return nil, err
	}

	win, err := NewWindow(e.cfg.Window, plan.length)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Estimating Welch PSD", logging.Fields{
		"signal_length":  sig.Len(),
		"segment_length": plan.length,
		"step":           plan.step,
		"segments":       len(plan.starts),
	})

	bins := plan.length/2 + 1
	psd := make([]float64, bins)

	if len(plan.starts) == 0 {
		// Signal shorter than one segment: zero-pad a single
		// detrended segment instead of failing. A partial spectrum is
		// still diagnostically useful.
		e.singleSegmentPSD(sig.Samples, plan.length, win, sig.SampleRate, psd)
	} else {
		seg := make([]float64, plan.length)
		power := make([]float64, bins)
		for _, start := range plan.starts {
			copy(seg, sig.Samples[start:start+plan.length])
			spec := windowedSpectrum(seg, win, e.cfg.Detrend)
			binPower(spec, sig.SampleRate, win.SumSquares, power)
			for i, p := range power {
				psd[i] += p
			}
		}

		inv := 1 / float64(len(plan.starts))
		for i := range psd {
			psd[i] *= inv
		}
	}

	return &SpectralEstimate{
		Frequencies: frequencyAxis(bins, sig.SampleRate, plan.length),
		Values:      psd,
		SampleRate:  sig.SampleRate,
	}, nil
}

// singleSegmentPSD is the short-signal fallback: detrend the whole
// record, zero-pad on the right to the segment length, taper and
// compute one periodogram without averaging.
func (e *PSDEstimator) singleSegmentPSD(samples []float64, segLen int, win *Window, sampleRate float64, dst []float64) {
	seg := make([]float64, segLen)
	copy(seg, samples)
	if e.cfg.Detrend {
		demean(seg[:len(samples)])
	}

	win.applyTo(seg)
	binPower(realSpectrum(seg), sampleRate, win.SumSquares, dst)
}

// windowedSpectrum is the segment-processing primitive shared by the
// three estimators: detrend (optional), taper, transform. The segment
// is mutated in place; callers pass an owned copy.
func windowedSpectrum(seg []float64, win *Window, detrend bool) []complex128 {
	if detrend {
		demean(seg)
	}
	win.applyTo(seg)
	return realSpectrum(seg)
}

// binPower writes the PSD normalization |X[k]|^2 / (fs * sumSquares)
// of each bin into dst.
func binPower(spec []complex128, sampleRate, sumSquares float64, dst []float64) {
	norm := 1 / (sampleRate * sumSquares)
	for i, x := range spec {
		re, im := real(x), imag(x)
		dst[i] = (re*re + im*im) * norm
	}
}
