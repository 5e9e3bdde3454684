package spectral

import (
	"math"

	"github.com/spectralab/vibescope/logging"
)

// AmplitudeEstimator computes a calibrated single-sided amplitude
// spectrum over the whole record: one full-length window, one
// transform, no segment averaging. It trades statistical smoothing for
// frequency resolution and exact peak-amplitude fidelity, which is why
// it is a separate estimator rather than a special case of the PSD
// path.
type AmplitudeEstimator struct {
	cfg    AnalysisConfig
	logger logging.Logger
}

// NewAmplitudeEstimator validates the configuration and returns an
// estimator. SegmentLength and Overlap are not used by this path; the
// window length always equals the signal length.
func NewAmplitudeEstimator(cfg AnalysisConfig) (*AmplitudeEstimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &AmplitudeEstimator{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "amplitude_estimator",
		}),
	}, nil
}

// Estimate computes the single-sided amplitude spectrum in signal
// units, peak-referenced: |X[k]| / (N * coherentGain), with every bin
// doubled except DC and, for even N, the Nyquist bin. The doubling
// folds the discarded negative-frequency half back in; DC and Nyquist
// have no mirror and must not be doubled.
func (e *AmplitudeEstimator) Estimate(sig *Signal) (*SpectralEstimate, error) {
	if sig == nil || len(sig.Samples) == 0 {
		return nil, errEmptySignal()
	}
	if sig.SampleRate <= 0 {
		return nil, errSampleRate(sig.SampleRate)
	}

	n := sig.Len()

	win, err := NewWindow(e.cfg.Window, n)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Estimating amplitude spectrum", logging.Fields{
		"signal_length": n,
		"window":        e.cfg.Window,
	})

	seg := make([]float64, n)
	copy(seg, sig.Samples)
	spec := windowedSpectrum(seg, win, e.cfg.Detrend)

	// Restore true peak amplitude: undo the 1/N transform scaling and
	// the coherent-gain attenuation of the taper.
	norm := 1 / (float64(n) * win.CoherentGain)
	amp := make([]float64, len(spec))
	for i, x := range spec {
		amp[i] = math.Hypot(real(x), imag(x)) * norm
	}

	last := len(amp) - 1
	for i := 1; i <= last; i++ {
		if i == last && n%2 == 0 {
			// Even-length transforms end on the unmirrored Nyquist bin.
			continue
		}
		amp[i] *= 2
	}

	return &SpectralEstimate{
		Frequencies: frequencyAxis(len(amp), sig.SampleRate, n),
		Values:      amp,
		SampleRate:  sig.SampleRate,
	}, nil
}
