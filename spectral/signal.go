package spectral

// Signal is a uniformly sampled real-valued record paired with its
// sampling rate. The estimators never mutate a Signal; segments are
// copied out before detrending and tapering.
type Signal struct {
	Samples    []float64 `json:"samples"`
	SampleRate float64   `json:"sample_rate"` // Hz
}

// NewSignal validates and wraps a sample sequence.
func NewSignal(samples []float64, sampleRate float64) (*Signal, error) {
	if sampleRate <= 0 {
		return nil, errSampleRate(sampleRate)
	}
	if len(samples) == 0 {
		return nil, errEmptySignal()
	}

	return &Signal{
		Samples:    samples,
		SampleRate: sampleRate,
	}, nil
}

// Len returns the number of samples
func (s *Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the record length in seconds
func (s *Signal) Duration() float64 {
	return float64(len(s.Samples)) / s.SampleRate
}

// Nyquist returns the highest representable frequency in Hz
func (s *Signal) Nyquist() float64 {
	return s.SampleRate / 2
}
