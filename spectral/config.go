package spectral

// AnalysisConfig holds the knobs shared by the PSD, amplitude and
// spectrogram estimators. Validation happens up front, before any
// computation; a rejected configuration never produces partial output.
type AnalysisConfig struct {
	// SegmentLength is the number of samples per Welch/spectrogram
	// segment. It is clamped to the signal length at estimation time
	// when the record is shorter than one segment.
	SegmentLength int `json:"segment_length"`
	// Overlap is the fraction of a segment reused between consecutive
	// segments, in [0, 1).
	Overlap float64 `json:"overlap"`
	// Window selects the taper applied to each segment.
	Window WindowKind `json:"window"`
	// Detrend enables mean removal before transformation.
	Detrend bool `json:"detrend"`
	// FrequencyCeiling truncates the displayed frequency axis in Hz.
	// Zero means no ceiling.
	FrequencyCeiling float64 `json:"frequency_ceiling,omitempty"`
}

// DefaultAnalysisConfig returns the configuration the command-line
// front end starts from.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SegmentLength: 4096,
		Overlap:       0.5,
		Window:        WindowHann,
		Detrend:       true,
	}
}

// Validate rejects any configuration the estimators cannot honor.
func (c AnalysisConfig) Validate() error {
	if c.SegmentLength <= 0 {
		return errSegmentLength(c.SegmentLength)
	}
	if c.Overlap < 0 || c.Overlap >= 1 {
		return errOverlap(c.Overlap)
	}
	switch c.Window {
	case WindowHann, WindowHamming, WindowRectangular:
	default:
		return errUnknownWindow(c.Window)
	}
	if c.FrequencyCeiling < 0 {
		return errFrequencyCeiling(c.FrequencyCeiling)
	}

	return nil
}
