package spectral

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel wrapped by every configuration failure.
// Callers can test for it with errors.Is regardless of the specific detail.
var ErrInvalidConfig = errors.New("invalid configuration")

func errUnknownWindow(kind WindowKind) error {
	return fmt.Errorf("%w: unknown window kind %q", ErrInvalidConfig, kind)
}

func errWindowSize(size int) error {
	return fmt.Errorf("%w: window length must be >= 1, got %d", ErrInvalidConfig, size)
}

func errSegmentLength(length int) error {
	return fmt.Errorf("%w: segment length must be positive, got %d", ErrInvalidConfig, length)
}

func errOverlap(overlap float64) error {
	return fmt.Errorf("%w: overlap fraction must be in [0, 1), got %g", ErrInvalidConfig, overlap)
}

func errSampleRate(rate float64) error {
	return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, rate)
}

func errEmptySignal() error {
	return fmt.Errorf("%w: signal must contain at least one sample", ErrInvalidConfig)
}

func errFrequencyCeiling(ceiling float64) error {
	return fmt.Errorf("%w: frequency ceiling must be positive, got %g", ErrInvalidConfig, ceiling)
}
