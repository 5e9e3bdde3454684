package spectral

import "math"

// WindowKind identifies a taper function. The set is closed: any value
// outside the declared constants is rejected at window construction,
// never silently replaced with a rectangular window.
type WindowKind string

const (
	WindowHann        WindowKind = "hann"
	WindowHamming     WindowKind = "hamming"
	WindowRectangular WindowKind = "rectangular"
)

// Window holds taper coefficients together with the two scalars the
// estimators normalize by. Immutable once built; the length always
// matches the segment length it was built for.
type Window struct {
	Kind         WindowKind `json:"kind"`
	Size         int        `json:"size"`
	Coefficients []float64  `json:"coefficients"`

	// SumSquares is sum(w[i]^2), the PSD power normalization factor.
	SumSquares float64 `json:"sum_squares"`
	// CoherentGain is mean(w), the amplitude attenuation of the taper.
	CoherentGain float64 `json:"coherent_gain"`
}

// NewWindow generates the coefficients for the given kind and length
// and precomputes SumSquares and CoherentGain.
func NewWindow(kind WindowKind, size int) (*Window, error) {
	if size < 1 {
		return nil, errWindowSize(size)
	}

	coeffs := make([]float64, size)

	switch kind {
	case WindowHann:
		fillCosineTaper(coeffs, 0.5, 0.5)
	case WindowHamming:
		fillCosineTaper(coeffs, 0.54, 0.46)
	case WindowRectangular:
		for i := range coeffs {
			coeffs[i] = 1
		}
	default:
		return nil, errUnknownWindow(kind)
	}

	var sum, sumSquares float64
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	return &Window{
		Kind:         kind,
		Size:         size,
		Coefficients: coeffs,
		SumSquares:   sumSquares,
		CoherentGain: sum / float64(size),
	}, nil
}

// fillCosineTaper writes the symmetric two-term cosine window
// a0 - a1*cos(2*pi*n/(N-1)) into coeffs. A single-sample window
// degenerates to coefficient 1.
func fillCosineTaper(coeffs []float64, a0, a1 float64) {
	n := len(coeffs)
	if n == 1 {
		coeffs[0] = 1
		return
	}

	denom := float64(n - 1)
	for i := range coeffs {
		coeffs[i] = a0 - a1*math.Cos(2*math.Pi*float64(i)/denom)
	}
}

// applyTo multiplies a segment elementwise by the window coefficients.
// The segment length must equal the window size.
func (w *Window) applyTo(segment []float64) {
	for i := range segment {
		segment[i] *= w.Coefficients[i]
	}
}
