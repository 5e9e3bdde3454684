package spectral

import "github.com/mjibson/go-dsp/fft"

// realSpectrum computes the one-sided complex spectrum of a real
// segment using mjibson/go-dsp. For a segment of length L it returns
// L/2+1 bins (even L) or (L+1)/2 bins (odd L), spanning DC to Nyquist.
func realSpectrum(x []float64) []complex128 {
	if len(x) == 0 {
		return nil
	}

	full := fft.FFTReal(x)
	bins := len(full)/2 + 1

	return full[:bins]
}
