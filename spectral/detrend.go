package spectral

import "gonum.org/v1/gonum/floats"

// demean subtracts the arithmetic mean in place, removing the DC
// offset before transformation. The Welch and spectrogram paths call
// this per segment to suppress slow drift between segments; the
// amplitude path calls it once over the whole record so genuine
// low-frequency content survives.
func demean(x []float64) {
	if len(x) == 0 {
		return
	}

	mean := floats.Sum(x) / float64(len(x))
	for i := range x {
		x[i] -= mean
	}
}
