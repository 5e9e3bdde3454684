// Package render draws spectral estimates and spectrograms to image
// files. It is a downstream collaborator of the spectral core: every
// plot is produced from an already-computed, immutable result.
package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/spectralab/vibescope/spectral"
)

// logFloor keeps log-scaled axes away from zero-valued PSD bins.
const logFloor = 1e-30

// PSDPlot renders a Welch PSD with a logarithmic power axis, mirroring
// the usual semilog presentation of vibration spectra.
func PSDPlot(est *spectral.SpectralEstimate, path string, ceiling float64) error {
	if est == nil || len(est.Frequencies) == 0 {
		return fmt.Errorf("psd plot: empty estimate")
	}

	est = est.Truncate(ceiling)

	pts := make(plotter.XYs, len(est.Frequencies))
	for i, f := range est.Frequencies {
		pts[i].X = f
		pts[i].Y = max(est.Values[i], logFloor)
	}

	p := plot.New()
	p.Title.Text = "Welch PSD"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "PSD (units²/Hz)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	if err := plotutil.AddLines(p, "psd", pts); err != nil {
		return fmt.Errorf("psd plot: %w", err)
	}

	return save(p, path)
}

// AmplitudePlot renders a single-sided amplitude spectrum on linear axes.
func AmplitudePlot(est *spectral.SpectralEstimate, path string, ceiling float64) error {
	if est == nil || len(est.Frequencies) == 0 {
		return fmt.Errorf("amplitude plot: empty estimate")
	}

	est = est.Truncate(ceiling)

	pts := make(plotter.XYs, len(est.Frequencies))
	for i, f := range est.Frequencies {
		pts[i].X = f
		pts[i].Y = est.Values[i]
	}

	p := plot.New()
	p.Title.Text = "Single-Sided Amplitude Spectrum"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Amplitude (units)"

	if err := plotutil.AddLines(p, "amplitude", pts); err != nil {
		return fmt.Errorf("amplitude plot: %w", err)
	}

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
