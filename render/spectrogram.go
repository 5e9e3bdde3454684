package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/spectralab/vibescope/spectral"
)

// spectrogramGrid adapts a spectrogram to the plotter.GridXYZ
// interface: columns are time, rows are frequency, Z is dB power.
type spectrogramGrid struct {
	sp *spectral.Spectrogram
}

func (g spectrogramGrid) Dims() (c, r int) {
	return len(g.sp.Times), len(g.sp.Frequencies)
}

func (g spectrogramGrid) Z(c, r int) float64 {
	return g.sp.PowerDB[r][c]
}

func (g spectrogramGrid) X(c int) float64 {
	return g.sp.Times[c]
}

func (g spectrogramGrid) Y(r int) float64 {
	return g.sp.Frequencies[r]
}

// SpectrogramPlot renders the dB grid as a heat map with time on the
// horizontal axis and frequency on the vertical axis.
func SpectrogramPlot(sp *spectral.Spectrogram, path string) error {
	if sp == nil || len(sp.Times) == 0 || len(sp.Frequencies) == 0 {
		return fmt.Errorf("spectrogram plot: empty spectrogram")
	}

	h := plotter.NewHeatMap(spectrogramGrid{sp: sp}, palette.Heat(255, 1))

	p := plot.New()
	p.Title.Text = "Spectrogram (PSD, dB re units²/Hz)"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Frequency (Hz)"
	p.Add(h)

	return save(p, path)
}
