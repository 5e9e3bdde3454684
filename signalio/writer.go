package signalio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spectralab/vibescope/spectral"
)

// WriteEstimate exports a spectral estimate as a two-column CSV with a
// header row. valueHeader names the second column (for example
// "psd_units2_per_hz"). The estimate is fully computed before this is
// called, so a write failure never leaves a partially analyzed file:
// either the computation failed and nothing is written, or the file
// contains the whole estimate.
func WriteEstimate(path string, est *spectral.SpectralEstimate, valueHeader string) error {
	if est == nil || len(est.Frequencies) == 0 {
		return fmt.Errorf("write estimate: empty estimate")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"freq_hz", valueHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, freq := range est.Frequencies {
		record := []string{
			strconv.FormatFloat(freq, 'g', -1, 64),
			strconv.FormatFloat(est.Values[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}
