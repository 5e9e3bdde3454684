// Package signalio reads raw sample records from delimited text files
// and exports spectral estimates back to CSV. The spectral core is
// insulated from file formats; this package is its upstream collaborator.
package signalio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spectralab/vibescope/logging"
	"github.com/spectralab/vibescope/spectral"
)

// ReadColumn reads one numeric column from a delimited text file,
// skipping skipRows leading rows. Cells that do not parse as numbers
// and rows too short to contain the column are dropped rather than
// failing, matching the tolerant behavior expected of raw sensor dumps
// (stray headers, truncated last line).
func ReadColumn(path string, column, skipRows int) ([]float64, error) {
	if column < 0 {
		return nil, fmt.Errorf("column index must be >= 0, got %d", column)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()

	samples, dropped, err := readColumn(f, column, skipRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if dropped > 0 {
		logging.Warn("Dropped non-numeric cells while reading samples", logging.Fields{
			"path":    path,
			"column":  column,
			"dropped": dropped,
		})
	}

	return samples, nil
}

func readColumn(r io.Reader, column, skipRows int) ([]float64, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var samples []float64
	dropped := 0
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		row++
		if row <= skipRows {
			continue
		}

		if column >= len(record) {
			dropped++
			continue
		}

		v, err := strconv.ParseFloat(record[column], 64)
		if err != nil {
			dropped++
			continue
		}
		samples = append(samples, v)
	}

	return samples, dropped, nil
}

// ReadSignal reads a calibrated signal: raw counts from the given
// column scaled by the calibration factor (engineering units per
// count) and paired with the sampling rate.
func ReadSignal(path string, column, skipRows int, sampleRate, calibration float64) (*spectral.Signal, error) {
	samples, err := ReadColumn(path, column, skipRows)
	if err != nil {
		return nil, err
	}

	if calibration != 1 {
		for i := range samples {
			samples[i] *= calibration
		}
	}

	return spectral.NewSignal(samples, sampleRate)
}
