package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spectralab/vibescope/logging"
)

// Recorder performs timed captures through the external sensor-reader
// executable, which streams frames from the sensor port into a CSV
// file until it is stopped. A capture that runs out its full duration
// is a success; the reader never exits on its own.
type Recorder struct {
	runner     Runner
	readerPath string
	logger     logging.Logger
}

// NewRecorder wraps the sensor-reader executable at readerPath.
func NewRecorder(runner Runner, readerPath string) *Recorder {
	return &Recorder{
		runner:     runner,
		readerPath: readerPath,
		logger: logging.WithFields(logging.Fields{
			"component": "recorder",
		}),
	}
}

// Record captures duration's worth of samples from the sensor port
// into outputPath. The reader is terminated by context deadline;
// hitting that deadline is the expected way a capture ends.
func (r *Recorder) Record(ctx context.Context, port, outputPath string, duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("record: duration must be positive, got %s", duration)
	}

	r.logger.Info("Starting capture", logging.Fields{
		"port":     port,
		"output":   outputPath,
		"duration": duration.String(),
	})

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	_, err := r.runner.Run(ctx, r.readerPath, "-p", port, "-o", outputPath)
	if err != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("capture to %s: %w", outputPath, err)
	}

	r.logger.Info("Capture completed", logging.Fields{"output": outputPath})
	return nil
}
