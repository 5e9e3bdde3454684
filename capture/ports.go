package capture

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spectralab/vibescope/logging"
)

// DefaultSensorVendor is the USB vendor string that identifies the
// vibration sensor among the ttyACM devices.
const DefaultSensorVendor = "TensorTech"

// PortDetector discovers the serial ports of the vibration sensor and
// the gyro-actuator controller. Discovery shells out to udevadm
// through the injected Runner; the glob function is injectable for the
// same reason.
type PortDetector struct {
	runner Runner
	glob   func(pattern string) ([]string, error)
	vendor string
	logger logging.Logger
}

// NewPortDetector creates a detector using the given runner and the
// default device patterns.
func NewPortDetector(runner Runner) *PortDetector {
	return &PortDetector{
		runner: runner,
		glob:   filepath.Glob,
		vendor: DefaultSensorVendor,
		logger: logging.WithFields(logging.Fields{
			"component": "port_detector",
		}),
	}
}

// WithVendor overrides the USB vendor string used to identify the sensor.
func (d *PortDetector) WithVendor(vendor string) *PortDetector {
	d.vendor = vendor
	return d
}

// DetectSensorPort returns the tty device of the vibration sensor: the
// first ttyACM device whose udevadm properties carry the expected USB
// vendor.
func (d *PortDetector) DetectSensorPort(ctx context.Context) (string, error) {
	devices, err := d.glob("/dev/ttyACM*")
	if err != nil {
		return "", fmt.Errorf("detect sensor port: %w", err)
	}

	d.logger.Debug("Scanning ttyACM devices", logging.Fields{"devices": devices})

	for _, device := range devices {
		out, err := d.runner.Run(ctx, "udevadm", "info", "-q", "property", "-n", device)
		if err != nil {
			d.logger.Debug("Failed to query device properties", logging.Fields{"device": device})
			continue
		}

		if strings.Contains(out, "ID_USB_VENDOR="+d.vendor) {
			d.logger.Debug("Found vibration sensor", logging.Fields{"device": device})
			return device, nil
		}
	}

	return "", fmt.Errorf("no %s vibration sensor found", d.vendor)
}

// DetectControllerPort returns the tty device of the gyro-actuator
// controller: the first ttyAMA device in sorted order.
func (d *PortDetector) DetectControllerPort(ctx context.Context) (string, error) {
	devices, err := d.glob("/dev/ttyAMA*")
	if err != nil {
		return "", fmt.Errorf("detect controller port: %w", err)
	}

	if len(devices) == 0 {
		return "", fmt.Errorf("no ttyAMA devices found for controller")
	}

	sort.Strings(devices)

	d.logger.Info("Selected controller port", logging.Fields{"device": devices[0]})
	return devices[0], nil
}
