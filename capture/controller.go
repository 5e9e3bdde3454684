package capture

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spectralab/vibescope/logging"
)

// DefaultControlTimeout bounds each control-executable invocation.
const DefaultControlTimeout = 10 * time.Second

var snidPattern = regexp.MustCompile(`SNID:\s*(\S+)`)

// Controller drives the gyro-actuator under test through its external
// control executable: wheel and gimbal set-points, idle stop, serial
// number query. It owns no connection; every operation is one
// invocation of the executable against the controller port.
type Controller struct {
	runner  Runner
	cliPath string
	port    string
	timeout time.Duration
	logger  logging.Logger
}

// NewController wraps the control executable at cliPath bound to the
// given controller port.
func NewController(runner Runner, cliPath, port string) *Controller {
	return &Controller{
		runner:  runner,
		cliPath: cliPath,
		port:    port,
		timeout: DefaultControlTimeout,
		logger: logging.WithFields(logging.Fields{
			"component": "controller",
			"port":      port,
		}),
	}
}

// SerialNumber queries the device identifier (SNID) from the controller.
func (c *Controller) SerialNumber(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "get", "-n", "-p", c.port)
	if err != nil {
		return "", fmt.Errorf("query serial number: %w", err)
	}

	m := snidPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("serial number not found in controller response")
	}

	// Firmware pads the identifier with NUL bytes.
	return strings.TrimRight(m[1], "\x00"), nil
}

// SetWheelGimbalSpeed commands simultaneous wheel and gimbal rotation,
// both in revolutions per second.
func (c *Controller) SetWheelGimbalSpeed(ctx context.Context, wheelRPS, gimbalRPS float64) error {
	c.logger.Debug("Setting wheel and gimbal speed", logging.Fields{
		"wheel_rps":  wheelRPS,
		"gimbal_rps": gimbalRPS,
	})

	_, err := c.run(ctx, "set", "--cmg", fmt.Sprintf("%g,%g", wheelRPS, gimbalRPS), "-p", c.port)
	if err != nil {
		return fmt.Errorf("set wheel/gimbal speed: %w", err)
	}
	return nil
}

// SetWheelAtAngle commands wheel rotation (revolutions per second) at
// a fixed gimbal angle (degrees).
func (c *Controller) SetWheelAtAngle(ctx context.Context, wheelRPS, gimbalAngleDeg float64) error {
	c.logger.Debug("Setting wheel speed at gimbal angle", logging.Fields{
		"wheel_rps":        wheelRPS,
		"gimbal_angle_deg": gimbalAngleDeg,
	})

	_, err := c.run(ctx, "set", "--rw", fmt.Sprintf("%g,%g", wheelRPS, gimbalAngleDeg), "-p", c.port)
	if err != nil {
		return fmt.Errorf("set wheel at angle: %w", err)
	}
	return nil
}

// Stop puts the device into its idle state.
func (c *Controller) Stop(ctx context.Context) error {
	c.logger.Info("Setting device to idle state")

	_, err := c.run(ctx, "set", "--idle", "-p", c.port)
	if err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	return nil
}

func (c *Controller) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.runner.Run(ctx, c.cliPath, args...)
}
