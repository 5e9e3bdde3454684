package capture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spectralab/vibescope/logging"
)

// SweepMode selects which pair of set-point axes a sweep iterates.
type SweepMode string

const (
	// SweepAngleBySpeed steps through gimbal angles, sweeping wheel
	// speed at each angle.
	SweepAngleBySpeed SweepMode = "gimang_whsp"
	// SweepSpeedBySpeed sweeps wheel speed against gimbal speed.
	SweepSpeedBySpeed SweepMode = "whsp_gimsp"
)

// SweepConfig describes a measurement campaign: the set-point grids,
// the settle times between commands, and the capture length per point.
type SweepConfig struct {
	Mode            SweepMode     `json:"mode"`
	GimbalAngles    []float64     `json:"gimbal_angles"`     // degrees
	WheelSpeeds     []float64     `json:"wheel_speeds"`      // rps
	GimbalSpeeds    []float64     `json:"gimbal_speeds"`     // rps
	SettleInitial   time.Duration `json:"settle_initial"`    // after first set-point
	SettlePerPoint  time.Duration `json:"settle_per_point"`  // before each capture
	CaptureDuration time.Duration `json:"capture_duration"`  // per point
	OutputDir       string        `json:"output_dir"`
}

// DefaultSweepConfig mirrors the standard characterization campaign.
func DefaultSweepConfig(mode SweepMode, outputDir string) SweepConfig {
	return SweepConfig{
		Mode:         mode,
		GimbalAngles: []float64{0, 90, 180, 270},
		WheelSpeeds: []float64{
			-100, -90, -80, -70, -60, -50, -40, -30, -20, -10,
			10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		},
		GimbalSpeeds:    []float64{-0.5, -0.4, -0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3, 0.4, 0.5},
		SettleInitial:   60 * time.Second,
		SettlePerPoint:  30 * time.Second,
		CaptureDuration: 10 * time.Second,
		OutputDir:       outputDir,
	}
}

// Sweep runs a measurement campaign: for every set-point it commands
// the device, waits for speeds to stabilize, and records one capture
// file named after the set-point.
type Sweep struct {
	cfg        SweepConfig
	controller *Controller
	recorder   *Recorder
	sensorPort string
	sleep      func(ctx context.Context, d time.Duration) error
	logger     logging.Logger
}

// NewSweep assembles a sweep from its collaborators.
func NewSweep(cfg SweepConfig, controller *Controller, recorder *Recorder, sensorPort string) (*Sweep, error) {
	switch cfg.Mode {
	case SweepAngleBySpeed, SweepSpeedBySpeed:
	default:
		return nil, fmt.Errorf("unknown sweep mode %q", cfg.Mode)
	}
	if cfg.CaptureDuration <= 0 {
		return nil, fmt.Errorf("capture duration must be positive, got %s", cfg.CaptureDuration)
	}

	return &Sweep{
		cfg:        cfg,
		controller: controller,
		recorder:   recorder,
		sensorPort: sensorPort,
		sleep:      contextSleep,
		logger: logging.WithFields(logging.Fields{
			"component": "sweep",
			"mode":      string(cfg.Mode),
		}),
	}, nil
}

// Run executes the campaign. The device is always returned to idle,
// even when a set-point fails or the context is canceled.
func (s *Sweep) Run(ctx context.Context) error {
	defer func() {
		// Best effort: never leave the wheel spinning.
		stopCtx, cancel := context.WithTimeout(context.Background(), DefaultControlTimeout)
		defer cancel()
		if err := s.controller.Stop(stopCtx); err != nil {
			s.logger.Error(err, "Failed to idle device after sweep")
		}
	}()

	switch s.cfg.Mode {
	case SweepAngleBySpeed:
		return s.runAngleBySpeed(ctx)
	default:
		return s.runSpeedBySpeed(ctx)
	}
}

func (s *Sweep) runAngleBySpeed(ctx context.Context) error {
	for _, angle := range s.cfg.GimbalAngles {
		if err := s.controller.Stop(ctx); err != nil {
			return err
		}
		if err := s.controller.SetWheelAtAngle(ctx, s.cfg.WheelSpeeds[0], angle); err != nil {
			return err
		}
		if err := s.sleep(ctx, s.cfg.SettleInitial); err != nil {
			return err
		}

		for _, speed := range s.cfg.WheelSpeeds {
			s.logger.Info("Set-point", logging.Fields{
				"gimbal_angle": angle,
				"wheel_speed":  speed,
			})

			if err := s.controller.SetWheelAtAngle(ctx, speed, angle); err != nil {
				return err
			}
			if err := s.sleep(ctx, s.cfg.SettlePerPoint); err != nil {
				return err
			}

			out := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%g_%g.csv", angle, speed))
			if err := s.recorder.Record(ctx, s.sensorPort, out, s.cfg.CaptureDuration); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Sweep) runSpeedBySpeed(ctx context.Context) error {
	first := true
	for _, wheel := range s.cfg.WheelSpeeds {
		for _, gimbal := range s.cfg.GimbalSpeeds {
			s.logger.Info("Set-point", logging.Fields{
				"wheel_speed":  wheel,
				"gimbal_speed": gimbal,
			})

			if err := s.controller.SetWheelGimbalSpeed(ctx, wheel, gimbal); err != nil {
				return err
			}

			settle := s.cfg.SettlePerPoint
			if first {
				settle = s.cfg.SettleInitial
				first = false
			}
			if err := s.sleep(ctx, settle); err != nil {
				return err
			}

			out := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%g_%g.csv", wheel, gimbal))
			if err := s.recorder.Record(ctx, s.sensorPort, out, s.cfg.CaptureDuration); err != nil {
				return err
			}
		}
	}

	return nil
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
