// Command vibescope analyzes vibration records in the frequency
// domain and orchestrates capture campaigns.
//
// Usage:
//
//	vibescope analyze -input data.csv -fs 12500 [flags]
//	vibescope record -mode whsp_gimsp [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spectralab/vibescope/capture"
	"github.com/spectralab/vibescope/logging"
	"github.com/spectralab/vibescope/render"
	"github.com/spectralab/vibescope/signalio"
	"github.com/spectralab/vibescope/spectral"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "record":
		err = runRecord(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logging.Error(err, "Command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vibescope <analyze|record> [flags]")
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	input := fs.String("input", "", "path to CSV file with samples (required)")
	rate := fs.Float64("fs", 0, "sampling rate in Hz (required)")
	column := fs.Int("column", 1, "column index to read")
	skipRows := fs.Int("skiprows", 1, "number of header rows to skip")
	calib := fs.Float64("calib", 1.0, "calibration factor, engineering units per count")
	segLen := fs.Int("nperseg", 4096, "Welch segment length in samples")
	overlap := fs.Float64("overlap", 0.5, "Welch overlap fraction in [0,1)")
	windowKind := fs.String("window", "hann", "window kind: hann, hamming or rectangular")
	fmax := fs.Float64("fmax", 0, "max frequency to display in Hz (0 = Nyquist)")
	outDir := fs.String("outdir", "out", "output directory for plots and CSV")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	if *input == "" {
		return fmt.Errorf("analyze: -input is required")
	}
	if *rate <= 0 {
		return fmt.Errorf("analyze: -fs must be a positive sampling rate")
	}

	cfg := spectral.AnalysisConfig{
		SegmentLength:    *segLen,
		Overlap:          *overlap,
		Window:           spectral.WindowKind(*windowKind),
		Detrend:          true,
		FrequencyCeiling: *fmax,
	}

	// Fail on configuration before any file is read or written.
	psdEst, err := spectral.NewPSDEstimator(cfg)
	if err != nil {
		return err
	}
	ampEst, err := spectral.NewAmplitudeEstimator(cfg)
	if err != nil {
		return err
	}
	specBuilder, err := spectral.NewSpectrogramBuilder(spectrogramConfig(cfg))
	if err != nil {
		return err
	}

	sig, err := signalio.ReadSignal(*input, *column, *skipRows, *rate, *calib)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	psd, err := psdEst.Estimate(sig)
	if err != nil {
		return err
	}
	amp, err := ampEst.Estimate(sig)
	if err != nil {
		return err
	}
	spec, err := specBuilder.Build(sig)
	if err != nil {
		return err
	}

	psdCSV := filepath.Join(*outDir, "psd_welch.csv")
	if err := signalio.WriteEstimate(psdCSV, psd, "psd_units2_per_hz"); err != nil {
		return err
	}

	psdPNG := filepath.Join(*outDir, "psd_welch.png")
	if err := render.PSDPlot(psd, psdPNG, *fmax); err != nil {
		return err
	}

	ampPNG := filepath.Join(*outDir, "amplitude_spectrum.png")
	if err := render.AmplitudePlot(amp, ampPNG, *fmax); err != nil {
		return err
	}

	specPNG := filepath.Join(*outDir, "spectrogram.png")
	if err := render.SpectrogramPlot(spec, specPNG); err != nil {
		return err
	}

	logging.Info("Analysis complete", logging.Fields{
		"samples":     sig.Len(),
		"duration_s":  fmt.Sprintf("%.2f", sig.Duration()),
		"sample_rate": sig.SampleRate,
		"psd_csv":     psdCSV,
		"psd_plot":    psdPNG,
		"amp_plot":    ampPNG,
		"spec_plot":   specPNG,
	})

	return nil
}

// spectrogramConfig derives the spectrogram settings from the Welch
// configuration: quarter-length segments (at least 256 samples) and
// 75% overlap for a denser time axis.
func spectrogramConfig(cfg spectral.AnalysisConfig) spectral.AnalysisConfig {
	segLen := cfg.SegmentLength / 4
	if segLen < 256 {
		segLen = 256
	}

	cfg.SegmentLength = segLen
	cfg.Overlap = 0.75
	return cfg
}

func runRecord(args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	mode := fs.String("mode", "", "sweep mode: gimang_whsp or whsp_gimsp (required)")
	comment := fs.String("comment", "", "comment for this session")
	cliPath := fs.String("cli", "cmg-cli", "path to the device control executable")
	readerPath := fs.String("reader", "./bin/read_cdc", "path to the sensor reader executable")
	baseDir := fs.String("dir", ".", "base directory for session output")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	sweepMode := capture.SweepMode(*mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := capture.ExecRunner{}
	detector := capture.NewPortDetector(runner)

	sensorPort, err := detector.DetectSensorPort(ctx)
	if err != nil {
		return err
	}
	controllerPort, err := detector.DetectControllerPort(ctx)
	if err != nil {
		return err
	}

	controller := capture.NewController(runner, *cliPath, controllerPort)
	recorder := capture.NewRecorder(runner, *readerPath)

	snid, err := controller.SerialNumber(ctx)
	if err != nil {
		logging.Warn("Could not read device serial number", logging.Fields{"error": err.Error()})
	}

	modeDir := filepath.Join(*baseDir, string(sweepMode))
	outputDir := filepath.Join(modeDir, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	sessionLog := capture.NewSessionLog(filepath.Join(modeDir, "info.csv"))
	if err := sessionLog.Append(capture.SessionEntry{
		Time:         time.Now(),
		SerialNumber: snid,
		Title:        string(sweepMode),
		Comment:      *comment,
	}); err != nil {
		return err
	}

	cfg := capture.DefaultSweepConfig(sweepMode, outputDir)
	sweep, err := capture.NewSweep(cfg, controller, recorder, sensorPort)
	if err != nil {
		return err
	}

	logging.Info("Starting sweep", logging.Fields{
		"mode":   *mode,
		"snid":   snid,
		"output": outputDir,
	})

	return sweep.Run(ctx)
}
