// Command astrolabe is an accelerated solar system orrery for the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/config"
	"github.com/litescript/ls-astrolabe/internal/ephem"
	"github.com/litescript/ls-astrolabe/internal/logging"
	"github.com/litescript/ls-astrolabe/internal/metrics"
	"github.com/litescript/ls-astrolabe/internal/sim"
	"github.com/litescript/ls-astrolabe/internal/ui"
	"github.com/litescript/ls-astrolabe/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	ticks        int
)

func main() {
	configPath := flag.String("config", "", "Config file (TOML, YAML or JSON)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file (TUI mode discards logs otherwise)")
	date := flag.String("date", "", "Start date, YYYY-MM-DD, RFC3339 or JD<days> (default now)")
	accel := flag.Int64("accel", 0, "Simulated seconds per real second")
	quantize := flag.Bool("quantize", false, "Drop sub-second simulated time on every tick")
	ephemMode := flag.String("ephem", "", "Ephemeris source (mean, vsop87, auto)")
	vsopDir := flag.String("vsop87-dir", "", "Directory holding the VSOP87B.* files")
	view := flag.String("view", "near", "Initial view (near, far)")
	labels := flag.String("labels", "", "Comma-separated bodies to label (default every planet)")
	fps := flag.Int("fps", 0, "Frames per second")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.IntVar(&ticks, "ticks", 0, "Headless: run this many frames before output")
	flag.Parse()

	if *showVersion {
		fmt.Printf("astrolabe %s\n", version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "accel":
			cfg.Accel = *accel
		case "quantize":
			cfg.Quantize = *quantize
		case "ephem":
			cfg.EphemMode = *ephemMode
		case "vsop87-dir":
			cfg.VSOP87Dir = *vsopDir
		case "fps":
			cfg.FPS = *fps
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "labels":
			cfg.LabelBodies = nil
			if *labels != "" {
				cfg.LabelBodies = strings.Split(*labels, ",")
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	initialView, ok := camera.ParseMode(*view)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown view %q (want near or far)\n", *view)
		os.Exit(2)
	}

	start := time.Now().UTC()
	if *date != "" {
		start, err = sim.ParseDate(*date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || snapshotPath != "" || ticks > 0 || !isTTY

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !headless {
		logger.SetOutput(io.Discard)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	engine, err := ephem.NewEngineForMode(cfg.Ephem(), cfg.VSOP87Dir, logger)
	if err != nil {
		logger.Error("Ephemeris setup failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var recorder sim.Recorder
	if cfg.MetricsAddr != "" {
		collector := metrics.NewCollector(prometheus.NewRegistry())
		recorder = collector
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
	}

	labelIdx, err := sim.LabelIndices(cfg.LabelBodies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	offset := cfg.LabelOffset()
	s, err := sim.New(sim.Options{
		Start:       start,
		Clock:       sim.Clock{Rate: cfg.Accel, Quantize: cfg.Quantize},
		Distances:   cfg.Distances(),
		Lens:        cfg.Lens(),
		LabelOffset: &offset,
		Labels:      labelIdx,
		Engine:      engine,
		Logger:      logger,
		Recorder:    recorder,
	})
	if err != nil {
		logger.Error("Simulation setup failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if initialView == camera.Far {
		s.Tick(0, camera.ActivateFar)
	}

	if headless {
		if err := runHeadless(ctx, s, cfg.FPS, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create Bubble Tea program
	p := tea.NewProgram(ui.New(s, cfg.FPS, logger), tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless advances the simulation by whole frames of 1/fps real
// seconds, paced to wall-clock time, then writes the requested outputs.
// With no output flag the summary table is printed.
func runHeadless(ctx context.Context, s *sim.Simulation, fps int, logger *logging.Logger) error {
	frame := time.Second / time.Duration(fps)
	limiter := rate.NewLimiter(rate.Limit(fps), 1)

	for i := 0; i < ticks; i++ {
		if err := limiter.Wait(ctx); err != nil {
			logger.Warn("Stopped after %d of %d frames: %v", i, ticks, err)
			break
		}
		s.Tick(frame)
	}
	logger.Debug("Ran %d frames, shown date %s", ticks, s.Date().Format())

	snap := s.Snapshot()

	if snapshotPath != "" {
		if snapshotPath == "-" {
			if err := snap.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := snap.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if summaryMode || snapshotPath == "" {
		sim.WriteSummaryTable(os.Stdout, snap)
	}
	return nil
}
