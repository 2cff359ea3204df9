package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/beatmapper/internal/config"
	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
	"github.com/ingyamilmolinar/beatmapper/internal/peaks"
	"github.com/ingyamilmolinar/beatmapper/internal/raster"
	"github.com/ingyamilmolinar/beatmapper/internal/readout"
	"github.com/ingyamilmolinar/beatmapper/internal/ui"
	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

type flags struct {
	config    string
	peaks     string
	bpm       float64
	offset    float64
	logLevel  string
	logFile   string
	readout   bool
	snapshot  string
	width     int
	height    int
	panel     bool
	exitAfter time.Duration
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", "", "path to config.yaml (default: ./configs/config.yaml or ./config.yaml)")
	flag.StringVar(&f.peaks, "peaks", "", "JSON peaks file; a synthetic demo track is used when empty")
	flag.Float64Var(&f.bpm, "bpm", 0, "beats per minute for the grid (default: demo.bpm)")
	flag.Float64Var(&f.offset, "offset", 0, "grid offset in seconds")
	flag.StringVar(&f.logLevel, "log-level", "", "debug, info, error or none (default: log_level)")
	flag.StringVar(&f.logFile, "log-file", "", "write logs here instead of stderr")
	flag.BoolVar(&f.readout, "readout", false, "show a time-code readout in the terminal")
	flag.StringVar(&f.snapshot, "snapshot", "", "render one frame to this PNG and exit")
	flag.IntVar(&f.width, "width", 0, "snapshot width (default: window.width)")
	flag.IntVar(&f.height, "height", 0, "snapshot height (default: window.height)")
	flag.BoolVar(&f.panel, "panel", false, "open the tempo panel (fyne builds only)")
	flag.DurationVar(&f.exitAfter, "exit-after", 0, "close the window after this long")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	cfg, err := config.Load(f.config)
	if err != nil {
		log.Fatal(err)
	}
	level := cfg.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}

	var out io.Writer = os.Stderr
	logFile := f.logFile
	if logFile == "" && f.readout && f.snapshot == "" {
		// the readout owns the terminal
		logFile = "beatmapper.log"
	}
	if logFile != "" {
		lf, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer lf.Close()
		out = lf
	}
	logger := game_log.New(out, game_log.LevelFromString(level))

	if err := run(logger, cfg, f); err != nil {
		logger.Errorf("[MAIN] %v", err)
		os.Exit(1)
	}
}

func run(logger *game_log.Logger, cfg *config.Config, f flags) error {
	opts, err := cfg.WaveOptions()
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	bpm := cfg.Demo.BPM
	if f.bpm > 0 {
		bpm = f.bpm
	}

	buf, err := loadBuffer(logger, cfg, f, bpm)
	if err != nil {
		return err
	}

	r := wave.New(logger, opts)
	if err := buf.Apply(r); err != nil {
		return fmt.Errorf("apply samples: %w", err)
	}
	r.ReplaceTempo(bpm, f.offset)

	mirror := wave.NewMirror()
	if err := r.Attach(mirror); err != nil {
		return err
	}
	defer r.Detach()

	if f.snapshot != "" {
		w, h := f.width, f.height
		if w <= 0 {
			w = cfg.Window.Width
		}
		if h <= 0 {
			h = cfg.Window.Height
		}
		return raster.Snapshot(logger, r, w, h, palette.Background,
			raster.Marker{Playhead: palette.Playhead, Hover: palette.Hover}, f.snapshot)
	}

	g := ui.New(logger, r, ui.Options{
		Theme: ui.Theme{
			Background: palette.Background,
			Playhead:   palette.Playhead,
			Hover:      palette.Hover,
		},
		Bindings:            wave.Bindings{KeyStep: cfg.Input.KeyStep},
		WheelPixelsPerNotch: cfg.Input.WheelPixelsPerNotch,
		ExitAfter:           f.exitAfter,
	})
	defer g.Close()

	if f.readout {
		interval := time.Duration(cfg.Readout.IntervalMs) * time.Millisecond
		p := readout.NewProgram(mirror, interval, readout.NewStyles(cfg.Wave.PlayheadColor, cfg.Wave.HoverColor))
		done := make(chan struct{})
		go func() {
			defer close(done)
			if _, err := p.Run(); err != nil {
				logger.Errorf("[MAIN] readout: %v", err)
			}
		}()
		defer func() {
			p.Quit()
			<-done
		}()
	}

	if f.panel {
		ui.RunPanel(g, mirror, r.Tempo())
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.Infof("[MAIN] window %dx%d, %.3fs of audio, bpm %.2f", cfg.Window.Width, cfg.Window.Height, r.Duration(), bpm)
	return ebiten.RunGame(g)
}

func loadBuffer(logger *game_log.Logger, cfg *config.Config, f flags, bpm float64) (*peaks.Buffer, error) {
	if f.peaks != "" {
		logger.Infof("[MAIN] loading peaks from %s", f.peaks)
		return peaks.Load(f.peaks)
	}
	logger.Infof("[MAIN] no -peaks given; synthesising %.0fs demo at %.2f bpm", cfg.Demo.Duration, bpm)
	return peaks.Synth(peaks.SynthOptions{
		Duration:   cfg.Demo.Duration,
		SampleRate: cfg.Demo.SampleRate,
		ChunkSize:  cfg.Demo.ChunkSize,
		BPM:        bpm,
		Offset:     f.offset,
	})
}
