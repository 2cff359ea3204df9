// Package config loads beatmapper settings from a yaml file, BEATMAPPER_*
// environment variables and built-in defaults, in that order of precedence
// (env first).
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

type Config struct {
	LogLevel string `mapstructure:"log_level"`

	Window struct {
		Width  int    `mapstructure:"width"`
		Height int    `mapstructure:"height"`
		Title  string `mapstructure:"title"`
	} `mapstructure:"window"`

	Wave struct {
		Points          int     `mapstructure:"points"`
		GridMinGap      float64 `mapstructure:"grid_min_gap"`
		LineWidth       float64 `mapstructure:"line_width"`
		GridColor       string  `mapstructure:"grid_color"`
		WaveColor       string  `mapstructure:"wave_color"`
		PlayheadColor   string  `mapstructure:"playhead_color"`
		HoverColor      string  `mapstructure:"hover_color"`
		BackgroundColor string  `mapstructure:"background_color"`
	} `mapstructure:"wave"`

	Input struct {
		KeyStep             float64 `mapstructure:"key_step"`
		WheelPixelsPerNotch float64 `mapstructure:"wheel_pixels_per_notch"`
	} `mapstructure:"input"`

	Readout struct {
		IntervalMs int `mapstructure:"interval_ms"`
	} `mapstructure:"readout"`

	Demo struct {
		Duration   float64 `mapstructure:"duration"`
		SampleRate float64 `mapstructure:"sample_rate"`
		ChunkSize  int     `mapstructure:"chunk_size"`
		BPM        float64 `mapstructure:"bpm"`
	} `mapstructure:"demo"`
}

// Palette holds the colours the host draws on top of the painted waveform.
type Palette struct {
	Playhead   color.RGBA
	Hover      color.RGBA
	Background color.RGBA
}

// Load reads configPath when given, otherwise looks for config.yaml in
// ./configs and the working directory. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BEATMAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in settings without touching the filesystem or
// the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 320)
	v.SetDefault("window.title", "beatmapper")

	v.SetDefault("wave.points", wave.DefaultPoints)
	v.SetDefault("wave.grid_min_gap", wave.DefaultGridMinGap)
	v.SetDefault("wave.line_width", wave.DefaultLineWidth)
	v.SetDefault("wave.grid_color", "#3d3331")
	v.SetDefault("wave.wave_color", "#5d4e4b")
	v.SetDefault("wave.playhead_color", "#e8b04a")
	v.SetDefault("wave.hover_color", "#8a7a76")
	v.SetDefault("wave.background_color", "#1e1a19")

	v.SetDefault("input.key_step", wave.DefaultKeyStep)
	v.SetDefault("input.wheel_pixels_per_notch", 100)

	v.SetDefault("readout.interval_ms", 100)

	v.SetDefault("demo.duration", 30)
	v.SetDefault("demo.sample_rate", 44100)
	v.SetDefault("demo.chunk_size", 512)
	v.SetDefault("demo.bpm", 120)
}

// WaveOptions converts the wave section into renderer options.
func (c *Config) WaveOptions() (wave.Options, error) {
	grid, err := ParseColor(c.Wave.GridColor)
	if err != nil {
		return wave.Options{}, fmt.Errorf("wave.grid_color: %w", err)
	}
	wv, err := ParseColor(c.Wave.WaveColor)
	if err != nil {
		return wave.Options{}, fmt.Errorf("wave.wave_color: %w", err)
	}
	return wave.Options{
		Points:     c.Wave.Points,
		GridMinGap: c.Wave.GridMinGap,
		LineWidth:  c.Wave.LineWidth,
		GridColor:  grid,
		WaveColor:  wv,
	}, nil
}

func (c *Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Playhead, err = ParseColor(c.Wave.PlayheadColor); err != nil {
		return p, fmt.Errorf("wave.playhead_color: %w", err)
	}
	if p.Hover, err = ParseColor(c.Wave.HoverColor); err != nil {
		return p, fmt.Errorf("wave.hover_color: %w", err)
	}
	if p.Background, err = ParseColor(c.Wave.BackgroundColor); err != nil {
		return p, fmt.Errorf("wave.background_color: %w", err)
	}
	return p, nil
}

// ParseColor accepts #rgb and #rrggbb hex strings. The result is opaque.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}
