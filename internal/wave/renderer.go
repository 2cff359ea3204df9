// Package wave implements the waveform viewport: a pre-reduced amplitude
// buffer, a visible time window with pan/zoom navigation, pixel/time mapping,
// input routing and a dirty-flag gated render step that paints onto any
// Surface.
//
// Everything in this package runs on the host's frame thread. Only Mirror is
// safe to read from other goroutines.
package wave

import (
	"image/color"
	"time"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
)

const (
	DefaultPoints     = 600 // horizontal samples in the waveform polyline
	DefaultGridMinGap = 10  // px; beat lines closer than this are suppressed
	DefaultLineWidth  = 2
)

var (
	DefaultGridColor = color.RGBA{0x3d, 0x33, 0x31, 0xff}
	DefaultWaveColor = color.RGBA{0x5d, 0x4e, 0x4b, 0xff}
)

// Options tunes painting. Zero fields fall back to the defaults above.
type Options struct {
	Points     int
	GridMinGap float64
	LineWidth  float64
	GridColor  color.Color
	WaveColor  color.Color
}

func DefaultOptions() Options {
	return Options{
		Points:     DefaultPoints,
		GridMinGap: DefaultGridMinGap,
		LineWidth:  DefaultLineWidth,
		GridColor:  DefaultGridColor,
		WaveColor:  DefaultWaveColor,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Points <= 0 {
		o.Points = d.Points
	}
	if o.GridMinGap <= 0 {
		o.GridMinGap = d.GridMinGap
	}
	if o.LineWidth <= 0 {
		o.LineWidth = d.LineWidth
	}
	if o.GridColor == nil {
		o.GridColor = d.GridColor
	}
	if o.WaveColor == nil {
		o.WaveColor = d.WaveColor
	}
	return o
}

// Renderer owns the sample buffer, the viewport window, the tempo grid and
// the dirty flag. The drawing surface is borrowed per frame.
type Renderer struct {
	logger *game_log.Logger
	opts   Options

	/* sample store */
	buf      SampleBuffer
	duration float64 // seconds
	tempo    Tempo

	/* viewport */
	start, end float64
	current    float64 // playhead
	hover      float64
	hoverValid bool

	/* render target, resynced every frame */
	width, height int

	/* frame pacing */
	dirty   bool
	started bool
	last    time.Duration
	delta   float64 // seconds since previous frame

	mirror *Mirror
	pts    []Point // polyline scratch, reused between paints
	frames uint64
}

// New returns a renderer with an empty buffer. It starts dirty so the first
// frame always paints.
func New(logger *game_log.Logger, opts Options) *Renderer {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Renderer{
		logger: logger,
		opts:   opts.withDefaults(),
		tempo:  Tempo{BPM: 1},
		dirty:  true,
	}
}

func (r *Renderer) Options() Options { return r.opts }

// Window returns the visible time range in seconds.
func (r *Renderer) Window() (start, end float64) { return r.start, r.end }

// Duration is the length of the loaded buffer in seconds.
func (r *Renderer) Duration() float64 { return r.duration }

func (r *Renderer) CurrentTime() float64 { return r.current }

// SetCurrentTime moves the playhead. The playhead is not clamped to the
// window; it may sit anywhere, including off-screen.
func (r *Renderer) SetCurrentTime(t float64) {
	r.current = t
	r.dirty = true
}

// Hover returns the last pointer-derived time and whether the pointer is
// still over the surface.
func (r *Renderer) Hover() (float64, bool) { return r.hover, r.hoverValid }

func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// Resize records the render target dimensions. A change marks the renderer
// dirty; negative sizes are treated as zero.
func (r *Renderer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == r.width && h == r.height {
		return
	}
	r.logger.Debugf("[WAVE] resize %dx%d -> %dx%d", r.width, r.height, w, h)
	r.width, r.height = w, h
	r.dirty = true
}

// Dirty reports whether the next frame will repaint.
func (r *Renderer) Dirty() bool { return r.dirty }

// Invalidate forces a repaint on the next frame.
func (r *Renderer) Invalidate() { r.dirty = true }

// Delta is the time between the two most recent frames, in seconds. Input
// handlers use it as a step size so pan/zoom speed does not depend on the
// frame rate.
func (r *Renderer) Delta() float64 { return r.delta }

// Frames counts frames processed so far, painted or not.
func (r *Renderer) Frames() uint64 { return r.frames }
