// Package ui hosts the waveform viewport in an ebiten window: it feeds the
// renderer from ebiten's frame callbacks, translates polled input into
// router calls and draws the playhead and hover overlays.
package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

// requestQueue bounds how many cross-goroutine requests can wait for the
// next Update.
const requestQueue = 64

var processStart = time.Now()

// now is the host's monotonic frame clock. Overridden in tests.
var now = func() time.Duration { return time.Since(processStart) }

// Options configures the host.
type Options struct {
	Theme               Theme
	Bindings            wave.Bindings
	WheelPixelsPerNotch float64
	// ExitAfter ends the run loop once the clock passes it. Zero runs
	// until the window closes.
	ExitAfter time.Duration
}

type Game struct {
	/* subsystems */
	logger *game_log.Logger
	r      *wave.Renderer
	router *wave.Router
	loop   *wave.Loop
	sched  *frameScheduler

	/* drawing */
	surf   *imageSurface
	canvas *ebiten.Image
	theme  Theme

	/* input */
	input    pointerState
	opts     Options
	requests chan func(*wave.Renderer)

	/* misc */
	frame      int64
	winW, winH int
}

/* ───────────────────── constructor & layout ─────────────────── */

// New binds r to an ebiten frame scheduler and starts its render loop. The
// renderer must not be driven from anywhere else afterwards; other
// goroutines talk to it through Post.
func New(logger *game_log.Logger, r *wave.Renderer, opts Options) *Game {
	if logger == nil {
		logger = game_log.Discard()
	}
	if opts.WheelPixelsPerNotch <= 0 {
		opts.WheelPixelsPerNotch = DefaultWheelPixelsPerNotch
	}
	opts.Theme = opts.Theme.withDefaults()
	g := &Game{
		logger:   logger,
		r:        r,
		router:   wave.NewRouter(r, opts.Bindings),
		sched:    &frameScheduler{},
		theme:    opts.Theme,
		opts:     opts,
		requests: make(chan func(*wave.Renderer), requestQueue),
	}
	g.surf = &imageSurface{bg: g.theme.Background}
	g.loop = wave.NewLoop(r, g.sched, g.surf)
	g.loop.Start()
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.logger.Infof("[GAME] Layout: %dx%d -> %dx%d", g.winW, g.winH, w, h)
	}
	g.winW, g.winH = w, h
	return w, h
}

// Close stops the render loop. The game must not be run afterwards.
func (g *Game) Close() {
	g.loop.Stop()
	if g.canvas != nil {
		g.canvas.Deallocate()
		g.canvas = nil
		g.surf.img = nil
	}
}

/* ─────────────── cross-goroutine requests ─────────────── */

// Post queues fn to run against the renderer at the start of the next
// Update. It never blocks; a full queue drops the request and reports false.
func (g *Game) Post(fn func(*wave.Renderer)) bool {
	select {
	case g.requests <- fn:
		return true
	default:
		g.logger.Warnf("[GAME] request queue full; dropping request")
		return false
	}
}

func (g *Game) SetTempo(bpm, offset float64) bool {
	return g.Post(func(r *wave.Renderer) { r.ReplaceTempo(bpm, offset) })
}

// Seek moves the playhead.
func (g *Game) Seek(t float64) bool {
	return g.Post(func(r *wave.Renderer) { r.SetCurrentTime(t) })
}

func (g *Game) SetWindow(start, end float64) bool {
	return g.Post(func(r *wave.Renderer) { r.SetWindow(start, end) })
}

func (g *Game) drainRequests() {
	for {
		select {
		case fn := <-g.requests:
			fn(g.r)
		default:
			return
		}
	}
}

/* ─────────────── Update ─────────────── */

func (g *Game) Update() error {
	g.frame++
	g.drainRequests()
	g.input.poll(g.router, g.winW, g.winH, g.opts.WheelPixelsPerNotch)
	if g.opts.ExitAfter > 0 && now() >= g.opts.ExitAfter {
		g.logger.Infof("[GAME] exit after %s (%d updates, %d frames)", g.opts.ExitAfter, g.frame, g.r.Frames())
		return ebiten.Termination
	}
	return nil
}

/* ─────────────── Draw ─────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	g.ensureCanvas(b.Dx(), b.Dy())
	g.sched.dispatch(now())
	screen.DrawImage(g.canvas, nil)
	g.drawOverlay(screen)
}

// ensureCanvas keeps the offscreen waveform image the size of the screen.
// The renderer repaints into it only when dirty; the overlay is redrawn on
// the screen every frame.
func (g *Game) ensureCanvas(w, h int) {
	if g.canvas != nil && g.surf.w == w && g.surf.h == h {
		return
	}
	if g.canvas != nil {
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(max(w, 1), max(h, 1))
	g.surf.img, g.surf.w, g.surf.h = g.canvas, w, h
	g.logger.Debugf("[GAME] canvas %dx%d", w, h)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	h := float32(g.surf.h)
	lw := float32(g.r.Options().LineWidth)
	if x, ok := g.r.HoverX(); ok {
		strokeLine(screen, float32(x), 0, float32(x), h, lw/2, g.theme.Hover)
	}
	if x, ok := g.r.PlayheadX(); ok {
		strokeLine(screen, float32(x), 0, float32(x), h, lw, g.theme.Playhead)
	}
	for i, line := range g.statusLines() {
		ebitenutil.DebugPrintAt(screen, line, 4, 4+i*14)
	}
}

func (g *Game) statusLines() []string {
	start, end := g.r.Window()
	lines := []string{
		fmt.Sprintf("%s  [%s - %s]", wave.FormatTime(g.r.CurrentTime()), wave.FormatTime(start), wave.FormatTime(end)),
	}
	if t, ok := g.r.Hover(); ok {
		lines = append(lines, "hover "+wave.FormatTime(t))
	}
	return lines
}
