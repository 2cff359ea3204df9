package ui

import (
	"errors"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

var testLogger = game_log.New(io.Discard, game_log.LevelError)

const eps = 1e-9

func near(a, b float64) bool {
	d := a - b
	return d <= eps && d >= -eps
}

// fakeInput is the polled input state for one Update.
type fakeInput struct {
	x, y         int
	left, middle bool
	keys         map[ebiten.Key]bool
	wx, wy       float64
}

func (f *fakeInput) install(t *testing.T) {
	t.Helper()
	restore := SetInputForTest(
		func() (int, int) { return f.x, f.y },
		func(b ebiten.MouseButton) bool {
			switch b {
			case ebiten.MouseButtonLeft:
				return f.left
			case ebiten.MouseButtonMiddle:
				return f.middle
			}
			return false
		},
		func(k ebiten.Key) bool { return f.keys[k] },
		func() (float64, float64) { return f.wx, f.wy },
	)
	t.Cleanup(restore)
}

// newTestGame returns a game over a 50s buffer that has already run two
// frames 100ms apart on a 600x100 canvas.
func newTestGame(t *testing.T) (*Game, *fakeInput) {
	t.Helper()
	r := wave.New(testLogger, wave.Options{})
	chunks := make([]float32, 500)
	if err := r.ReplaceSamples(1000, 100, chunks); err != nil {
		t.Fatal(err)
	}
	g := New(testLogger, r, Options{})
	t.Cleanup(g.Close)
	g.Layout(600, 100)
	g.surf.w, g.surf.h = 600, 100
	g.sched.dispatch(0)
	g.sched.dispatch(100 * time.Millisecond)

	in := &fakeInput{x: -1, y: -1, keys: map[ebiten.Key]bool{}}
	in.install(t)
	return g, in
}

func TestNewStartsLoop(t *testing.T) {
	r := wave.New(testLogger, wave.Options{})
	g := New(testLogger, r, Options{})
	defer g.Close()
	if !g.sched.pending() {
		t.Fatalf("expected a pending frame after New")
	}
	g.Close()
	if g.sched.pending() {
		t.Fatalf("Close left a frame pending")
	}
}

func TestHoverAndLeave(t *testing.T) {
	g, in := newTestGame(t)
	in.x, in.y = 150, 50
	g.Update()
	if h, ok := g.r.Hover(); !ok || !near(h, 12.5) {
		t.Fatalf("hover=%f,%v want 12.5,true", h, ok)
	}
	in.x = 700
	g.Update()
	if _, ok := g.r.Hover(); ok {
		t.Fatalf("hover still valid after leaving the canvas")
	}
}

func TestClickOnRelease(t *testing.T) {
	g, in := newTestGame(t)
	in.x, in.y, in.left = 300, 50, true
	g.Update()
	if g.r.CurrentTime() != 0 {
		t.Fatalf("playhead moved on press")
	}
	in.left = false
	g.Update()
	if !near(g.r.CurrentTime(), 25) {
		t.Fatalf("current=%f want 25", g.r.CurrentTime())
	}
}

func TestDragIsNotClick(t *testing.T) {
	g, in := newTestGame(t)
	in.x, in.y, in.left = 300, 50, true
	g.Update()
	in.x = 320
	g.Update()
	in.left = false
	g.Update()
	if g.r.CurrentTime() != 0 {
		t.Fatalf("drag registered as click: current=%f", g.r.CurrentTime())
	}
}

func TestMiddleDragPans(t *testing.T) {
	g, in := newTestGame(t)
	g.r.SetWindow(10, 30)
	in.x, in.y = 300, 50
	g.Update()
	in.x, in.middle = 360, true
	g.Update()
	if s, e := g.r.Window(); !near(s, 8) || !near(e, 28) {
		t.Fatalf("window=[%f,%f] want [8,28]", s, e)
	}
}

func TestWheelUpZoomsIn(t *testing.T) {
	g, in := newTestGame(t)
	in.x, in.y, in.wy = 300, 50, 1
	g.Update()
	if s, e := g.r.Window(); !near(s, 2.5) || !near(e, 47.5) {
		t.Fatalf("window=[%f,%f] want [2.5,47.5]", s, e)
	}
}

func TestWheelOutsideIgnored(t *testing.T) {
	g, in := newTestGame(t)
	in.x, in.y, in.wy = 300, 150, 1
	g.Update()
	if s, e := g.r.Window(); s != 0 || e != 50 {
		t.Fatalf("window=[%f,%f] want [0,50]", s, e)
	}
}

func TestArrowKeyRelease(t *testing.T) {
	g, in := newTestGame(t)
	g.r.SetWindow(10, 20)
	in.keys[ebiten.KeyArrowRight] = true
	g.Update()
	if s, _ := g.r.Window(); s != 10 {
		t.Fatalf("pan on key press, want on release")
	}
	in.keys[ebiten.KeyArrowRight] = false
	g.Update()
	if s, e := g.r.Window(); s != 11 || e != 21 {
		t.Fatalf("window=[%f,%f] want [11,21]", s, e)
	}
}

func TestPostAppliedOnUpdate(t *testing.T) {
	g, _ := newTestGame(t)
	if !g.SetTempo(90, 0.5) || !g.Seek(12) || !g.SetWindow(5, 15) {
		t.Fatalf("post rejected")
	}
	if g.r.Tempo().BPM == 90 {
		t.Fatalf("request applied before Update")
	}
	g.Update()
	if tp := g.r.Tempo(); tp.BPM != 90 || tp.Offset != 0.5 {
		t.Fatalf("tempo=%+v want {90 0.5}", tp)
	}
	if g.r.CurrentTime() != 12 {
		t.Fatalf("current=%f want 12", g.r.CurrentTime())
	}
	if s, e := g.r.Window(); s != 5 || e != 15 {
		t.Fatalf("window=[%f,%f] want [5,15]", s, e)
	}
}

func TestPostNeverBlocks(t *testing.T) {
	g, _ := newTestGame(t)
	done := make(chan int)
	go func() {
		accepted := 0
		for i := 0; i < requestQueue*2; i++ {
			if g.Seek(float64(i)) {
				accepted++
			}
		}
		done <- accepted
	}()
	select {
	case n := <-done:
		if n != requestQueue {
			t.Fatalf("accepted=%d want %d", n, requestQueue)
		}
	case <-time.After(time.Second):
		t.Fatalf("Post blocked on a full queue")
	}
}

func TestExitAfter(t *testing.T) {
	orig := now
	defer func() { now = orig }()
	clock := time.Duration(0)
	now = func() time.Duration { return clock }

	r := wave.New(testLogger, wave.Options{})
	g := New(testLogger, r, Options{ExitAfter: time.Second})
	defer g.Close()
	(&fakeInput{x: -1, y: -1}).install(t)
	if err := g.Update(); err != nil {
		t.Fatalf("early exit: %v", err)
	}
	clock = 2 * time.Second
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err=%v want ebiten.Termination", err)
	}
}

func TestFramePaintsThroughSurface(t *testing.T) {
	fills, lines := 0, 0
	origFill, origLine := fillImage, strokeLine
	fillImage = func(*ebiten.Image, color.Color) { fills++ }
	strokeLine = func(_ *ebiten.Image, _, _, _, _, _ float32, _ color.Color) { lines++ }
	defer func() { fillImage, strokeLine = origFill, origLine }()

	g, _ := newTestGame(t)
	g.surf.img = new(ebiten.Image)
	g.r.ReplaceTempo(120, 0)
	g.sched.dispatch(200 * time.Millisecond)
	if fills != 1 {
		t.Fatalf("fills=%d want 1", fills)
	}
	if lines == 0 {
		t.Fatalf("no lines stroked")
	}
	before := lines
	g.sched.dispatch(216 * time.Millisecond)
	if fills != 1 || lines != before {
		t.Fatalf("clean frame repainted: fills=%d lines=%d", fills, lines-before)
	}
}

func TestStatusLines(t *testing.T) {
	g, in := newTestGame(t)
	g.r.SetCurrentTime(61.5)
	lines := g.statusLines()
	if len(lines) != 1 || lines[0] != "01:01.500  [00:00.000 - 00:50.000]" {
		t.Fatalf("status=%q", lines)
	}
	in.x, in.y = 150, 50
	g.Update()
	lines = g.statusLines()
	if len(lines) != 2 || lines[1] != "hover 00:12.500" {
		t.Fatalf("status=%q", lines)
	}
}
