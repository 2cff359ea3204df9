package wave

import (
	"testing"
	"time"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
)

func TestWheelZoomsAndPansByDelta(t *testing.T) {
	r := newLoaded(t)
	surf := &recordingSurface{w: 600, h: 100}
	r.Frame(0, surf)
	r.Frame(100*time.Millisecond, surf)
	if !near(r.Delta(), 0.1) {
		t.Fatalf("delta=%f want 0.1", r.Delta())
	}
	in := NewRouter(r, Bindings{})
	in.Wheel(300, 10, -1)
	if s, e := r.Window(); !near(s, 3.5) || !near(e, 48.5) {
		t.Fatalf("window=[%f,%f] want [3.5,48.5]", s, e)
	}
}

func TestWheelUsesSignOnly(t *testing.T) {
	r := newLoaded(t)
	surf := &recordingSurface{w: 600, h: 100}
	r.Frame(0, surf)
	r.Frame(100*time.Millisecond, surf)
	in := NewRouter(r, Bindings{})
	in.Wheel(300, 0, -120)
	if s, e := r.Window(); !near(s, 2.5) || !near(e, 47.5) {
		t.Fatalf("window=[%f,%f] want [2.5,47.5]", s, e)
	}
}

func TestWheelOnFirstFrameDoesNothing(t *testing.T) {
	r := newLoaded(t)
	in := NewRouter(r, Bindings{})
	in.Wheel(300, 5, -1)
	if s, e := r.Window(); s != 0 || e != 50 {
		t.Fatalf("window=[%f,%f] want [0,50]", s, e)
	}
}

func TestPointerMoveTracksHover(t *testing.T) {
	r := newLoaded(t)
	in := NewRouter(r, Bindings{})
	in.PointerMove(150, 0, false)
	h, ok := r.Hover()
	if !ok || !near(h, 12.5) {
		t.Fatalf("hover=%f,%v want 12.5,true", h, ok)
	}
	if x, ok := r.HoverX(); !ok || !near(x, 150) {
		t.Fatalf("HoverX=%f,%v want 150,true", x, ok)
	}
	in.PointerLeave()
	if _, ok := r.Hover(); ok {
		t.Fatalf("hover should be invalid after leave")
	}
}

func TestPointerDragPans(t *testing.T) {
	r := newLoaded(t)
	r.SetWindow(10, 30)
	in := NewRouter(r, Bindings{})
	in.PointerMove(300, 60, true)
	if s, e := r.Window(); !near(s, 8) || !near(e, 28) {
		t.Fatalf("window=[%f,%f] want [8,28]", s, e)
	}
	in.PointerMove(300, 60, false)
	if s, e := r.Window(); !near(s, 8) || !near(e, 28) {
		t.Fatalf("move without pan changed window to [%f,%f]", s, e)
	}
}

func TestClickMovesPlayhead(t *testing.T) {
	r := newLoaded(t)
	r.Frame(0, &recordingSurface{w: 600, h: 100})
	in := NewRouter(r, Bindings{})
	in.Click(300)
	if !near(r.CurrentTime(), 25) {
		t.Fatalf("current=%f want 25", r.CurrentTime())
	}
	if !r.Dirty() {
		t.Fatalf("click should mark dirty")
	}
}

func TestKeyUpPans(t *testing.T) {
	r := newLoaded(t)
	r.SetWindow(10, 20)
	in := NewRouter(r, Bindings{KeyStep: 2})
	in.KeyUp(KeyRight)
	if s, e := r.Window(); s != 12 || e != 22 {
		t.Fatalf("window=[%f,%f] want [12,22]", s, e)
	}
	in.KeyUp(KeyLeft)
	in.KeyUp(KeyLeft)
	if s, e := r.Window(); s != 8 || e != 18 {
		t.Fatalf("window=[%f,%f] want [8,18]", s, e)
	}
	in.KeyUp(Key(99))
	if s, e := r.Window(); s != 8 || e != 18 {
		t.Fatalf("unknown key moved window to [%f,%f]", s, e)
	}
}

func TestInputIgnoredWhenNotDrawable(t *testing.T) {
	r := New(game_log.Discard(), Options{})
	in := NewRouter(r, Bindings{})
	in.Click(10)
	in.PointerMove(10, 5, true)
	if r.CurrentTime() != 0 {
		t.Fatalf("click on empty renderer moved playhead")
	}
	if _, ok := r.Hover(); ok {
		t.Fatalf("hover valid on empty renderer")
	}
}
