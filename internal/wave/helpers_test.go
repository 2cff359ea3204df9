package wave

import (
	"image/color"
	"math"
	"testing"
	"time"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

// recordingSurface captures draw calls instead of rasterising them.
type recordingSurface struct {
	w, h      int
	clears    int
	lines     [][4]float64
	polylines [][]Point
	onClear   func()
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Clear() {
	s.clears++
	if s.onClear != nil {
		s.onClear()
	}
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, _ float64, _ color.Color) {
	s.lines = append(s.lines, [4]float64{x0, y0, x1, y1})
}

func (s *recordingSurface) StrokePolyline(pts []Point, _ float64, _ color.Color) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	s.polylines = append(s.polylines, cp)
}

func (s *recordingSurface) calls() int {
	return s.clears + len(s.lines) + len(s.polylines)
}

// manualScheduler hands out frames only when the test fires them.
type manualScheduler struct {
	pending  FrameFunc
	id       int
	requests int
	cancels  int
}

type manualHandle struct {
	s  *manualScheduler
	id int
}

func (h manualHandle) Cancel() {
	h.s.cancels++
	if h.s.id == h.id {
		h.s.pending = nil
	}
}

func (s *manualScheduler) RequestFrame(fn FrameFunc) FrameHandle {
	s.id++
	s.requests++
	s.pending = fn
	return manualHandle{s: s, id: s.id}
}

func (s *manualScheduler) fire(now time.Duration) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}

// newLoaded returns a renderer holding 500 chunks of 100 samples at 1kHz
// (50s), sized to 600x100.
func newLoaded(t *testing.T) *Renderer {
	t.Helper()
	r := New(game_log.Discard(), Options{})
	chunks := make([]float32, 500)
	for i := range chunks {
		chunks[i] = 0.5
	}
	if err := r.ReplaceSamples(1000, 100, chunks); err != nil {
		t.Fatalf("ReplaceSamples: %v", err)
	}
	r.Resize(600, 100)
	return r
}
