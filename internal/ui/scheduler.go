package ui

import (
	"time"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

// frameScheduler implements wave.Scheduler on top of ebiten's Draw: each
// Draw dispatches the one pending request, so frames run at the display
// refresh rate on the ebiten thread.
type frameScheduler struct {
	next wave.FrameFunc
	id   uint64
}

type frameHandle struct {
	s  *frameScheduler
	id uint64
}

func (h frameHandle) Cancel() {
	if h.s.id == h.id {
		h.s.next = nil
	}
}

func (s *frameScheduler) RequestFrame(fn wave.FrameFunc) wave.FrameHandle {
	s.id++
	s.next = fn
	return frameHandle{s: s, id: s.id}
}

// dispatch runs the pending request, if any. A request made from inside the
// callback waits for the next dispatch.
func (s *frameScheduler) dispatch(now time.Duration) bool {
	fn := s.next
	if fn == nil {
		return false
	}
	s.next = nil
	fn(now)
	return true
}

func (s *frameScheduler) pending() bool { return s.next != nil }
