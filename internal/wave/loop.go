package wave

import "time"

// FrameFunc receives the host's monotonic frame timestamp.
type FrameFunc func(now time.Duration)

// FrameHandle is a pending frame request.
type FrameHandle interface {
	Cancel()
}

// Scheduler delivers one callback per display refresh. Implementations run
// the callback on the same thread that dispatches input.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
}

// Loop keeps a renderer painting onto a surface, one frame per scheduler
// callback, until Stop.
type Loop struct {
	r       *Renderer
	sched   Scheduler
	surf    Surface
	handle  FrameHandle
	running bool
}

func NewLoop(r *Renderer, sched Scheduler, surf Surface) *Loop {
	return &Loop{r: r, sched: sched, surf: surf}
}

// Start requests the first frame. Calling Start on a running loop does
// nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.r.logger.Debugf("[WAVE] loop started")
	l.handle = l.sched.RequestFrame(l.tick)
}

// Stop cancels the pending frame. A tick already being dispatched finishes
// but does not schedule another.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.handle != nil {
		l.handle.Cancel()
		l.handle = nil
	}
	l.r.logger.Debugf("[WAVE] loop stopped after %d frames", l.r.frames)
}

func (l *Loop) Running() bool { return l.running }

func (l *Loop) tick(now time.Duration) {
	if !l.running {
		return
	}
	l.r.Frame(now, l.surf)
	if !l.running {
		return
	}
	l.handle = l.sched.RequestFrame(l.tick)
}
