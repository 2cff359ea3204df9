package wave

import (
	"errors"
	"sync"
)

var ErrMirrorClaimed = errors.New("wave: mirror already has a writer")

// Snapshot is a copy of the viewport fields other components display.
type Snapshot struct {
	StartTime   float64
	EndTime     float64
	HoverTime   float64
	HoverValid  bool
	CurrentTime float64
	Seq         uint64 // bumps on every publish
}

// Mirror is a read-mostly copy of one renderer's viewport, refreshed once
// per frame. Exactly one renderer may write to it; any number of readers,
// on any goroutine, may call Snapshot. Readers never write back.
type Mirror struct {
	mu    sync.RWMutex
	owner *Renderer
	snap  Snapshot
}

func NewMirror() *Mirror { return &Mirror{} }

// Snapshot returns the latest published values.
func (m *Mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

func (m *Mirror) claim(r *Renderer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != nil && m.owner != r {
		return ErrMirrorClaimed
	}
	m.owner = r
	return nil
}

func (m *Mirror) release(r *Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner == r {
		m.owner = nil
	}
}

func (m *Mirror) store(r *Renderer, s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != r {
		return
	}
	s.Seq = m.snap.Seq + 1
	m.snap = s
}

// Attach makes r the single writer of m. It fails if another renderer
// already writes to m. A previously attached mirror is released. Nothing is
// published until the next Frame, so a fresh mirror keeps Seq 0 until then.
func (r *Renderer) Attach(m *Mirror) error {
	if m == r.mirror {
		return nil
	}
	if m == nil {
		r.Detach()
		return nil
	}
	if err := m.claim(r); err != nil {
		return err
	}
	r.Detach()
	r.mirror = m
	return nil
}

// Detach releases the mirror so another renderer may claim it.
func (r *Renderer) Detach() {
	if r.mirror == nil {
		return
	}
	r.mirror.release(r)
	r.mirror = nil
}

func (r *Renderer) publish() {
	if r.mirror == nil {
		return
	}
	r.mirror.store(r, Snapshot{
		StartTime:   r.start,
		EndTime:     r.end,
		HoverTime:   r.hover,
		HoverValid:  r.hoverValid,
		CurrentTime: r.current,
	})
}
