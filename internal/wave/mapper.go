package wave

import "math"

// Point is a surface-space coordinate in pixels.
type Point struct{ X, Y float64 }

// TimeToChunk maps a time to the chunk index covering it. Times outside
// [0, duration] yield indices outside the buffer; chunkAt treats those as
// "no sample". Returns -1 for NaN and 0 when the buffer is empty.
func (r *Renderer) TimeToChunk(t float64) int {
	if r.duration <= 0 {
		return 0
	}
	f := math.Floor(t / r.duration * float64(len(r.buf.Chunks)))
	switch {
	case math.IsNaN(f):
		return -1
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// ChunkToTime returns the start time of chunk c.
func (r *Renderer) ChunkToTime(c int) float64 {
	n := len(r.buf.Chunks)
	if n == 0 {
		return 0
	}
	return float64(c) / float64(n) * r.duration
}

// PointToTime maps a surface x coordinate to a time inside the window.
// Callers must check Drawable first; a zero width divides by zero.
func (r *Renderer) PointToTime(x float64) float64 {
	return r.start + x/float64(r.width)*(r.end-r.start)
}

// TimeToPoint maps a time to a surface x coordinate. Callers must check
// Drawable first; an empty window divides by zero.
func (r *Renderer) TimeToPoint(t float64) float64 {
	return (t - r.start) / (r.end - r.start) * float64(r.width)
}

// Drawable reports whether the mapping functions are well defined.
func (r *Renderer) Drawable() bool {
	return r.width > 0 && r.end > r.start
}

// PlayheadX is the surface x of the playhead, computed on demand.
func (r *Renderer) PlayheadX() (float64, bool) {
	if !r.Drawable() {
		return 0, false
	}
	return r.TimeToPoint(r.current), true
}

// HoverX is the surface x of the hover cursor while the pointer is over the
// surface.
func (r *Renderer) HoverX() (float64, bool) {
	if !r.hoverValid || !r.Drawable() {
		return 0, false
	}
	return r.TimeToPoint(r.hover), true
}
