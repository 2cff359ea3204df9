package wave

import "math"

// Zoom scales the window by (1+factor) around center. Negative factors zoom
// in, positive zoom out. The window drifts toward center by at most half the
// range change, so the pivot never crosses to the other side of the middle.
// Each edge is clamped to the buffer on its own: zooming out against one
// boundary does not shrink the opposite side.
func (r *Renderer) Zoom(factor, center float64) {
	r.dirty = true
	if factor == 0 {
		return
	}
	if r.duration <= 0 || !(factor > -1) || math.IsInf(factor, 0) || math.IsNaN(center) {
		r.logger.Debugf("[WAVE] zoom ignored: factor=%f center=%f duration=%f", factor, center, r.duration)
		return
	}
	rng := r.end - r.start
	if rng <= 0 {
		return
	}
	center = clamp(center, 0, r.duration)

	newRange := rng * (1 + factor)
	dr := (newRange - rng) / 2

	oldCenter := r.start + rng/2
	pull := math.Min(math.Abs(dr), math.Abs(center-oldCenter))
	newCenter := oldCenter + pull*sign(center-oldCenter)

	r.start = math.Max(newCenter-newRange/2, 0)
	r.end = math.Min(newCenter+newRange/2, r.duration)
	r.logger.Debugf("[WAVE] zoom factor=%.4f center=%.3f -> [%.3f, %.3f]", factor, center, r.start, r.end)
}

// Shift moves the window by offset seconds. Start and end are clamped to
// [0, duration] independently, so a shift into a boundary narrows the
// window. A shift that would collapse the window to nothing is refused.
func (r *Renderer) Shift(offset float64) {
	r.dirty = true
	if offset == 0 || math.IsNaN(offset) {
		return
	}
	start := clamp(r.start+offset, 0, r.duration)
	end := clamp(r.end+offset, 0, r.duration)
	if end <= start && r.end > r.start {
		r.logger.Debugf("[WAVE] shift %.3f refused: would collapse [%.3f, %.3f]", offset, r.start, r.end)
		return
	}
	r.start, r.end = start, end
	r.logger.Debugf("[WAVE] shift %.3f -> [%.3f, %.3f]", offset, r.start, r.end)
}

// SetWindow jumps straight to [start, end], clamped to the buffer. Inverted
// or empty ranges are ignored.
func (r *Renderer) SetWindow(start, end float64) {
	start = clamp(start, 0, r.duration)
	end = clamp(end, 0, r.duration)
	if end <= start {
		return
	}
	r.start, r.end = start, end
	r.dirty = true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
