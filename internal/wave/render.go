package wave

import (
	"image/color"
	"math"
	"time"
)

// Surface is the drawing target. It is owned by the host and may change
// size between frames.
type Surface interface {
	Size() (w, h int)
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	// StrokePolyline draws one connected line through pts.
	StrokePolyline(pts []Point, width float64, c color.Color)
}

// Frame runs one tick of the render loop at host time now: it updates the
// frame delta, resyncs the surface size, repaints when dirty and publishes
// the viewport to the attached Mirror. It reports whether it painted.
func (r *Renderer) Frame(now time.Duration, surf Surface) bool {
	r.advance(now)
	r.Resize(surf.Size())

	painted := false
	if r.dirty {
		r.paint(surf)
		r.dirty = false
		painted = true
	}
	r.frames++
	r.publish()
	return painted
}

// advance is the pure timing half of a frame: previous timestamp in, delta
// and new timestamp out. The first frame has a zero delta.
func (r *Renderer) advance(now time.Duration) {
	if r.started && now > r.last {
		r.delta = (now - r.last).Seconds()
	} else {
		r.delta = 0
	}
	r.started = true
	r.last = now
}

func (r *Renderer) paint(s Surface) {
	s.Clear()
	if !r.Drawable() {
		r.logger.Debugf("[WAVE] paint: nothing drawable (w=%d window=[%.3f, %.3f])", r.width, r.start, r.end)
		return
	}
	lines := r.BeatLines()
	h := float64(r.height)
	for _, x := range lines {
		s.StrokeLine(x, 0, x, h, r.opts.LineWidth, r.opts.GridColor)
	}
	pts := r.WavePoints()
	if len(pts) > 1 {
		s.StrokePolyline(pts, r.opts.LineWidth, r.opts.WaveColor)
	}
	r.logger.Debugf("[WAVE] paint: %d beat lines, %d wave points, window=[%.3f, %.3f]", len(lines), len(pts), r.start, r.end)
}

// BeatGap is the pixel distance between adjacent beat lines in the current
// window, or 0 when there is no grid.
func (r *Renderer) BeatGap() float64 {
	tpb, ok := r.tempo.TimePerBeat()
	if !ok || !r.Drawable() {
		return 0
	}
	return float64(r.width) / ((r.end - r.start) / tpb)
}

// BeatLines returns the x positions of the visible beat lines. The grid is
// suppressed entirely when lines would be closer than GridMinGap pixels, and
// when the offset is not finite.
func (r *Renderer) BeatLines() []float64 {
	gap := r.BeatGap()
	if !(gap > r.opts.GridMinGap) {
		return nil
	}
	off := r.tempo.Offset
	if math.IsNaN(off) || math.IsInf(off, 0) {
		return nil
	}
	tpb, _ := r.tempo.TimePerBeat()
	// only the phase of the offset matters; reducing it keeps k small
	phase := math.Mod(off, tpb)
	first := math.Ceil((r.start - phase) / tpb)
	w := float64(r.width)
	n := int(math.Ceil(w/gap)) + 1
	xs := make([]float64, 0, n)
	for i := 0; i <= n; i++ {
		x := r.TimeToPoint(phase + (first+float64(i))*tpb)
		if x >= w {
			break
		}
		if x >= 0 {
			xs = append(xs, x)
		}
	}
	return xs
}

// WavePoints builds the waveform polyline: Points evenly spaced columns,
// each showing the nearest chunk in the visible range. Odd chunks are
// mirrored below the centre line so the outline reads as a symmetric
// silhouette. Columns that land outside the buffer are skipped.
func (r *Renderer) WavePoints() []Point {
	if r.duration <= 0 || len(r.buf.Chunks) == 0 || !r.Drawable() {
		return nil
	}
	startChunk := r.TimeToChunk(r.start)
	endChunk := r.TimeToChunk(r.end) + 1
	span := float64(endChunk - startChunk)

	n := r.opts.Points
	gap := float64(r.width) / float64(n)
	half := float64(r.height) * 0.5

	pts := append(r.pts[:0], Point{0, half})
	for c := 0; c < n; c++ {
		idx := int(math.Floor(float64(c)/float64(n)*span)) + startChunk
		v, ok := r.chunkAt(idx)
		if !ok {
			continue
		}
		y := half + float64(v)*half
		if idx%2 != 0 {
			y = half - float64(v)*half
		}
		pts = append(pts, Point{float64(c) * gap, y})
	}
	r.pts = pts
	return pts
}
