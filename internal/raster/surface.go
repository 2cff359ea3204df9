// Package raster paints the waveform offline onto a gg software canvas, for
// PNG snapshots and headless runs.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	game_log "github.com/ingyamilmolinar/beatmapper/internal/log"
	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

// Surface adapts a gg.Context to wave.Surface. Stroke errors are sticky and
// reported by Err.
type Surface struct {
	dc  *gg.Context
	bg  gg.RGBA
	err error
}

func NewSurface(w, h int, bg color.Color) *Surface {
	return &Surface{dc: gg.NewContext(w, h), bg: gg.FromColor(bg)}
}

func (s *Surface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

func (s *Surface) Clear() { s.dc.ClearWithColor(s.bg) }

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.stroke()
}

func (s *Surface) StrokePolyline(pts []wave.Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.stroke()
}

func (s *Surface) stroke() {
	if err := s.dc.Stroke(); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Surface) Err() error { return s.err }

func (s *Surface) Image() image.Image { return s.dc.Image() }

func (s *Surface) SavePNG(path string) error {
	if s.err != nil {
		return fmt.Errorf("raster: %w", s.err)
	}
	return s.dc.SavePNG(path)
}

func (s *Surface) Close() error { return s.dc.Close() }

// Marker colours for the snapshot overlay.
type Marker struct {
	Playhead color.Color
	Hover    color.Color
}

// Snapshot runs a single frame of r onto a fresh w x h canvas, draws the
// playhead (and hover line when valid) on top, and writes a PNG to path.
func Snapshot(logger *game_log.Logger, r *wave.Renderer, w, h int, bg color.Color, m Marker, path string) error {
	if logger == nil {
		logger = game_log.Discard()
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("raster: invalid snapshot size %dx%d", w, h)
	}
	s := NewSurface(w, h, bg)
	defer s.Close()

	r.Invalidate()
	r.Frame(0, s)
	lw := r.Options().LineWidth
	if x, ok := r.HoverX(); ok && m.Hover != nil {
		s.StrokeLine(x, 0, x, float64(h), lw/2, m.Hover)
	}
	if x, ok := r.PlayheadX(); ok && m.Playhead != nil {
		s.StrokeLine(x, 0, x, float64(h), lw, m.Playhead)
	}
	if err := s.SavePNG(path); err != nil {
		return err
	}
	start, end := r.Window()
	logger.Infof("[RASTER] wrote %s (%dx%d, window %s-%s)", path, w, h, wave.FormatTime(start), wave.FormatTime(end))
	return nil
}
