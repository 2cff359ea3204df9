package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

// strokeLine and fillImage are variables so tests can capture draw calls
// without a graphics context.
var strokeLine = func(dst *ebiten.Image, x0, y0, x1, y1, width float32, c color.Color) {
	vector.StrokeLine(dst, x0, y0, x1, y1, width, c, true)
}

var fillImage = func(dst *ebiten.Image, c color.Color) {
	dst.Fill(c)
}

// imageSurface lets the wave renderer paint onto an offscreen ebiten image.
type imageSurface struct {
	img  *ebiten.Image
	w, h int
	bg   color.Color
}

func (s *imageSurface) Size() (int, int) { return s.w, s.h }

func (s *imageSurface) Clear() {
	if s.img == nil {
		return
	}
	fillImage(s.img, s.bg)
}

func (s *imageSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if s.img == nil {
		return
	}
	strokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c)
}

// StrokePolyline draws the polyline segment by segment.
func (s *imageSurface) StrokePolyline(pts []wave.Point, width float64, c color.Color) {
	if s.img == nil {
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		strokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c)
	}
}
