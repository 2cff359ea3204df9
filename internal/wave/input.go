package wave

type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
)

// DefaultKeyStep is how far one arrow key release pans, in seconds.
const DefaultKeyStep = 1.0

// Bindings holds the input policy knobs.
type Bindings struct {
	KeyStep float64 // seconds per arrow key release
}

// Router turns pointer, wheel and keyboard events into navigation calls.
// Handlers run on the frame thread between ticks.
type Router struct {
	r *Renderer
	b Bindings
}

func NewRouter(r *Renderer, b Bindings) *Router {
	if b.KeyStep <= 0 {
		b.KeyStep = DefaultKeyStep
	}
	return &Router{r: r, b: b}
}

// Wheel handles a scroll at surface x. deltaY zooms around the time under
// the pointer (sign only), deltaX pans. Both are scaled by the frame delta.
func (in *Router) Wheel(x, deltaX, deltaY float64) {
	if !in.r.Drawable() {
		return
	}
	step := in.r.Delta()
	if deltaY != 0 {
		in.r.Zoom(sign(deltaY)*step, in.r.PointToTime(x))
	}
	if deltaX != 0 {
		in.r.Shift(deltaX * step)
	}
}

// PointerMove updates the hover time. With panHeld the window is dragged by
// movementX pixels.
func (in *Router) PointerMove(x, movementX float64, panHeld bool) {
	if !in.r.Drawable() {
		in.r.hoverValid = false
		return
	}
	in.r.hover = in.r.PointToTime(x)
	in.r.hoverValid = true
	if panHeld && movementX != 0 {
		start, end := in.r.Window()
		in.r.Shift(-(movementX / float64(in.r.width)) * (end - start))
	}
}

// PointerLeave marks the hover time stale.
func (in *Router) PointerLeave() {
	in.r.hoverValid = false
}

// Click moves the playhead to the time under x.
func (in *Router) Click(x float64) {
	if !in.r.Drawable() {
		return
	}
	in.r.SetCurrentTime(in.r.PointToTime(x))
	in.r.logger.Debugf("[WAVE] click x=%.1f -> playhead %.3fs", x, in.r.current)
}

// KeyUp pans one step per arrow key release.
func (in *Router) KeyUp(k Key) {
	switch k {
	case KeyLeft:
		in.r.Shift(-in.b.KeyStep)
	case KeyRight:
		in.r.Shift(in.b.KeyStep)
	}
}
