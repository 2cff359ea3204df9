package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	wheel                = ebiten.Wheel
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	wh func() (float64, float64),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldWheel := wheel
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	wheel = wh
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		wheel = oldWheel
	}
}

// clickSlop is how far (px) the pointer may travel between press and release
// and still count as a click.
const clickSlop = 3

// DefaultWheelPixelsPerNotch converts one ebiten wheel notch into the pixel
// delta a browser would report for it.
const DefaultWheelPixelsPerNotch = 100

var arrowKeys = map[ebiten.Key]wave.Key{
	ebiten.KeyArrowLeft:  wave.KeyLeft,
	ebiten.KeyArrowRight: wave.KeyRight,
}

// pointerState turns polled ebiten input into edge events for a wave.Router:
// pointer enter/move/leave, click on release, wheel and key release.
type pointerState struct {
	x, y     int
	inside   bool
	leftPrev bool
	pressX   int
	dragged  bool
	keysPrev map[ebiten.Key]bool
}

func inside(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

func (p *pointerState) poll(in *wave.Router, w, h int, pxPerNotch float64) {
	x, y := cursorPosition()
	over := inside(x, y, w, h)
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	pan := isMouseButtonPressed(ebiten.MouseButtonMiddle)

	switch {
	case over:
		dx := 0
		if p.inside {
			dx = x - p.x
		}
		if !p.inside || x != p.x || y != p.y {
			in.PointerMove(float64(x), float64(dx), pan)
		}
	case p.inside:
		in.PointerLeave()
	}

	// click = press and release inside without dragging
	if left && !p.leftPrev {
		p.pressX = x
		p.dragged = !over
	}
	if left && abs(x-p.pressX) > clickSlop {
		p.dragged = true
	}
	if !left && p.leftPrev && over && !p.dragged {
		in.Click(float64(x))
	}

	if over {
		if wx, wy := wheel(); wx != 0 || wy != 0 {
			// ebiten reports scroll-up as positive y; the router expects
			// browser deltas where scroll-down is positive.
			in.Wheel(float64(x), wx*pxPerNotch, -wy*pxPerNotch)
		}
	}

	if p.keysPrev == nil {
		p.keysPrev = make(map[ebiten.Key]bool, len(arrowKeys))
	}
	for k, wk := range arrowKeys {
		down := isKeyPressed(k)
		if p.keysPrev[k] && !down {
			in.KeyUp(wk)
		}
		p.keysPrev[k] = down
	}

	p.x, p.y, p.inside, p.leftPrev = x, y, over, left
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
