package ui

import "image/color"

var (
	colBackground = color.RGBA{0x1e, 0x1a, 0x19, 0xff}
	colPlayhead   = color.RGBA{0xe8, 0xb0, 0x4a, 0xff}
	colHover      = color.RGBA{0x8a, 0x7a, 0x76, 0xff}
)

// Theme colours the host-drawn parts: the canvas background and the
// playhead and hover overlays. Grid and waveform colours live in
// wave.Options.
type Theme struct {
	Background color.Color
	Playhead   color.Color
	Hover      color.Color
}

func DefaultTheme() Theme {
	return Theme{Background: colBackground, Playhead: colPlayhead, Hover: colHover}
}

func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	if t.Background == nil {
		t.Background = d.Background
	}
	if t.Playhead == nil {
		t.Playhead = d.Playhead
	}
	if t.Hover == nil {
		t.Hover = d.Hover
	}
	return t
}
