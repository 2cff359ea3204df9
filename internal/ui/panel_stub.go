//go:build !fyne

package ui

import "github.com/ingyamilmolinar/beatmapper/internal/wave"

const PanelAvailable = false

// RunPanel is a no-op without the fyne build tag.
func RunPanel(g *Game, _ *wave.Mirror, _ wave.Tempo) {
	g.logger.Warnf("[PANEL] built without the fyne tag; rebuild with -tags fyne for the tempo panel")
}
