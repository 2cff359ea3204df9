//go:build fyne

package ui

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

const PanelAvailable = true

// RunPanel launches a tempo and transport window implemented with Fyne. It
// only reads the mirror; edits go to the game through Post.
func RunPanel(g *Game, m *wave.Mirror, initial wave.Tempo) {
	go func() {
		a := app.New()
		w := a.NewWindow("Tempo")

		bpmEntry := widget.NewEntry()
		bpmEntry.SetText(strconv.FormatFloat(initial.BPM, 'f', -1, 64))
		offsetEntry := widget.NewEntry()
		offsetEntry.SetText(strconv.FormatFloat(initial.Offset, 'f', -1, 64))
		status := widget.NewLabel("")

		apply := widget.NewButton("Apply tempo", func() {
			bpm, err1 := parseFloat(bpmEntry.Text)
			offset, err2 := parseFloat(offsetEntry.Text)
			if err1 != nil || err2 != nil {
				g.logger.Warnf("[PANEL] invalid tempo %q / %q", bpmEntry.Text, offsetEntry.Text)
				return
			}
			g.SetTempo(bpm, offset)
		})

		seekEntry := widget.NewEntry()
		seekEntry.SetPlaceHolder("seconds")
		seekEntry.OnSubmitted = func(s string) {
			if t, err := parseFloat(s); err == nil {
				g.Seek(t)
			}
		}

		done := make(chan struct{})
		w.SetOnClosed(func() { close(done) })
		go func() {
			tick := time.NewTicker(200 * time.Millisecond)
			defer tick.Stop()
			watchStatus(done, tick.C, m, func(text string) {
				fyne.Do(func() { status.SetText(text) })
			})
		}()

		w.SetContent(container.NewVBox(
			widget.NewLabel("BPM"), bpmEntry,
			widget.NewLabel("Offset (s)"), offsetEntry,
			apply,
			widget.NewLabel("Seek"), seekEntry,
			status,
		))
		w.ShowAndRun()
	}()
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
