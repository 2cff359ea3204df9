package ui

import (
	"fmt"
	"time"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

// watchStatus renders the mirror into set on every tick that carries a new
// snapshot. It returns once done is closed.
func watchStatus(done <-chan struct{}, tick <-chan time.Time, m *wave.Mirror, set func(string)) {
	var seq uint64
	for {
		select {
		case <-done:
			return
		case <-tick:
		}
		s := m.Snapshot()
		if s.Seq == seq {
			continue
		}
		seq = s.Seq
		set(statusText(s))
	}
}

func statusText(s wave.Snapshot) string {
	return fmt.Sprintf("playhead %s\nwindow %s - %s",
		wave.FormatTime(s.CurrentTime), wave.FormatTime(s.StartTime), wave.FormatTime(s.EndTime))
}
