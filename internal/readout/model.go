// Package readout shows the viewport's time codes in the terminal. It only
// reads the wave.Mirror and never writes back.
package readout

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

const DefaultInterval = 100 * time.Millisecond

// TickMsg asks the model to poll the mirror again.
type TickMsg struct{}

// Styles colours the readout. Zero styles render plain text.
type Styles struct {
	Label    lipgloss.Style
	Window   lipgloss.Style
	Playhead lipgloss.Style
	Hover    lipgloss.Style
	Dim      lipgloss.Style
}

// NewStyles builds styles from hex colours such as "#e8b04a".
func NewStyles(playhead, hover string) Styles {
	return Styles{
		Label:    lipgloss.NewStyle().Bold(true),
		Window:   lipgloss.NewStyle(),
		Playhead: lipgloss.NewStyle().Foreground(lipgloss.Color(playhead)).Bold(true),
		Hover:    lipgloss.NewStyle().Foreground(lipgloss.Color(hover)),
		Dim:      lipgloss.NewStyle().Faint(true),
	}
}

type Model struct {
	mirror   *wave.Mirror
	interval time.Duration
	styles   Styles
	snap     wave.Snapshot
	polls    int
}

func New(m *wave.Mirror, interval time.Duration, styles Styles) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{mirror: m, interval: interval, styles: styles}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.polls++
		if s := m.mirror.Snapshot(); s.Seq != m.snap.Seq {
			m.snap = s
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.snap.Seq == 0 {
		return m.styles.Dim.Render("waiting for first frame...") + "\n"
	}
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("window  "))
	b.WriteString(m.styles.Window.Render(fmt.Sprintf("%s - %s",
		wave.FormatTime(m.snap.StartTime), wave.FormatTime(m.snap.EndTime))))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("playhead"))
	b.WriteString(" ")
	b.WriteString(m.styles.Playhead.Render(wave.FormatTime(m.snap.CurrentTime)))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("hover   "))
	b.WriteString(" ")
	if m.snap.HoverValid {
		b.WriteString(m.styles.Hover.Render(wave.FormatTime(m.snap.HoverTime)))
	} else {
		b.WriteString(m.styles.Dim.Render("--:--.---"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Snapshot is the last mirror state the model has seen.
func (m Model) Snapshot() wave.Snapshot { return m.snap }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// NewProgram wraps the model in a bubbletea program.
func NewProgram(m *wave.Mirror, interval time.Duration, styles Styles, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(New(m, interval, styles), opts...)
}
