// Package tui provides the Bubble Tea front end for Tetrion: the play
// screen, menu, scoreboard and the SSH server that hosts them.
//
// The simulation never runs on the Bubble Tea goroutine. Each match is
// driven by a sim.Runner; the UI only pushes key events into it and
// redraws the latest snapshot on its own render tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameRate is how often the play screen redraws.
const frameRate = 60

// TickMsg is sent to trigger a redraw of the play screen.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
