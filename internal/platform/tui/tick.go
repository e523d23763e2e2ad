// Package tui provides the Bubble Tea front end for the snake variants.
// It handles the terminal UI loop, input mapping, and the SSH session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Round is the id of the game model that scheduled it; other models ignore it.
type TickMsg struct {
	Time  time.Time
	Round string
}

// tickInterval converts a tick rate to the delay between ticks.
// Non-positive rates fall back to 60 ticks per second.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, round string) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Round: round}
	})
}
