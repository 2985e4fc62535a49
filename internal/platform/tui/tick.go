// Package tui provides the Bubble Tea integration for Pong.
// It runs the fixed-rate loop, maps keyboard and mouse input to input
// frames, and renders the game screen with lipgloss styles.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the model that scheduled it, so a tick left over from a
// closed game cannot start a second loop in the next one.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh loop generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The game advances one logical step per tick, so the rate must stay constant.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
