package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second while a session's countdown runs.
type timerTickMsg struct {
	SessionID string
}

// countdown re-arms a one-second tick for one session until stopped.
type countdown struct {
	sessionID string
	interval  time.Duration
	running   bool
}

func newCountdown(sessionID string) *countdown {
	return &countdown{sessionID: sessionID, interval: time.Second}
}

// Start arms the first tick.
func (c *countdown) Start() tea.Cmd {
	c.running = true
	return c.next()
}

// Stop disarms the countdown. Calling it again is a no-op.
func (c *countdown) Stop() {
	c.running = false
}

// Accept reports whether msg belongs to this running countdown. Stale ticks
// must not be re-armed.
func (c *countdown) Accept(msg timerTickMsg) bool {
	return c.running && msg.SessionID == c.sessionID
}

func (c *countdown) next() tea.Cmd {
	if !c.running {
		return nil
	}
	id := c.sessionID
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return timerTickMsg{SessionID: id}
	})
}
