package quiz

import "testing"

func TestCountdown_StopIsIdempotent(t *testing.T) {
	c := newCountdown("abc")
	if c.Start() == nil {
		t.Fatal("expected a tick command")
	}
	if !c.Accept(timerTickMsg{SessionID: "abc"}) {
		t.Error("running countdown should accept its own tick")
	}

	c.Stop()
	c.Stop()
	if c.Accept(timerTickMsg{SessionID: "abc"}) {
		t.Error("stopped countdown must drop ticks")
	}
	if c.next() != nil {
		t.Error("stopped countdown must not re-arm")
	}
}

func TestCountdown_RejectsOtherSessions(t *testing.T) {
	c := newCountdown("abc")
	c.Start()
	if c.Accept(timerTickMsg{SessionID: "xyz"}) {
		t.Error("tick from another session must be dropped")
	}
}
