package hotkeys

import (
	"testing"
	"time"
)

func TestSequenceMatching(t *testing.T) {
	d := New()
	fired := ""
	d.Register("g h", func() { fired = "home" })
	d.Register("g c", func() { fired = "chat" })

	base := time.Now()
	if d.Handle(Event{Key: "g", At: base}, false) {
		t.Error("prefix alone must not fire")
	}
	if !d.Handle(Event{Key: "h", At: base.Add(200 * time.Millisecond)}, false) {
		t.Error("expected g h to fire")
	}
	if fired != "home" {
		t.Errorf("expected home, got %q", fired)
	}

	// The buffer was cleared by the match; a bare h does nothing.
	fired = ""
	if d.Handle(Event{Key: "h", At: base.Add(400 * time.Millisecond)}, false) {
		t.Error("h after a consumed sequence must not fire")
	}

	// Suffix matching: noise before the sequence is fine.
	d.Handle(Event{Key: "x", At: base.Add(500 * time.Millisecond)}, false)
	d.Handle(Event{Key: "g", At: base.Add(600 * time.Millisecond)}, false)
	if !d.Handle(Event{Key: "c", At: base.Add(700 * time.Millisecond)}, false) {
		t.Error("expected g c to fire after noise")
	}
	if fired != "chat" {
		t.Errorf("expected chat, got %q", fired)
	}
}

func TestSequenceBufferExpiry(t *testing.T) {
	d := New()
	fired := false
	d.Register("g h", func() { fired = true })

	base := time.Now()
	d.Handle(Event{Key: "g", At: base}, false)
	if d.Handle(Event{Key: "h", At: base.Add(1100 * time.Millisecond)}, false) {
		t.Error("sequence must not fire across a stale buffer")
	}
	if fired {
		t.Error("callback must not run after expiry")
	}

	// Inside the window it still works.
	d.Handle(Event{Key: "g", At: base.Add(2 * time.Second)}, false)
	if !d.Handle(Event{Key: "h", At: base.Add(2900 * time.Millisecond)}, false) {
		t.Error("expected sequence to fire within the window")
	}
}

func TestComboMatching(t *testing.T) {
	d := New()
	fired := ""
	d.Register("mod+k", func() { fired = "search" })
	d.Register("mod+shift+a", func() { fired = "quickadd" })

	if d.Handle(Event{Key: "k"}, false) {
		t.Error("bare k must not fire mod+k")
	}
	if !d.Handle(Event{Key: "k", Ctrl: true}, false) {
		t.Error("expected ctrl+k to fire")
	}
	if fired != "search" {
		t.Errorf("expected search, got %q", fired)
	}

	if d.Handle(Event{Key: "a", Ctrl: true}, false) {
		t.Error("ctrl+a must not fire ctrl+shift+a")
	}
	if !d.Handle(Event{Key: "a", Ctrl: true, Shift: true}, false) {
		t.Error("expected ctrl+shift+a to fire")
	}
	if fired != "quickadd" {
		t.Errorf("expected quickadd, got %q", fired)
	}

	// Extra modifiers must not match.
	if d.Handle(Event{Key: "k", Ctrl: true, Alt: true}, false) {
		t.Error("ctrl+alt+k must not fire ctrl+k")
	}
}

func TestEditableFocusSuppression(t *testing.T) {
	d := New()
	fired := false
	d.Register("g h", func() { fired = true })
	d.Register("mod+k", func() { fired = true })

	base := time.Now()
	if d.Handle(Event{Key: "g", At: base}, true) {
		t.Error("suppressed key must not fire")
	}
	if d.Handle(Event{Key: "h", At: base.Add(100 * time.Millisecond)}, true) {
		t.Error("suppressed sequence must not fire")
	}
	if d.Handle(Event{Key: "k", Ctrl: true}, true) {
		t.Error("suppressed combo must not fire")
	}
	if fired {
		t.Error("no callback may run while an editable has focus")
	}

	// Suppressed keys do not pollute the buffer either.
	d.Handle(Event{Key: "g", At: base.Add(200 * time.Millisecond)}, true)
	if d.Handle(Event{Key: "h", At: base.Add(300 * time.Millisecond)}, false) {
		t.Error("a suppressed g must not complete the sequence")
	}
}
