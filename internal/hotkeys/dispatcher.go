package hotkeys

import (
	"strings"
	"time"
)

// sequenceWindow is how long the keystroke buffer survives between
// keys of a multi-key sequence.
const sequenceWindow = time.Second

// Event is one keystroke as seen by the dispatcher.
type Event struct {
	// Key is the lowercase key name, e.g. "g" or "k".
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	// At is when the key was pressed. The zero value means now.
	At time.Time
}

// binding is one registered shortcut. A sequence binding has two or
// more space-separated keys; a combo binding is a single key with
// optional "mod+"/"shift+"/"alt+" prefixes.
type binding struct {
	sequence []string
	key      string
	ctrl     bool
	shift    bool
	alt      bool
	fn       func()
}

// Dispatcher matches global keyboard shortcuts: multi-key sequences
// ("g h") against a rolling buffer cleared after a second of
// inactivity, and modifier combos ("mod+k") against the exact modifier
// state. Both are suppressed while a text-editable widget has focus.
type Dispatcher struct {
	bindings []binding
	buffer   []string
	lastAt   time.Time
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Register binds a shortcut spec to fn. Specs are space-separated key
// sequences ("g h") or a single "+"-joined combo ("mod+shift+a"). The
// "mod" modifier is the terminal's control key.
func (d *Dispatcher) Register(spec string, fn func()) {
	parts := strings.Fields(strings.ToLower(spec))
	if len(parts) > 1 {
		d.bindings = append(d.bindings, binding{sequence: parts, fn: fn})
		return
	}

	comboParts := strings.Split(parts[0], "+")
	b := binding{key: comboParts[len(comboParts)-1], fn: fn}
	for _, m := range comboParts[:len(comboParts)-1] {
		switch m {
		case "mod", "ctrl":
			b.ctrl = true
		case "shift":
			b.shift = true
		case "alt":
			b.alt = true
		}
	}
	d.bindings = append(d.bindings, b)
}

// Handle feeds one keystroke in. It reports whether a shortcut fired
// and consumed the key. Keystrokes arriving while an editable widget
// has focus never match and leave the buffer untouched.
func (d *Dispatcher) Handle(ev Event, editableFocused bool) bool {
	if editableFocused {
		return false
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	// The buffer expires after a second without keys.
	if !d.lastAt.IsZero() && at.Sub(d.lastAt) > sequenceWindow {
		d.buffer = nil
	}
	d.lastAt = at

	key := strings.ToLower(ev.Key)
	d.buffer = append(d.buffer, key)

	for _, b := range d.bindings {
		if len(b.sequence) > 1 {
			if d.bufferEndsWith(b.sequence) {
				d.buffer = nil
				b.fn()
				return true
			}
			continue
		}

		if key != b.key {
			continue
		}
		if ev.Ctrl == b.ctrl && ev.Shift == b.shift && ev.Alt == b.alt {
			b.fn()
			return true
		}
	}
	return false
}

func (d *Dispatcher) bufferEndsWith(seq []string) bool {
	if len(d.buffer) < len(seq) {
		return false
	}
	offset := len(d.buffer) - len(seq)
	for i, k := range seq {
		if d.buffer[offset+i] != k {
			return false
		}
	}
	return true
}
