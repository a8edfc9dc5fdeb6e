package keys_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"

	"github.com/learnio/learnio/internal/keys"
)

func TestShortHelpRendersEssentials(t *testing.T) {
	h := help.New()
	h.Width = 120

	view := h.View(keys.DefaultKeyMap())
	for _, hint := range []string{"quit", "toggle help", "search"} {
		if !strings.Contains(view, hint) {
			t.Fatalf("short help missing %q:\n%s", hint, view)
		}
	}
}

func TestFullHelpListsActionBindings(t *testing.T) {
	h := help.New()
	h.Width = 200
	h.ShowAll = true

	view := h.View(keys.DefaultKeyMap())
	for _, hint := range []string{"ctrl+e", "play/pause", "copy answer", "new chat"} {
		if !strings.Contains(view, hint) {
			t.Fatalf("full help missing %q:\n%s", hint, view)
		}
	}
}
