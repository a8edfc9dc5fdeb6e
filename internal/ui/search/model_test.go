package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	short := "hello"
	if got := truncate(short, 80); got != short {
		t.Errorf("expected short text unchanged, got %q", got)
	}

	// Tamil text is multi-byte; byte slicing would split a rune.
	long := strings.Repeat("வணக்கம் ", 20)
	got := truncate(long, 80)
	if !utf8.ValidString(got) {
		t.Errorf("truncated text is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("expected 80 runes after truncation, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}

	exact := strings.Repeat("x", 80)
	if got := truncate(exact, 80); got != exact {
		t.Errorf("expected text at the limit unchanged, got %q", got)
	}
}
