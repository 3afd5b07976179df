package tui

import (
	"strings"
	"testing"
	"time"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "hack", "s", "hacks"},
		{"append paste", "see ", "https://x.dev", "see https://x.dev"},
		{"backspace", "hacks", "backspace", "hack"},
		{"backspace empty", "", "backspace", ""},
		{"backspace multibyte", "café", "backspace", "caf"},
		{"enter ignored", "hack", "enter", "hack"},
		{"ctrl ignored", "hack", "ctrl+s", "hack"},
		{"single plus typed", "1", "+", "1+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editRune(tt.text, tt.key); got != tt.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	full := strings.Repeat("a", maxInputLen)
	if got := editRune(full, "b"); got != full {
		t.Error("input past the limit should be dropped")
	}
	almost := strings.Repeat("a", maxInputLen-2)
	got := editRune(almost, "xyz")
	if len(got) != maxInputLen || !strings.HasSuffix(got, "xy") {
		t.Errorf("paste should be clipped to the remaining room, got len %d", len(got))
	}
}

func TestIsNamedKey(t *testing.T) {
	named := []string{"enter", "esc", "shift+tab", "ctrl+s", "alt+x", "f1", "pgdown"}
	for _, k := range named {
		if !isNamedKey(k) {
			t.Errorf("isNamedKey(%q) = false", k)
		}
	}
	text := []string{"a", "7", "+", "pasted text", "a+b", "€"}
	for _, k := range text {
		if isNamedKey(k) {
			t.Errorf("isNamedKey(%q) = true", k)
		}
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\n"
	if got := truncateToHeight(s, 2); got != "one\ntwo\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("zero height should pass through, got %q", got)
	}
	if got := truncateToHeight(s, 10); got != s {
		t.Errorf("short content should pass through, got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int
		currency string
		want     string
	}{
		{25, "EUR", "€25"},
		{10, "USD", "$10"},
		{5, "GBP", "£5"},
		{7, "CHF", "7 CHF"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.amount, tt.currency); got != tt.want {
			t.Errorf("formatAmount(%d, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := formatTime(tt.t); got != tt.want {
			t.Errorf("formatTime = %q, want %q", got, tt.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("a very long hackathon title", 10); got != "a very lo…" {
		t.Errorf("got %q", got)
	}
}
