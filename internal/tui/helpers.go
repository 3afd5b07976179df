package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// pageSize is the default number of items fetched per API call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 500

// editRune processes a keystroke for inline text editing. Handles
// backspace (rune-aware) and printable input, including multi-rune
// paste. Named keys (enter, esc, ...) leave the text unchanged. Input is
// clamped to maxInputLen runes.
func editRune(text string, key string) string {
	if key == "backspace" {
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	}
	if isNamedKey(key) {
		return text
	}
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	runes := []rune(key)
	if len(runes) > room {
		runes = runes[:room]
	}
	return text + string(runes)
}

// isNamedKey reports whether a key string is a named key rather than
// typed text. Multi-rune strings without a dash or plus are pasted text.
func isNamedKey(key string) bool {
	if utf8.RuneCountInString(key) == 1 {
		return false
	}
	switch key {
	case "enter", "esc", "tab", "backspace", "delete", "space",
		"up", "down", "left", "right", "home", "end", "pgup", "pgdown",
		"insert", "shift+tab":
		return true
	}
	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if strings.HasPrefix(key, mod) {
			return true
		}
	}
	if len(key) >= 2 && key[0] == 'f' && key[1] >= '1' && key[1] <= '9' {
		return true // function keys
	}
	return false
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formatTime renders a relative timestamp for lists.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatAmount renders a whole-unit amount with its currency symbol.
func formatAmount(amount int, currency string) string {
	switch currency {
	case "EUR":
		return fmt.Sprintf("€%d", amount)
	case "USD":
		return fmt.Sprintf("$%d", amount)
	case "GBP":
		return fmt.Sprintf("£%d", amount)
	}
	return fmt.Sprintf("%d %s", amount, currency)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
