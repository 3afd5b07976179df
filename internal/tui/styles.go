package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/collectivehq/collective/pkg/domain"
)

// Shimmer animation for the COLLECTIVE wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "C O L L E C T I V E" as a flowing wave of
// violet light: deep indigo (#2e1065) -> bright lavender (#c4b5fd).
func renderShimmerLogo(frame int) string {
	const text = "COLLECTIVE"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (46, 16, 101)  #2e1065
		// Bright: (196, 181, 253) #c4b5fd
		r := clampByte(46 + b*(196-46))
		g := clampByte(16 + b*(181-16))
		bl := clampByte(101 + b*(253-101))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += " "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece9fe")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Feedback lines
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	// OTP slots
	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece9fe")).
			Bold(true)

	slotFocusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true).
			Underline(true)

	// Overlay chrome
	borderColor  = lipgloss.Color("#3a3f52")
	surfaceColor = lipgloss.Color("#14141c")

	// Hackathon statuses
	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	upcomingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	judgingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	endedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Transaction kinds
	topupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	paymentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	refundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	payoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))
)

// StatusStyle returns the style for a hackathon status chip.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case domain.HackathonLive:
		return liveStyle
	case domain.HackathonUpcoming:
		return upcomingStyle
	case domain.HackathonJudging:
		return judgingStyle
	case domain.HackathonEnded:
		return endedStyle
	}
	return dimStyle
}

// TxStyle returns the style for a transaction kind.
func TxStyle(kind string) lipgloss.Style {
	switch kind {
	case domain.TxTopup:
		return topupStyle
	case domain.TxPayment:
		return paymentStyle
	case domain.TxRefund:
		return refundStyle
	case domain.TxPrizePayout:
		return payoutStyle
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for the help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
