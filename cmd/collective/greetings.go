package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var doorGreetings = [...]string{
	"The door only looks locked. You just haven't signed in.",
	"Somewhere, a team is one member short. Statistically, it's yours.",
	"Forty-eight hours. The clock doesn't start until you do.",
	"Prize pools don't split themselves. Someone has to show up first.",
	"Every great demo started with someone standing exactly here.",
	"The judges have seen a thousand login screens. Don't make yours the last thing you build.",
	"Your entry fee is refundable. Your excuses are not.",
	"A hackathon without you is just other people winning.",
	"The leaderboard has a gap shaped suspiciously like your handle.",
	"Ideas expire faster than invite codes. Both are waiting inside.",
	"Someone just submitted an entry with your idea. Probably worse. Go check.",
	"The wallet starts loaded. The rest is on you.",
	"Teams form in the first hour. Lurkers form in the last.",
	"You can keep reading greetings, or you can go win something.",
	"The next cohort ships this weekend. With or without you.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("C O L L E C T I V E")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Build together. Ship together. Split the prize."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"collective", "Enter the floor (interactive TUI)"},
		{"collective login", "Authenticate with GitHub"},
		{"collective logout", "Clear your session"},
		{"collective --version", "Show version"},
		{"collective help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://collective.dev")
	fmt.Printf("\n  %s\n\n", url)
}

func printDoorGreeting() {
	msg := doorGreetings[rand.IntN(len(doorGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("COLLECTIVE")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To enter: collective login")

	fmt.Printf("\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
