// Package tui is the terminal front end for COLLECTIVE. A single root
// model owns the auth gate and routes everything else to one of four
// tab views.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/internal/session"
	"github.com/collectivehq/collective/internal/wallet"
	"github.com/collectivehq/collective/pkg/client"
	"github.com/collectivehq/collective/pkg/domain"
)

// gateState is where the app stands in the auth bootstrap.
type gateState int

const (
	gateChecking gateState = iota
	gateLocked
	gateVerify
	gateAdmitted
)

type view int

const (
	viewHacks view = iota
	viewTeams
	viewEntries
	viewWallet
)

var tabNames = [...]string{"hacks", "teams", "entries", "wallet"}

type meLoadedMsg struct {
	user *domain.User
	err  error
}

// App is the root Bubble Tea model.
type App struct {
	client  *client.Client
	store   *session.Store
	ledger  *wallet.Ledger
	logger  *zap.SugaredLogger
	version string

	gate gateState
	user *domain.User

	active  view
	hacks   hacksModel
	teams   teamsModel
	entries entriesModel
	wallet  walletModel
	verify  verifyModel

	frame  int
	width  int
	height int
}

// NewApp wires the root model. hasToken decides whether bootstrap even
// tries the API: with no stored token there is nothing to check.
func NewApp(c *client.Client, store *session.Store, ledger *wallet.Ledger, logger *zap.SugaredLogger, baseURL, version string, hasToken bool) App {
	gate := gateChecking
	if !hasToken {
		c.ClearToken()
		gate = gateLocked
	}
	return App{
		client:  c,
		store:   store,
		ledger:  ledger,
		logger:  logger,
		version: version,
		gate:    gate,
		hacks:   newHacksModel(c, ledger, logger, baseURL),
		teams:   newTeamsModel(c, logger),
		entries: newEntriesModel(c, logger),
		wallet:  newWalletModel(ledger, logger),
		verify:  newVerifyModel(c, logger),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	if a.gate == gateChecking {
		cmds = append(cmds, a.loadMe())
	}
	return tea.Batch(cmds...)
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		user, err := c.GetMe(context.Background())
		return meLoadedMsg{user: user, err: err}
	}
}

func (a App) editing() bool {
	return a.gate == gateVerify || a.teams.editing() || a.entries.editing()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.routeToAll(msg)

	case meLoadedMsg:
		return a.handleMeLoaded(msg)

	case tea.KeyMsg:
		return a.updateKeys(msg)

	default:
		return a.routeToAll(msg)
	}
}

func (a App) handleMeLoaded(msg meLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if client.IsStatus(msg.err, 401) {
			// Stored token is dead. Drop it so the next start goes
			// straight to the locked screen.
			if err := a.store.Clear(); err != nil {
				a.logger.Warnw("clearing session", "err", err)
			}
			a.gate = gateLocked
			a.user = nil
			return a, nil
		}
		a.logger.Warnw("loading profile", "err", client.Message(msg.err))
		if a.gate == gateChecking {
			a.gate = gateLocked
		}
		return a, nil
	}

	a.user = msg.user
	if !msg.user.Verified {
		a.gate = gateVerify
		a.verify = newVerifyModel(a.client, a.logger)
		a.verify.email = msg.user.Email
		return a, nil
	}

	admitted := a.gate == gateAdmitted
	a.gate = gateAdmitted
	a.ledger.Reset(msg.user.Balance)
	if admitted {
		return a, nil // just a profile refresh
	}
	a.logger.Infow("session admitted", "handle", msg.user.Handle)
	return a, a.hacks.Init()
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.gate {
	case gateChecking:
		return a, nil
	case gateLocked:
		if msg.String() == "q" || msg.String() == "esc" || msg.String() == "enter" {
			return a, tea.Quit
		}
		return a, nil
	case gateVerify:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.verify, cmd = a.verify.Update(msg)
		if a.verify.verified() {
			a.verify = a.verify.stop()
			a.gate = gateChecking
			return a, tea.Batch(cmd, a.loadMe())
		}
		return a, cmd
	}

	// Admitted: global keys first, then the active view.
	if !a.editing() {
		switch msg.String() {
		case "q":
			if a.active != viewHacks || !a.hacks.detail {
				return a, tea.Quit
			}
		case "1", "2", "3", "4":
			return a.switchTab(view(msg.String()[0] - '1'))
		case "tab":
			return a.switchTab((a.active + 1) % view(len(tabNames)))
		case "shift+tab":
			return a.switchTab((a.active + view(len(tabNames)) - 1) % view(len(tabNames)))
		}
	}
	return a.routeToActive(msg)
}

// switchTab changes the active view and points the hackathon-scoped
// views at whatever is selected in the hacks list.
func (a App) switchTab(v view) (tea.Model, tea.Cmd) {
	a.active = v
	var cmd tea.Cmd
	if h := a.hacks.selected(); h != nil {
		switch v {
		case viewTeams:
			cmd = a.teams.setHackathon(h.Slug)
		case viewEntries:
			cmd = a.entries.setHackathon(h.Slug)
		}
	}
	return a, cmd
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case viewHacks:
		a.hacks, cmd = a.hacks.Update(msg)
	case viewTeams:
		a.teams, cmd = a.teams.Update(msg)
	case viewEntries:
		a.entries, cmd = a.entries.Update(msg)
	case viewWallet:
		a.wallet, cmd = a.wallet.Update(msg)
	}
	return a, cmd
}

// routeToAll delivers non-key messages to every child so async results
// land even when their view is not on screen.
func (a App) routeToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.hacks, cmd = a.hacks.Update(msg)
	cmds = append(cmds, cmd)
	a.teams, cmd = a.teams.Update(msg)
	cmds = append(cmds, cmd)
	a.entries, cmd = a.entries.Update(msg)
	cmds = append(cmds, cmd)
	a.wallet, cmd = a.wallet.Update(msg)
	cmds = append(cmds, cmd)
	if a.gate == gateVerify {
		a.verify, cmd = a.verify.Update(msg)
		cmds = append(cmds, cmd)
		if a.verify.verified() {
			a.verify = a.verify.stop()
			a.gate = gateChecking
			cmds = append(cmds, a.loadMe())
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	var sb strings.Builder
	sb.WriteString("\n " + renderShimmerLogo(a.frame))
	if a.user != nil {
		sb.WriteString("   " + metaStyle.Render("@"+a.user.Handle) +
			"  " + goldStyle.Render(formatAmount(a.ledger.Balance(), a.ledger.Currency())))
	}
	sb.WriteString("\n\n")

	switch a.gate {
	case gateChecking:
		sb.WriteString(" " + dimStyle.Render("checking session...") + "\n")
	case gateLocked:
		sb.WriteString(a.lockedView())
	case gateVerify:
		sb.WriteString(a.verify.View())
		sb.WriteString("\n " + a.verify.helpKeys() + "\n")
	case gateAdmitted:
		sb.WriteString(a.tabBar() + "\n")
		sb.WriteString(a.activeView())
		sb.WriteString("\n " + a.activeHelp() + "  " + helpEntry("1-4", "tabs") + "  " + helpEntry("q", "quit") + "\n")
	}

	return truncateToHeight(sb.String(), a.height)
}

func (a App) lockedView() string {
	var sb strings.Builder
	sb.WriteString(" " + normalStyle.Render("you're not signed in") + "\n\n")
	sb.WriteString(" " + dimStyle.Render("run ") + accentStyle.Render("collective login") +
		dimStyle.Render(" to connect your account") + "\n\n")
	sb.WriteString(" " + helpEntry("q", "quit") + "\n")
	return sb.String()
}

func (a App) tabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if view(i) == a.active {
			parts = append(parts, selectedStyle.Render("["+name+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+name+" "))
		}
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) activeView() string {
	switch a.active {
	case viewTeams:
		return a.teams.View()
	case viewEntries:
		return a.entries.View()
	case viewWallet:
		return a.wallet.View()
	default:
		return a.hacks.View()
	}
}

func (a App) activeHelp() string {
	switch a.active {
	case viewTeams:
		return a.teams.helpKeys()
	case viewEntries:
		return a.entries.helpKeys()
	case viewWallet:
		return a.wallet.helpKeys()
	default:
		return a.hacks.helpKeys()
	}
}
