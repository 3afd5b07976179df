package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/internal/browser"
	"github.com/collectivehq/collective/internal/wallet"
	"github.com/collectivehq/collective/pkg/client"
	"github.com/collectivehq/collective/pkg/domain"
)

// hacksPollInterval is how often the hackathon list auto-refreshes.
const hacksPollInterval = 30 * time.Second

type hacksTickMsg time.Time

func hacksTickCmd() tea.Cmd {
	return tea.Tick(hacksPollInterval, func(t time.Time) tea.Msg {
		return hacksTickMsg(t)
	})
}

type hacksLoadedMsg struct {
	hacks []domain.Hackathon
	err   error
}

// hackJoinedMsg carries the outcome of the pay-and-join command.
type hackJoinedMsg struct {
	id   string
	paid int
	err  error
}

type linkCopiedMsg struct {
	err error
}

// payState is the join dialog's lifecycle inside the detail overlay.
type payState int

const (
	payHidden payState = iota
	payConfirm
	payProcessing
	payDone
	payFailed
)

type hacksModel struct {
	client  *client.Client
	ledger  *wallet.Ledger
	logger  *zap.SugaredLogger
	baseURL string

	hacks   []domain.Hackathon
	cursor  int
	loading bool
	err     string

	detail bool
	pay    payState
	fee    int
	payErr string
	notice string // transient line inside the overlay (link copied, joined)

	width  int
	height int
}

func newHacksModel(c *client.Client, l *wallet.Ledger, logger *zap.SugaredLogger, baseURL string) hacksModel {
	return hacksModel{client: c, ledger: l, logger: logger, baseURL: baseURL, loading: true}
}

func (m hacksModel) Init() tea.Cmd {
	return m.load()
}

func (m hacksModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		hacks, err := c.ListHackathons(context.Background(), "", pageSize, 0)
		return hacksLoadedMsg{hacks: hacks, err: err}
	}
}

// selected returns the hackathon under the cursor, or nil.
func (m hacksModel) selected() *domain.Hackathon {
	if m.cursor < 0 || m.cursor >= len(m.hacks) {
		return nil
	}
	return &m.hacks[m.cursor]
}

func (m hacksModel) shareURL(h *domain.Hackathon) string {
	return m.baseURL + "/hackathons/" + h.Slug
}

func (m hacksModel) Update(msg tea.Msg) (hacksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case hacksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.hacks = msg.hacks
			m.err = ""
			if m.cursor >= len(m.hacks) {
				m.cursor = 0
			}
		}
		return m, hacksTickCmd()

	case hacksTickMsg:
		// Skip background refreshes while a dialog is up so the list
		// cannot shift under an in-progress payment.
		if m.detail {
			return m, hacksTickCmd()
		}
		return m, m.load()

	case hackJoinedMsg:
		if m.pay != payProcessing {
			return m, nil // stale completion, dialog already left
		}
		if msg.err != nil {
			m.pay = payFailed
			if errors.Is(msg.err, wallet.ErrInsufficientFunds) {
				m.payErr = "insufficient funds"
			} else {
				m.payErr = client.Message(msg.err)
			}
			return m, nil
		}
		m.pay = payDone
		m.payErr = ""
		if h := m.selected(); h != nil && h.Slug == msg.id {
			h.Joined = true
			h.Participants++
		}
		return m, nil

	case linkCopiedMsg:
		if msg.err != nil {
			m.notice = "could not copy link"
		} else {
			m.notice = "link copied"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m hacksModel) updateKeys(msg tea.KeyMsg) (hacksModel, tea.Cmd) {
	if m.detail {
		return m.updateDetailKeys(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.hacks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if h := m.selected(); h != nil {
			m.detail = true
			m.pay = payHidden
			m.payErr = ""
			m.notice = ""
			m.fee = wallet.ParseFee(h.EntryFee)
			if m.fee == 0 && !strings.EqualFold(strings.TrimSpace(h.EntryFee), "free") {
				m.logger.Debugw("fee parsed to zero", "fee", h.EntryFee, "hackathon", h.Slug)
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m hacksModel) updateDetailKeys(msg tea.KeyMsg) (hacksModel, tea.Cmd) {
	h := m.selected()
	if h == nil {
		m.detail = false
		return m, nil
	}

	// The dialog's action control is disabled while a payment is in
	// flight: only a single payment per dialog instance.
	if m.pay == payProcessing {
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		if m.pay == payConfirm || m.pay == payFailed || m.pay == payDone {
			m.pay = payHidden
			m.payErr = ""
			return m, nil
		}
		m.detail = false
		return m, nil

	case "enter", "p":
		switch m.pay {
		case payHidden:
			if h.Joined || !h.Open() {
				return m, nil
			}
			if m.fee == 0 {
				m.pay = payProcessing
				return m, m.joinCmd(h, 0)
			}
			m.pay = payConfirm
			return m, nil
		case payConfirm:
			m.pay = payProcessing
			return m, m.joinCmd(h, m.fee)
		case payFailed:
			// Back to the confirm step; balance was left unchanged.
			m.pay = payConfirm
			m.payErr = ""
			return m, nil
		case payDone:
			m.pay = payHidden
			return m, nil
		}

	case "n":
		if m.pay == payConfirm {
			m.pay = payHidden
		}
		return m, nil

	case "c":
		url := m.shareURL(h)
		return m, func() tea.Msg {
			return linkCopiedMsg{err: clipboard.WriteAll(url)}
		}

	case "o":
		browser.Open(m.shareURL(h)) //nolint:errcheck // best-effort browser open
		return m, nil
	}
	return m, nil
}

// joinCmd pays the entry fee from the wallet, then registers with the
// API. A registration failure refunds the payment so the mock books stay
// truthful.
func (m hacksModel) joinCmd(h *domain.Hackathon, fee int) tea.Cmd {
	c := m.client
	ledger := m.ledger
	logger := m.logger
	id := h.Slug
	return func() tea.Msg {
		var paymentID uuid.UUID
		if fee > 0 {
			var err error
			paymentID, err = ledger.Pay(id, fee)
			if err != nil {
				return hackJoinedMsg{id: id, err: err}
			}
		}
		if err := c.JoinHackathon(context.Background(), id); err != nil {
			if fee > 0 {
				if rerr := ledger.Refund(paymentID); rerr != nil {
					logger.Warnw("refund after failed join", "err", rerr)
				}
			}
			return hackJoinedMsg{id: id, err: err}
		}
		logger.Infow("joined hackathon", "hackathon", id, "fee", fee)
		return hackJoinedMsg{id: id, paid: fee}
	}
}

func (m hacksModel) View() string {
	if m.detail {
		return m.detailView()
	}
	if m.loading && len(m.hacks) == 0 {
		return " " + dimStyle.Render("loading hackathons...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}
	if len(m.hacks) == 0 {
		return " " + dimStyle.Render("no hackathons yet")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for i, h := range m.hacks {
		cursor := "  "
		title := normalStyle.Render(truncStr(h.Title, 40))
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			title = selectedStyle.Render(truncStr(h.Title, 40))
		}
		status := StatusStyle(h.Status).Render(h.Status)
		fee := goldStyle.Render(h.EntryFee)
		joined := ""
		if h.Joined {
			joined = "  " + okStyle.Render("joined")
		}
		sb.WriteString(fmt.Sprintf(" %s%-52s %-10s %-8s %s%s\n",
			cursor, title, status, fee,
			metaStyle.Render(fmt.Sprintf("%d joined", h.Participants)), joined))
		if i == m.cursor && h.Tagline != "" {
			sb.WriteString("     " + dimStyle.Render(truncStr(h.Tagline, 70)) + "\n")
		}
	}
	return sb.String()
}

func (m hacksModel) detailView() string {
	h := m.selected()
	if h == nil {
		return " " + dimStyle.Render("nothing selected")
	}

	cardWidth := min(56, m.width-4)
	if cardWidth < 36 {
		cardWidth = 36
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder
	sb.WriteString(selectedStyle.Render(h.Title) + "  " + StatusStyle(h.Status).Render(h.Status) + "\n")
	if h.Tagline != "" {
		sb.WriteString(dimStyle.Render(h.Tagline) + "\n")
	}
	if h.Theme != "" {
		sb.WriteString(metaStyle.Render("theme: ") + normalStyle.Render(h.Theme) + "\n")
	}
	sb.WriteString(metaStyle.Render("---") + "\n")
	sb.WriteString(metaStyle.Render(fmt.Sprintf("entry %s   prizes %s   %d joined",
		h.EntryFee, h.PrizePool, h.Participants)) + "\n")
	sb.WriteString(metaStyle.Render("---") + "\n\n")

	switch m.pay {
	case payHidden:
		switch {
		case h.Joined:
			sb.WriteString(okStyle.Render("you're in") + "\n")
		case !h.Open():
			sb.WriteString(dimStyle.Render("registration closed") + "\n")
		case m.fee == 0:
			sb.WriteString(helpEntry("enter", "join (free)") + "\n")
		default:
			sb.WriteString(helpEntry("enter", fmt.Sprintf("join for %s", h.EntryFee)) + "\n")
		}
	case payConfirm:
		sb.WriteString(goldStyle.Render(fmt.Sprintf("pay %d from your wallet (balance %d)?", m.fee, m.ledger.Balance())) + "\n")
		sb.WriteString(helpEntry("enter", "pay") + "  " + helpEntry("n", "cancel") + "\n")
	case payProcessing:
		sb.WriteString(dimStyle.Render("processing payment...") + "\n")
	case payDone:
		sb.WriteString(okStyle.Render("payment complete — you're in") + "\n")
	case payFailed:
		sb.WriteString(errStyle.Render(m.payErr) + "\n")
		sb.WriteString(helpEntry("enter", "try again") + "  " + helpEntry("esc", "back") + "\n")
	}

	if m.notice != "" {
		sb.WriteString("\n" + dimStyle.Render(m.notice))
	}

	return "\n" + border.Render(sb.String())
}

func (m hacksModel) helpKeys() string {
	if m.detail {
		return helpEntry("enter", "join") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("r", "refresh")
}
