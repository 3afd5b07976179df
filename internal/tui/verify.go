package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/pkg/client"
)

// otpLen is the number of digit slots in a verification code.
const otpLen = 6

// resendCooldownSecs is the lockout after a successful resend.
const resendCooldownSecs = 60

type verifyState int

const (
	verifyEntering verifyState = iota
	verifySubmitting
	verifyDone
)

// verifyResultMsg carries the outcome of a code submission.
type verifyResultMsg struct {
	err error
}

// resendResultMsg carries the outcome of a resend request.
type resendResultMsg struct {
	err error
}

// cooldownTickMsg is the once-per-second resend cooldown tick. gen lets
// the model drop ticks scheduled before the view was left or the
// cooldown restarted.
type cooldownTickMsg struct {
	gen int
}

func cooldownTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{gen: gen}
	})
}

// verifyModel is the email verification screen: six digit slots, a
// submit action and a resend action behind a cooldown.
type verifyModel struct {
	client *client.Client
	logger *zap.SugaredLogger

	slots [otpLen]rune // 0 means empty
	focus int

	state          verifyState
	cooldown       int // seconds until resend unlocks
	resendInFlight bool
	tickGen        int

	email   string // where the code was sent, display only
	errMsg  string
	infoMsg string
	width   int
}

func newVerifyModel(c *client.Client, logger *zap.SugaredLogger) verifyModel {
	return verifyModel{client: c, logger: logger}
}

func (m verifyModel) Init() tea.Cmd {
	return nil
}

// verified reports whether the code was accepted; the app router watches
// this the way it watches overlay close flags.
func (m verifyModel) verified() bool {
	return m.state == verifyDone
}

// stop invalidates any pending cooldown tick. The app calls it when the
// view is left so a stale tick cannot mutate a dead view's state.
func (m verifyModel) stop() verifyModel {
	m.tickGen++
	m.cooldown = 0
	return m
}

// editSlot writes a single digit into the slot at index. Multi-rune and
// non-digit input is rejected wholesale. On accept, focus advances to the
// next slot (capped at the last one).
func editSlot(slots [otpLen]rune, index int, input string) ([otpLen]rune, int, bool) {
	runes := []rune(input)
	if len(runes) != 1 || runes[0] < '0' || runes[0] > '9' {
		return slots, index, false
	}
	slots[index] = runes[0]
	if index < otpLen-1 {
		index++
	}
	return slots, index, true
}

// slotBackspace clears the focused slot, or moves focus back one slot
// when it is already empty. It never deletes across slots.
func slotBackspace(slots [otpLen]rune, index int) ([otpLen]rune, int) {
	if slots[index] != 0 {
		slots[index] = 0
		return slots, index
	}
	if index > 0 {
		return slots, index - 1
	}
	return slots, index
}

// pasteCode distributes pasted text across the slots: digits are written
// left-to-right, non-digits are skipped individually, and anything past
// six digits is dropped. Focus lands on the first empty slot, or the
// last slot when the code is complete.
func pasteCode(slots [otpLen]rune, text string) ([otpLen]rune, int) {
	i := 0
	for _, r := range text {
		if i >= otpLen {
			break
		}
		if r >= '0' && r <= '9' {
			slots[i] = r
			i++
		}
	}
	for j := 0; j < otpLen; j++ {
		if slots[j] == 0 {
			return slots, j
		}
	}
	return slots, otpLen - 1
}

// assembleCode returns the 6-digit string, or "" while any slot is empty.
func assembleCode(slots [otpLen]rune) string {
	var b strings.Builder
	for _, r := range slots {
		if r == 0 {
			return ""
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m verifyModel) Update(msg tea.Msg) (verifyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyResultMsg:
		if m.state != verifySubmitting {
			return m, nil
		}
		if msg.err != nil {
			// One generic message regardless of cause; slots reset so
			// the user can retype immediately.
			m.state = verifyEntering
			m.slots = [otpLen]rune{}
			m.focus = 0
			m.errMsg = "invalid code, try again"
			m.logger.Debugw("verification rejected", "err", msg.err)
			return m, nil
		}
		m.state = verifyDone
		m.errMsg = ""
		m.infoMsg = ""
		return m, nil

	case resendResultMsg:
		m.resendInFlight = false
		m.slots = [otpLen]rune{}
		m.focus = 0
		m.state = verifyEntering
		if msg.err != nil {
			m.errMsg = "could not resend code, try again"
			m.infoMsg = ""
			m.logger.Debugw("resend failed", "err", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.infoMsg = "a new code is on its way"
		m.cooldown = resendCooldownSecs
		m.tickGen++
		return m, cooldownTickCmd(m.tickGen)

	case cooldownTickMsg:
		if msg.gen != m.tickGen || m.cooldown == 0 {
			return m, nil // cancelled or already expired
		}
		m.cooldown--
		if m.cooldown > 0 {
			return m, cooldownTickCmd(m.tickGen)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m verifyModel) updateKeys(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	// Inputs and actions are disabled for the duration of a submission.
	if m.state != verifyEntering {
		return m, nil
	}

	key := msg.String()
	switch key {
	case "backspace":
		m.slots, m.focus = slotBackspace(m.slots, m.focus)
		return m, nil
	case "left":
		if m.focus > 0 {
			m.focus--
		}
		return m, nil
	case "right":
		if m.focus < otpLen-1 {
			m.focus++
		}
		return m, nil
	case "enter":
		return m.submit()
	case "r":
		return m.resend()
	}

	runes := []rune(key)
	if len(runes) > 1 && !isNamedKey(key) {
		// Terminal paste arrives as one multi-rune key.
		m.slots, m.focus = pasteCode(m.slots, key)
		m.errMsg = ""
		return m, nil
	}

	var accepted bool
	if m.slots, m.focus, accepted = editSlot(m.slots, m.focus, key); accepted {
		m.errMsg = ""
	}
	return m, nil
}

// submit validates locally first: an incomplete code never reaches the
// collaborator.
func (m verifyModel) submit() (verifyModel, tea.Cmd) {
	code := assembleCode(m.slots)
	if code == "" {
		m.errMsg = "enter all 6 digits"
		return m, nil
	}

	m.state = verifySubmitting
	m.errMsg = ""
	m.infoMsg = ""
	c := m.client
	return m, func() tea.Msg {
		err := c.VerifyEmail(context.Background(), code)
		return verifyResultMsg{err: err}
	}
}

// resend is an idempotent no-op while cooling down or while a resend is
// already in flight; concurrent requests are never queued.
func (m verifyModel) resend() (verifyModel, tea.Cmd) {
	if m.cooldown > 0 || m.resendInFlight {
		return m, nil
	}

	m.resendInFlight = true
	m.errMsg = ""
	m.infoMsg = ""
	c := m.client
	return m, func() tea.Msg {
		err := c.ResendVerification(context.Background())
		return resendResultMsg{err: err}
	}
}

func (m verifyModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n " + selectedStyle.Render("Verify your email") + "\n")
	if m.email != "" {
		sb.WriteString(" " + dimStyle.Render("we sent a 6-digit code to "+m.email) + "\n")
	} else {
		sb.WriteString(" " + dimStyle.Render("we sent a 6-digit code to your inbox") + "\n")
	}
	sb.WriteString("\n ")

	for i, r := range m.slots {
		cell := "_"
		if r != 0 {
			cell = string(r)
		}
		if i == m.focus && m.state == verifyEntering {
			sb.WriteString(slotFocusStyle.Render("["+cell+"]") + " ")
		} else {
			sb.WriteString(slotStyle.Render("["+cell+"]") + " ")
		}
	}
	sb.WriteString("\n\n")

	switch {
	case m.state == verifySubmitting:
		sb.WriteString(" " + dimStyle.Render("verifying..."))
	case m.state == verifyDone:
		sb.WriteString(" " + okStyle.Render("verified"))
	case m.errMsg != "":
		sb.WriteString(" " + errStyle.Render(m.errMsg))
	case m.infoMsg != "":
		sb.WriteString(" " + okStyle.Render(m.infoMsg))
	}
	sb.WriteString("\n\n")

	switch {
	case m.resendInFlight:
		sb.WriteString(" " + dimStyle.Render("sending a new code..."))
	case m.cooldown > 0:
		sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("resend available in %ds", m.cooldown)))
	default:
		sb.WriteString(" " + helpEntry("r", "resend code"))
	}

	return sb.String()
}

func (m verifyModel) helpKeys() string {
	return helpEntry("0-9", "type code") + "  " + helpEntry("enter", "verify") + "  " + helpEntry("r", "resend") + "  " + helpEntry("q", "quit")
}
