package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/pkg/client"
	"github.com/collectivehq/collective/pkg/domain"
)

type teamsLoadedMsg struct {
	hackathonID string
	teams       []domain.Team
	err         error
}

type teamSavedMsg struct {
	team *domain.Team
	err  error
}

type inviteCopiedMsg struct {
	err error
}

// teamsInput is which text field, if any, the teams view is editing.
type teamsInput int

const (
	teamsInputNone teamsInput = iota
	teamsInputName
	teamsInputCode
)

type teamsModel struct {
	client *client.Client
	logger *zap.SugaredLogger

	hackathonID string
	teams       []domain.Team
	cursor      int
	loading     bool
	saving      bool
	err         string
	notice      string

	input teamsInput
	text  string
}

func newTeamsModel(c *client.Client, logger *zap.SugaredLogger) teamsModel {
	return teamsModel{client: c, logger: logger}
}

// setHackathon points the view at a hackathon and reloads its teams.
func (m *teamsModel) setHackathon(id string) tea.Cmd {
	if id == m.hackathonID {
		return nil
	}
	m.hackathonID = id
	m.teams = nil
	m.cursor = 0
	m.err = ""
	m.notice = ""
	m.loading = true
	return m.load()
}

func (m teamsModel) load() tea.Cmd {
	c := m.client
	id := m.hackathonID
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		teams, err := c.ListTeams(context.Background(), id)
		return teamsLoadedMsg{hackathonID: id, teams: teams, err: err}
	}
}

func (m teamsModel) editing() bool {
	return m.input != teamsInputNone
}

func (m teamsModel) selected() *domain.Team {
	if m.cursor < 0 || m.cursor >= len(m.teams) {
		return nil
	}
	return &m.teams[m.cursor]
}

func (m teamsModel) Update(msg tea.Msg) (teamsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case teamsLoadedMsg:
		if msg.hackathonID != m.hackathonID {
			return m, nil // answer for a hackathon we already left
		}
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.teams = msg.teams
			m.err = ""
			if m.cursor >= len(m.teams) {
				m.cursor = 0
			}
		}
		return m, nil

	case teamSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
			return m, nil
		}
		m.err = ""
		m.notice = "welcome to " + msg.team.Name
		m.logger.Infow("team saved", "team", msg.team.Name)
		return m, m.load()

	case inviteCopiedMsg:
		if msg.err != nil {
			m.notice = "could not copy invite code"
		} else {
			m.notice = "invite code copied"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m teamsModel) updateKeys(msg tea.KeyMsg) (teamsModel, tea.Cmd) {
	if m.editing() {
		return m.updateInputKeys(msg)
	}
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.teams)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		if m.hackathonID != "" {
			m.input = teamsInputName
			m.text = ""
			m.notice = ""
		}
	case "i":
		m.input = teamsInputCode
		m.text = ""
		m.notice = ""
	case "c":
		if t := m.selected(); t != nil && t.InviteCode != "" {
			code := t.InviteCode
			return m, func() tea.Msg {
				return inviteCopiedMsg{err: clipboard.WriteAll(code)}
			}
		}
	case "r":
		return m, m.load()
	}
	return m, nil
}

func (m teamsModel) updateInputKeys(msg tea.KeyMsg) (teamsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = teamsInputNone
		m.text = ""
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.text)
		if text == "" {
			return m, nil
		}
		input := m.input
		m.input = teamsInputNone
		m.text = ""
		m.saving = true
		c := m.client
		hackathonID := m.hackathonID
		if input == teamsInputName {
			return m, func() tea.Msg {
				team, err := c.CreateTeam(context.Background(), hackathonID, text)
				return teamSavedMsg{team: team, err: err}
			}
		}
		return m, func() tea.Msg {
			team, err := c.JoinTeam(context.Background(), text)
			return teamSavedMsg{team: team, err: err}
		}
	default:
		m.text = editRune(m.text, msg.String())
		return m, nil
	}
}

func (m teamsModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")

	if m.hackathonID == "" {
		sb.WriteString(" " + dimStyle.Render("pick a hackathon first (tab 1)") + "\n")
		return sb.String()
	}

	switch {
	case m.loading && len(m.teams) == 0:
		sb.WriteString(" " + dimStyle.Render("loading teams...") + "\n")
	case len(m.teams) == 0:
		sb.WriteString(" " + dimStyle.Render("no teams yet — press n to start one") + "\n")
	default:
		for i, t := range m.teams {
			cursor := "  "
			name := normalStyle.Render(truncStr(t.Name, 30))
			if i == m.cursor {
				cursor = accentStyle.Render("> ")
				name = selectedStyle.Render(truncStr(t.Name, 30))
			}
			members := make([]string, 0, len(t.Members))
			for _, mem := range t.Members {
				h := mem.Handle
				if mem.Role == "captain" {
					h = h + "*"
				}
				members = append(members, h)
			}
			sb.WriteString(" " + cursor + name + "  " +
				metaStyle.Render(strings.Join(members, ", ")))
			if i == m.cursor && t.InviteCode != "" {
				sb.WriteString("  " + goldStyle.Render(t.InviteCode))
			}
			sb.WriteString("\n")
		}
	}

	if m.saving {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n " + errStyle.Render(m.err) + "\n")
	}
	if m.notice != "" {
		sb.WriteString("\n " + okStyle.Render(m.notice) + "\n")
	}

	switch m.input {
	case teamsInputName:
		sb.WriteString("\n " + metaStyle.Render("team name: ") + normalStyle.Render(m.text) + accentStyle.Render("|") + "\n")
	case teamsInputCode:
		sb.WriteString("\n " + metaStyle.Render("invite code: ") + normalStyle.Render(m.text) + accentStyle.Render("|") + "\n")
	}

	return sb.String()
}

func (m teamsModel) helpKeys() string {
	if m.editing() {
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("n", "new team") + "  " + helpEntry("i", "join by code") + "  " + helpEntry("c", "copy invite")
}
