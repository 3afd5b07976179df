package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/pkg/client"
	"github.com/collectivehq/collective/pkg/domain"
)

type entriesLoadedMsg struct {
	hackathonID string
	entries     []domain.Submission
	err         error
}

// voteResultMsg reports the server's verdict on a vote toggle. The list
// was already updated optimistically; an error rolls it back.
type voteResultMsg struct {
	id    string
	voted bool
	err   error
}

type entrySubmittedMsg struct {
	entry *domain.Submission
	err   error
}

// entryForm holds the submit-entry fields while the form is open.
type entryForm struct {
	fields [4]string // title, summary, repo URL, demo URL
	focus  int
}

var entryFormLabels = [4]string{"title", "summary", "repo url", "demo url"}

type entriesModel struct {
	client *client.Client
	logger *zap.SugaredLogger

	hackathonID string
	teamID      string
	entries     []domain.Submission
	cursor      int
	loading     bool
	err         string
	notice      string

	form       *entryForm
	submitting bool
}

func newEntriesModel(c *client.Client, logger *zap.SugaredLogger) entriesModel {
	return entriesModel{client: c, logger: logger}
}

func (m *entriesModel) setHackathon(id string) tea.Cmd {
	if id == m.hackathonID {
		return nil
	}
	m.hackathonID = id
	m.entries = nil
	m.cursor = 0
	m.err = ""
	m.notice = ""
	m.loading = true
	return m.load()
}

func (m entriesModel) load() tea.Cmd {
	c := m.client
	id := m.hackathonID
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := c.ListSubmissions(context.Background(), id, pageSize, 0)
		return entriesLoadedMsg{hackathonID: id, entries: entries, err: err}
	}
}

func (m entriesModel) editing() bool {
	return m.form != nil
}

func (m entriesModel) selected() *domain.Submission {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return &m.entries[m.cursor]
}

func (m *entriesModel) byID(id string) *domain.Submission {
	for i := range m.entries {
		if m.entries[i].ID.String() == id {
			return &m.entries[i]
		}
	}
	return nil
}

func (m entriesModel) Update(msg tea.Msg) (entriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.hackathonID != m.hackathonID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.entries = msg.entries
			m.err = ""
			if m.cursor >= len(m.entries) {
				m.cursor = 0
			}
		}
		return m, nil

	case voteResultMsg:
		if msg.err == nil {
			return m, nil
		}
		// Roll the optimistic toggle back.
		if e := m.byID(msg.id); e != nil {
			e.HasVoted = !msg.voted
			if msg.voted {
				e.Votes--
			} else {
				e.Votes++
			}
		}
		m.err = client.Message(msg.err)
		return m, nil

	case entrySubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
			return m, nil
		}
		m.err = ""
		m.notice = "entry submitted"
		m.logger.Infow("entry submitted", "title", msg.entry.Title)
		return m, m.load()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m entriesModel) updateKeys(msg tea.KeyMsg) (entriesModel, tea.Cmd) {
	if m.form != nil {
		return m.updateFormKeys(msg)
	}
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "v":
		return m.toggleVote()
	case "n":
		if m.hackathonID != "" {
			m.form = &entryForm{}
			m.notice = ""
			m.err = ""
		}
	case "r":
		return m, m.load()
	}
	return m, nil
}

// toggleVote flips the vote locally first, then tells the server. The
// voteResultMsg handler reverts on failure.
func (m entriesModel) toggleVote() (entriesModel, tea.Cmd) {
	e := m.selected()
	if e == nil {
		return m, nil
	}
	id := e.ID.String()
	voted := !e.HasVoted
	e.HasVoted = voted
	if voted {
		e.Votes++
	} else {
		e.Votes--
	}
	c := m.client
	return m, func() tea.Msg {
		var err error
		if voted {
			err = c.VoteSubmission(context.Background(), id)
		} else {
			err = c.UnvoteSubmission(context.Background(), id)
		}
		return voteResultMsg{id: id, voted: voted, err: err}
	}
}

func (m entriesModel) updateFormKeys(msg tea.KeyMsg) (entriesModel, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		return m, nil
	case "shift+tab", "up":
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if f.focus == len(f.fields)-1 {
			return m.submitForm()
		}
		f.focus++
		return m, nil
	default:
		f.fields[f.focus] = editRune(f.fields[f.focus], msg.String())
		return m, nil
	}
}

func (m entriesModel) submitForm() (entriesModel, tea.Cmd) {
	f := m.form
	title := strings.TrimSpace(f.fields[0])
	if title == "" {
		m.err = "title is required"
		return m, nil
	}
	req := client.SubmitEntryRequest{
		HackathonID: m.hackathonID,
		TeamID:      m.teamID,
		Title:       title,
		Summary:     strings.TrimSpace(f.fields[1]),
		RepoURL:     strings.TrimSpace(f.fields[2]),
		DemoURL:     strings.TrimSpace(f.fields[3]),
	}
	m.form = nil
	m.submitting = true
	m.err = ""
	c := m.client
	return m, func() tea.Msg {
		entry, err := c.SubmitEntry(context.Background(), req)
		return entrySubmittedMsg{entry: entry, err: err}
	}
}

func (m entriesModel) View() string {
	if m.form != nil {
		return m.formView()
	}

	var sb strings.Builder
	sb.WriteString("\n")

	if m.hackathonID == "" {
		sb.WriteString(" " + dimStyle.Render("pick a hackathon first (tab 1)") + "\n")
		return sb.String()
	}

	switch {
	case m.loading && len(m.entries) == 0:
		sb.WriteString(" " + dimStyle.Render("loading entries...") + "\n")
	case len(m.entries) == 0:
		sb.WriteString(" " + dimStyle.Render("no entries yet — press n to submit one") + "\n")
	default:
		for i, e := range m.entries {
			cursor := "  "
			title := normalStyle.Render(truncStr(e.Title, 36))
			if i == m.cursor {
				cursor = accentStyle.Render("> ")
				title = selectedStyle.Render(truncStr(e.Title, 36))
			}
			heart := dimStyle.Render("♡")
			if e.HasVoted {
				heart = errStyle.Render("♥")
			}
			sb.WriteString(fmt.Sprintf(" %s%-44s %s %-4s %s\n",
				cursor, title, heart,
				metaStyle.Render(fmt.Sprintf("%d", e.Votes)),
				metaStyle.Render(truncStr(e.TeamName, 20))))
			if i == m.cursor && e.Summary != "" {
				sb.WriteString("     " + dimStyle.Render(truncStr(e.Summary, 70)) + "\n")
			}
		}
	}

	if m.submitting {
		sb.WriteString("\n " + dimStyle.Render("submitting...") + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n " + errStyle.Render(m.err) + "\n")
	}
	if m.notice != "" {
		sb.WriteString("\n " + okStyle.Render(m.notice) + "\n")
	}
	return sb.String()
}

func (m entriesModel) formView() string {
	f := m.form
	var sb strings.Builder
	sb.WriteString("\n " + selectedStyle.Render("submit entry") + "\n\n")
	for i, label := range entryFormLabels {
		marker := "  "
		value := normalStyle.Render(f.fields[i])
		if i == f.focus {
			marker = accentStyle.Render("> ")
			value += accentStyle.Render("|")
		}
		sb.WriteString(fmt.Sprintf(" %s%s %s\n", marker, metaStyle.Render(fmt.Sprintf("%-9s", label)), value))
	}
	if m.err != "" {
		sb.WriteString("\n " + errStyle.Render(m.err) + "\n")
	}
	sb.WriteString("\n " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "cancel") + "\n")
	return sb.String()
}

func (m entriesModel) helpKeys() string {
	if m.form != nil {
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("v", "vote") + "  " + helpEntry("n", "submit entry") + "  " + helpEntry("r", "refresh")
}
