package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/collectivehq/collective/internal/logging"
	"github.com/collectivehq/collective/pkg/client"
	"github.com/collectivehq/collective/pkg/domain"
)

func newTestTeams(c *client.Client) teamsModel {
	m := newTeamsModel(c, logging.Discard())
	m.hackathonID = "retro-jam"
	return m
}

func TestCreateTeamFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			var body struct {
				Name string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			json.NewEncoder(w).Encode(domain.Team{ID: uuid.New(), Name: body.Name}) //nolint:errcheck
		default:
			w.Write([]byte(`[]`)) //nolint:errcheck
		}
	}))
	defer srv.Close()

	m := newTestTeams(client.New(srv.URL, "tok"))
	m, _ = m.Update(keyMsg("n"))
	if m.input != teamsInputName {
		t.Fatal("name input did not open")
	}

	for _, r := range "night shift" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, cmd := m.Update(keyMsg("enter"))
	if m.editing() || !m.saving {
		t.Fatal("enter should close the input and start saving")
	}
	m, _ = m.Update(cmd())
	if m.saving {
		t.Fatal("saving flag not cleared")
	}
	if !strings.Contains(m.notice, "night shift") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestJoinTeamByInviteCode(t *testing.T) {
	var gotCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var body struct {
				InviteCode string `json:"invite_code"`
			}
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			gotCode = body.InviteCode
			json.NewEncoder(w).Encode(domain.Team{ID: uuid.New(), Name: "night shift"}) //nolint:errcheck
			return
		}
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer srv.Close()

	m := newTestTeams(client.New(srv.URL, "tok"))
	m, _ = m.Update(keyMsg("i"))
	if m.input != teamsInputCode {
		t.Fatal("invite input did not open")
	}
	for _, r := range "HX7Q2B" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	if gotCode != "HX7Q2B" {
		t.Fatalf("invite code = %q", gotCode)
	}
	if m.err != "" {
		t.Fatalf("err = %q", m.err)
	}
}

func TestTeamInputEscCancels(t *testing.T) {
	m := newTestTeams(client.New("http://127.0.0.1:0", "tok"))
	m, _ = m.Update(keyMsg("n"))
	for _, r := range "abc" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, _ = m.Update(keyMsg("esc"))
	if m.editing() || m.text != "" {
		t.Fatal("esc should discard the input")
	}
}

func TestEmptyTeamNameNotSubmitted(t *testing.T) {
	m := newTestTeams(client.New("http://127.0.0.1:0", "tok"))
	m, _ = m.Update(keyMsg("n"))
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil || !m.editing() {
		t.Fatal("empty name should keep the input open")
	}
}

func TestStaleTeamsLoadDropped(t *testing.T) {
	m := newTestTeams(client.New("http://127.0.0.1:0", "tok"))
	m, _ = m.Update(teamsLoadedMsg{hackathonID: "other-jam", teams: []domain.Team{{Name: "ghosts"}}})
	if len(m.teams) != 0 {
		t.Fatal("load for a different hackathon should be dropped")
	}
}
