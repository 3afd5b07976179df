package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/collectivehq/collective/pkg/domain"
)

func TestGetMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.User{ //nolint:errcheck
			Handle:   "marguerite",
			Verified: true,
			Balance:  120,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	me, err := c.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if me.Handle != "marguerite" {
		t.Errorf("Handle = %q, want %q", me.Handle, "marguerite")
	}
	if !me.Verified {
		t.Error("Verified = false, want true")
	}
}

func TestGetMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token")
	_, err := c.GetMe(context.Background())
	if err == nil {
		t.Fatal("expected error for unauthorized request")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 401") {
		t.Errorf("error = %q, want it to contain 'HTTP 401'", got)
	}
	if !IsStatus(err, 401) {
		t.Error("IsStatus(err, 401) = false, want true")
	}
}

func TestSetTokenReplacesBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(domain.User{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "first")
	if _, err := c.GetMe(context.Background()); err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if gotAuth != "Bearer first" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer first")
	}

	c.SetToken("second")
	if _, err := c.GetMe(context.Background()); err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if gotAuth != "Bearer second" {
		t.Errorf("Authorization after SetToken = %q, want %q", gotAuth, "Bearer second")
	}

	c.ClearToken()
	if _, err := c.GetMe(context.Background()); err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after ClearToken = %q, want empty", gotAuth)
	}
}

func TestVerifyEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/verify" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req["code"] != "123456" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
				"kind":    "validation_error",
				"message": "invalid code",
			})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.VerifyEmail(context.Background(), "123456"); err != nil {
		t.Fatalf("VerifyEmail(valid) error: %v", err)
	}

	err := c.VerifyEmail(context.Background(), "000000")
	if err == nil {
		t.Fatal("expected error for rejected code")
	}
	if !IsKind(err, KindValidation) {
		t.Errorf("IsKind(err, validation_error) = false for %v", err)
	}
	if got := Message(err); got != "invalid code" {
		t.Errorf("Message(err) = %q, want %q", got, "invalid code")
	}
}

func TestListHackathons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/hackathons" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("status"); got != "live" {
			t.Errorf("status query = %q, want %q", got, "live")
		}
		hacks := []domain.Hackathon{
			{Slug: "neon-jam", Title: "Neon Jam", Status: domain.HackathonLive, EntryFee: "€25"},
			{Slug: "paper-hack", Title: "Paper Hack", Status: domain.HackathonLive, EntryFee: "Free"},
		}
		json.NewEncoder(w).Encode(hacks) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	hacks, err := c.ListHackathons(context.Background(), "live", 50, 0)
	if err != nil {
		t.Fatalf("ListHackathons() error: %v", err)
	}
	if len(hacks) != 2 {
		t.Fatalf("got %d hackathons, want 2", len(hacks))
	}
	if hacks[0].Slug != "neon-jam" {
		t.Errorf("hacks[0].Slug = %q, want %q", hacks[0].Slug, "neon-jam")
	}
}

func TestCreateTeam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Team{ //nolint:errcheck
			Name:       req["name"],
			InviteCode: "XK42-PLUM",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	team, err := c.CreateTeam(context.Background(), "neon-jam", "night shift")
	if err != nil {
		t.Fatalf("CreateTeam() error: %v", err)
	}
	if team.Name != "night shift" {
		t.Errorf("team.Name = %q, want %q", team.Name, "night shift")
	}
	if team.InviteCode != "XK42-PLUM" {
		t.Errorf("team.InviteCode = %q, want %q", team.InviteCode, "XK42-PLUM")
	}
}

func TestVoteSubmission(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.VoteSubmission(context.Background(), "sub-1"); err != nil {
		t.Fatalf("VoteSubmission() error: %v", err)
	}
	if gotPath != "/api/submissions/sub-1/vote" || gotMethod != http.MethodPost {
		t.Errorf("request = %s %s, want POST /api/submissions/sub-1/vote", gotMethod, gotPath)
	}

	if err := c.UnvoteSubmission(context.Background(), "sub-1"); err != nil {
		t.Fatalf("UnvoteSubmission() error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("unvote method = %s, want DELETE", gotMethod)
	}
}

func TestHTTPErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.GetMe(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second)              // slow server
		json.NewEncoder(w).Encode(domain.User{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.GetMe(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestTokenConcurrentAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.User{Handle: "ada"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-1")

	// Requests read the token on their own goroutines while the update
	// loop rewrites it; meaningful under the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.GetMe(context.Background()) //nolint:errcheck
			}
		}()
	}
	for i := 0; i < 50; i++ {
		c.SetToken("tok-2")
		c.ClearToken()
	}
	wg.Wait()

	if got := c.Token(); got != "" {
		t.Errorf("Token() = %q, want cleared", got)
	}
}
