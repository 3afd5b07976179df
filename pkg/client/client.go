package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/collectivehq/collective/pkg/domain"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token returned by register/login/verify.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

// SubmitEntryRequest is the payload for submitting a hackathon entry.
type SubmitEntryRequest struct {
	HackathonID string `json:"hackathon_id"`
	TeamID      string `json:"team_id,omitempty"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	RepoURL     string `json:"repo_url,omitempty"`
	DemoURL     string `json:"demo_url,omitempty"`
}

// Client is the COLLECTIVE API client. The bearer token it holds is
// attached to every outbound request until changed via SetToken/ClearToken.
// The token may be cleared from the update loop while request goroutines
// are in flight, so access goes through a mutex.
type Client struct {
	baseURL    string
	mu         sync.RWMutex
	token      string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used for all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token; subsequent requests go out unauthenticated.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Token returns the bearer token currently attached to outbound requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Auth ---

// Register creates a new account. The returned token is unverified until
// the email code is confirmed via VerifyEmail.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// VerifyEmail submits the 6-digit verification code for the current session.
func (c *Client) VerifyEmail(ctx context.Context, code string) error {
	if err := c.post(ctx, "/api/auth/verify", map[string]string{"code": code}, nil); err != nil {
		return fmt.Errorf("client.VerifyEmail: %w", err)
	}
	return nil
}

// ResendVerification requests a fresh verification code for the current session.
func (c *Client) ResendVerification(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/verify/resend", nil, nil); err != nil {
		return fmt.Errorf("client.ResendVerification: %w", err)
	}
	return nil
}

// GetMe returns the authenticated user's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/me", &u); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &u, nil
}

// --- Hackathons ---

// ListHackathons fetches hackathons with optional status filter.
func (c *Client) ListHackathons(ctx context.Context, status string, limit, offset int) ([]domain.Hackathon, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var hacks []domain.Hackathon
	if err := c.get(ctx, "/api/hackathons?"+params.Encode(), &hacks); err != nil {
		return nil, fmt.Errorf("client.ListHackathons: %w", err)
	}
	return hacks, nil
}

// GetHackathon fetches a single hackathon by ID or slug.
func (c *Client) GetHackathon(ctx context.Context, id string) (*domain.Hackathon, error) {
	var h domain.Hackathon
	if err := c.get(ctx, "/api/hackathons/"+url.PathEscape(id), &h); err != nil {
		return nil, fmt.Errorf("client.GetHackathon: %w", err)
	}
	return &h, nil
}

// JoinHackathon registers the current user as a participant.
func (c *Client) JoinHackathon(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/hackathons/"+url.PathEscape(id)+"/join", nil, nil); err != nil {
		return fmt.Errorf("client.JoinHackathon: %w", err)
	}
	return nil
}

// LeaveHackathon withdraws the current user from a hackathon.
func (c *Client) LeaveHackathon(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/hackathons/"+url.PathEscape(id)+"/join", nil, nil); err != nil {
		return fmt.Errorf("client.LeaveHackathon: %w", err)
	}
	return nil
}

// --- Teams ---

// ListTeams returns the teams registered for a hackathon.
func (c *Client) ListTeams(ctx context.Context, hackathonID string) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.get(ctx, "/api/hackathons/"+url.PathEscape(hackathonID)+"/teams", &teams); err != nil {
		return nil, fmt.Errorf("client.ListTeams: %w", err)
	}
	return teams, nil
}

// CreateTeam creates a team in a hackathon with the caller as captain.
func (c *Client) CreateTeam(ctx context.Context, hackathonID, name string) (*domain.Team, error) {
	var team domain.Team
	if err := c.post(ctx, "/api/hackathons/"+url.PathEscape(hackathonID)+"/teams", map[string]string{"name": name}, &team); err != nil {
		return nil, fmt.Errorf("client.CreateTeam: %w", err)
	}
	return &team, nil
}

// JoinTeam joins a team by its invite code.
func (c *Client) JoinTeam(ctx context.Context, inviteCode string) (*domain.Team, error) {
	var team domain.Team
	if err := c.post(ctx, "/api/teams/join", map[string]string{"invite_code": inviteCode}, &team); err != nil {
		return nil, fmt.Errorf("client.JoinTeam: %w", err)
	}
	return &team, nil
}

// LeaveTeam removes the caller from a team.
func (c *Client) LeaveTeam(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/teams/"+url.PathEscape(id)+"/members/me", nil, nil); err != nil {
		return fmt.Errorf("client.LeaveTeam: %w", err)
	}
	return nil
}

// --- Submissions ---

// ListSubmissions returns the entries submitted to a hackathon.
func (c *Client) ListSubmissions(ctx context.Context, hackathonID string, limit, offset int) ([]domain.Submission, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var subs []domain.Submission
	if err := c.get(ctx, "/api/hackathons/"+url.PathEscape(hackathonID)+"/submissions?"+params.Encode(), &subs); err != nil {
		return nil, fmt.Errorf("client.ListSubmissions: %w", err)
	}
	return subs, nil
}

// SubmitEntry submits a new entry.
func (c *Client) SubmitEntry(ctx context.Context, req SubmitEntryRequest) (*domain.Submission, error) {
	var sub domain.Submission
	if err := c.post(ctx, "/api/submissions", req, &sub); err != nil {
		return nil, fmt.Errorf("client.SubmitEntry: %w", err)
	}
	return &sub, nil
}

// VoteSubmission casts the caller's vote for an entry.
func (c *Client) VoteSubmission(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/submissions/"+url.PathEscape(id)+"/vote", nil, nil); err != nil {
		return fmt.Errorf("client.VoteSubmission: %w", err)
	}
	return nil
}

// UnvoteSubmission removes the caller's vote from an entry.
func (c *Client) UnvoteSubmission(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/submissions/"+url.PathEscape(id)+"/vote", nil, nil); err != nil {
		return fmt.Errorf("client.UnvoteSubmission: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Kind: apiErr.Kind, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
