package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/collectivehq/collective/internal/browser"
	"github.com/collectivehq/collective/internal/config"
	"github.com/collectivehq/collective/internal/logging"
	"github.com/collectivehq/collective/internal/session"
	"github.com/collectivehq/collective/internal/tui"
	"github.com/collectivehq/collective/internal/wallet"
	"github.com/collectivehq/collective/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// openingBalance seeds the demo wallet until the profile loads.
const openingBalance = 100

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("collective " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(cfg)
		case "logout":
			return runLogout()
		}
	}

	logPath, err := logging.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	c := client.New(cfg.APIURL, "")
	store, err := newStore(c)
	if err != nil {
		return err
	}

	// Token precedence: env/config over file.
	token := cfg.Token
	if token == "" {
		token = store.Get()
	}
	if token == "" {
		printDoorGreeting()
		return nil
	}
	c.SetToken(token)

	ledger := wallet.NewLedger(uuid.New(), openingBalance, "EUR",
		wallet.WithLatency(400*time.Millisecond),
		wallet.WithLogger(logger))

	app := tui.NewApp(c, store, ledger, logger, cfg.BaseURL, version, true)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func newStore(c *client.Client) (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve token path: %w", err)
	}
	return session.New(path, c), nil
}

func runLogin(cfg config.Config) error {
	// Ephemeral localhost server on a random port for the callback.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck

	port := listener.Addr().(*net.TCPAddr).Port
	tokenCh := make(chan string, 1)
	errCh := make(chan error, 1)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return fmt.Errorf("generate oauth state: %w", err)
	}
	expectedState := hex.EncodeToString(stateBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != expectedState {
			http.Error(w, "invalid state", http.StatusForbidden)
			errCh <- fmt.Errorf("callback state mismatch (possible CSRF)")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("callback received without code")
			return
		}
		// Trade the one-time code for a session token.
		body, err := json.Marshal(map[string]string{"code": code})
		if err != nil {
			http.Error(w, "marshal failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange marshal: %w", err)
			return
		}
		resp, err := http.Post(cfg.APIURL+"/auth/cli-exchange", "application/json", bytes.NewReader(body))
		if err != nil {
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange: %w", err)
			return
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // best-effort read for error message
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange: HTTP %d: %s", resp.StatusCode, string(raw))
			return
		}
		var result struct {
			Token string `json:"token"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&result); decErr != nil || result.Token == "" {
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange: invalid response")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackHTML) //nolint:errcheck
		tokenCh <- result.Token
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && srvErr != http.ErrServerClosed {
			errCh <- srvErr
		}
	}()

	loginParams := url.Values{}
	loginParams.Set("cli_port", strconv.Itoa(port))
	loginParams.Set("state", expectedState)
	loginURL := cfg.BaseURL + "/auth/github/login?" + loginParams.Encode()

	fmt.Printf("Opening browser to authenticate...\n")
	if err := browser.Open(loginURL); err != nil {
		fmt.Printf("Could not open browser. Visit this URL manually:\n  %s\n", loginURL)
	}

	select {
	case tok := <-tokenCh:
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck

		c := client.New(cfg.APIURL, "")
		store, err := newStore(c)
		if err != nil {
			return err
		}
		if err := store.Set(tok); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		me, err := c.GetMe(context.Background())
		if err != nil {
			fmt.Printf("Token saved but verification failed: %v\n", err)
			return nil
		}
		fmt.Printf("Authenticated as @%s\n", me.Handle)
		if !me.Verified {
			fmt.Println("Your email is not verified yet — the app will ask for your code.")
		}
		fmt.Println()
		fmt.Println("Run `collective` to enter.")
		return nil

	case srvErr := <-errCh:
		return fmt.Errorf("callback server error: %w", srvErr)

	case <-time.After(2 * time.Minute):
		return fmt.Errorf("login timed out — no callback received within 2 minutes")
	}
}

func runLogout() error {
	path, err := session.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve token path: %w", err)
	}
	store := session.New(path, nil)
	if store.Get() == "" {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>COLLECTIVE</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{
  background:#0b0b12;color:#e6e6f0;
  font-family:'SF Mono','Consolas',monospace;
  height:100vh;display:flex;align-items:center;justify-content:center;
}
.card{text-align:center}
.logo{
  font-size:28px;font-weight:700;letter-spacing:8px;
  text-transform:uppercase;margin-bottom:24px;
}
.logo span{display:inline-block;animation:shimmer 3s ease-in-out infinite}
.logo span:nth-child(odd){color:#8b5cf6}
.logo span:nth-child(even){color:#c4b5fd}
@keyframes shimmer{
  0%,100%{opacity:.6}
  50%{opacity:1}
}
.msg{font-size:14px;color:#34d474;font-weight:600;margin-bottom:8px}
.sub{font-size:12px;color:#505868}
</style>
</head>
<body>
<div class="card">
  <div class="logo">
    <span>C</span><span>O</span><span>L</span><span>L</span><span>E</span><span>C</span><span>T</span><span>I</span><span>V</span><span>E</span>
  </div>
  <div class="msg">authenticated</div>
  <div class="sub">return to your terminal</div>
</div>
</body>
</html>`
