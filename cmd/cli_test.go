package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/pitchside/internal/config"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "kane@example.com"
	testPassword = "secret-pass"
)

func TestVersionRunsWithoutConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.HomeEnv, home)
	t.Setenv("PITCHSIDE_API_BASE_URL", "not a url")

	stdout, _, err := runCLI(context.Background(), strings.NewReader(""), "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func TestInvalidConfigNamesTheKey(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv("PITCHSIDE_CHAT_MAX_ATTEMPTS", "-2")

	_, _, err := env.run("status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.max_attempts")
}

func TestStatusWhenSignedOut(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
	assert.Contains(t, stdout, "refresh cookie: none")
}

func TestLoginPersistsSessionAcrossRuns(t *testing.T) {
	env := newCLIEnv(t)

	stdout, stderr, err := env.run("login", "--email", testEmail, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Kane Williamson (Organizer)")
	assert.Contains(t, stderr, "Signing in")

	stdout, _, err = env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Kane Williamson (kane@example.com)")
	assert.Contains(t, stdout, "role: Organizer")
	assert.Contains(t, stdout, "refresh cookie: present")
	assert.Contains(t, stdout, "expires in")

	stdout, _, err = env.run("status", "--json")
	require.NoError(t, err)
	var out statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.SignedIn)
	require.NotNil(t, out.User)
	assert.Equal(t, "7", out.User.ID)
	assert.Equal(t, "organizer", out.User.Role)
	assert.True(t, out.AccessCookie)
	assert.True(t, out.RefreshCookie)
}

func TestLoginReadsCredentialsFromInput(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.runWithInput(strings.NewReader(testEmail+"\n"+testPassword+"\n"), "login")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Kane Williamson")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("login", "--email", testEmail, "--password", "wrong-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Zero(t, env.backend.refreshes.Load())

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestSignUpDoesNotSignIn(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run("signup", "--username", "fan1", "--email", "fan1@example.com", "--password", "long-enough", "--role", "fan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Registered fan1 as Fan")

	stdout, _, err = env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestStatusVerifyRefreshesExpiredAccessCookie(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.expireAccess()

	stdout, _, err := env.run("status", "--verify")
	require.NoError(t, err)
	assert.Contains(t, stdout, "verified: yes")
	assert.Equal(t, int32(1), env.backend.refreshes.Load())

	// The rotated cookie was persisted, so the next run needs no refresh.
	_, _, err = env.run("status", "--verify")
	require.NoError(t, err)
	assert.Equal(t, int32(1), env.backend.refreshes.Load())
}

func TestStatusVerifyTearsDownWhenRefreshIsRejected(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.expireAccess()
	env.backend.rejectRefresh.Store(true)

	_, stderr, err := env.run("status", "--verify")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredSession)
	assert.Contains(t, stderr, "Your session has expired")

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
	assert.Contains(t, stdout, "refresh cookie: none")
	assert.NoFileExists(t, filepath.Join(env.home, "session.toml"))
}

func TestRejectedRefreshOnPublicViewKeepsSession(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.expireAccess()
	env.backend.rejectRefresh.Store(true)

	_, stderr, err := env.run("api", "GET", "/auth/me", "--view", "/tournaments")
	require.Error(t, err)
	assert.NotContains(t, stderr, "Your session has expired")

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Kane Williamson")
}

func TestBlockedAccountIsSignedOutEverywhere(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.blocked.Store(true)

	_, stderr, err := env.run("api", "GET", "/auth/me", "--view", "/tournaments")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBlockedAccount)
	assert.Contains(t, stderr, "inactive or blocked")
	assert.Zero(t, env.backend.refreshes.Load())

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestAPICommandPrintsJSON(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	stdout, _, err := env.run("api", "get", "/auth/me")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"username\": \"kane\"")

	_, _, err = env.run("api", "TRACE", "/auth/me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported method")

	_, _, err = env.run("api", "POST", "/tournaments/", "--data", "{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--data must be valid JSON")
}

func TestLogoutClearsSession(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	stdout, stderr, err := env.run("logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out.")
	assert.Contains(t, stderr, "Redirected to /signin")
	assert.Equal(t, int32(1), env.backend.logouts.Load())

	stdout, _, err = env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestTournamentsListIsPublic(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run("tournaments", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "Summer Cup")
	assert.Contains(t, stdout, "2026-06-01 to 2026-06-20")
}

func TestTournamentsCreateRequiresManagerSession(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("tournaments", "create", "--name", "Winter League")
	require.ErrorIs(t, err, domain.ErrNoSession)

	env.login(t)
	stdout, _, err := env.run("tournaments", "create",
		"--name", "Winter League",
		"--location", "Oval",
		"--start", "2026-12-01",
		"--end", "2026-12-24",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created tournament Winter League (12)")

	_, _, err = env.run("tournaments", "create", "--name", "Bad", "--start", "01/12/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start must be a date")
}

func TestMatchLiveIsPublic(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run("match", "live", "9")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"home\": \"Lions\"")
}

func TestChatRequiresSession(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("chat", "9")
	require.ErrorIs(t, err, domain.ErrNoSession)
	assert.Contains(t, err.Error(), "pitchside login")
	assert.Zero(t, env.backend.chatDials.Load())
}

func TestChatPrintsMessagesAndSendsInput(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout := &lockedBuffer{}
	errCh := make(chan error, 1)
	go func() {
		errCh <- executeCLI(ctx, strings.NewReader("hello from the stands\n"), stdout, io.Discard, "chat", "9")
	}()

	require.Eventually(t, func() bool {
		out := stdout.String()
		return strings.Contains(out, "Welcome to match 9") && strings.Contains(out, "hello from the stands")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	require.NoError(t, <-errCh)
	out := stdout.String()
	assert.Contains(t, out, "umpire")
	assert.Contains(t, out, "connected to match 9 chat")
	assert.Equal(t, 1, strings.Count(out, "Welcome to match 9"))
}

func TestChatGivesUpAfterMaxAttempts(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.rejectChat.Store(true)

	_, _, err := env.run("chat", "9", "--max-attempts", "1", "--connect-timeout", "5s")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChannelClosed)
	assert.Contains(t, err.Error(), "connect to match 9 chat")
	assert.Equal(t, int32(2), env.backend.chatDials.Load())
}

func TestChatStopsWhenSessionCannotBeRenewed(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.backend.rejectChat.Store(true)
	env.backend.rejectRefresh.Store(true)

	_, stderr, err := env.run("chat", "9", "--connect-timeout", "5s")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChannelClosed)
	assert.Equal(t, int32(1), env.backend.chatDials.Load())
	assert.Equal(t, int32(1), env.backend.refreshes.Load())
	// The match page is public, so the stored session survives.
	assert.NotContains(t, stderr, "Your session has expired")
}

type cliEnv struct {
	home    string
	backend *fakeBackend
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	backend := newFakeBackend(t)
	userHome := t.TempDir()
	home := filepath.Join(userHome, ".pitchside")
	t.Setenv("HOME", userHome)
	t.Setenv(config.HomeEnv, home)
	t.Setenv("PITCHSIDE_API_BASE_URL", backend.server.URL+"/api")
	t.Setenv("PITCHSIDE_CREDENTIALS_BACKEND", "file")
	t.Setenv("PITCHSIDE_CHAT_RECONNECT_DELAY", "20ms")

	return &cliEnv{home: home, backend: backend}
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	return runCLI(context.Background(), strings.NewReader(""), args...)
}

func (e *cliEnv) runWithInput(stdin io.Reader, args ...string) (string, string, error) {
	return runCLI(context.Background(), stdin, args...)
}

func (e *cliEnv) login(t *testing.T) {
	t.Helper()
	_, stderr, err := e.run("login", "--email", testEmail, "--password", testPassword)
	require.NoError(t, err, "stderr: %s", stderr)
}

func runCLI(ctx context.Context, stdin io.Reader, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := executeCLI(ctx, stdin, stdout, stderr, args...)
	return stdout.String(), stderr.String(), err
}

func executeCLI(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	root := newRootCmd()
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeBackend is a small cookie-session API with a chat socket.
type fakeBackend struct {
	t        *testing.T
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu      sync.Mutex
	access  string
	refresh string
	issued  int

	rejectRefresh atomic.Bool
	rejectChat    atomic.Bool
	blocked       atomic.Bool
	refreshes     atomic.Int32
	logouts       atomic.Int32
	chatDials     atomic.Int32
	chatSeq       atomic.Int64
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{t: t}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signin", b.handleSignIn)
	mux.HandleFunc("POST /api/auth/signup", b.handleSignUp)
	mux.HandleFunc("POST /api/auth/refresh", b.handleRefresh)
	mux.HandleFunc("POST /api/auth/logout", b.handleLogout)
	mux.HandleFunc("GET /api/auth/me", b.handleMe)
	mux.HandleFunc("GET /api/tournaments/", b.handleListTournaments)
	mux.HandleFunc("POST /api/tournaments/", b.handleCreateTournament)
	mux.HandleFunc("GET /api/matches/9/", b.handleMatch)
	mux.HandleFunc("/ws/chat/9/", b.handleChat)

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) expireAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = "revoked"
}

func (b *fakeBackend) issueLocked(w http.ResponseWriter) {
	b.issued++
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ID:        fmt.Sprintf("access-%d", b.issued),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}).SignedString([]byte("test-signing-key"))
	require.NoError(b.t, err)

	b.access = token
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: token, Path: "/", HttpOnly: true})
	if b.refresh == "" {
		b.refresh = fmt.Sprintf("refresh-%d", b.issued)
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: b.refresh, Path: "/", HttpOnly: true})
	}
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	cookie, err := r.Cookie("access_token")
	if err != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return cookie.Value != "" && cookie.Value == b.access
}

func (b *fakeBackend) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
	if body.Email != testEmail || body.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid credentials"})
		return
	}

	b.mu.Lock()
	b.refresh = ""
	b.issueLocked(w)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": profile()})
}

func (b *fakeBackend) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       8,
		"username": body["username"],
		"email":    body["email"],
		"role":     body["role"],
	})
}

func (b *fakeBackend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	b.refreshes.Add(1)
	cookie, err := r.Cookie("refresh_token")

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.blocked.Load() {
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "User account is inactive."})
		return
	}
	if err != nil || cookie.Value != b.refresh || b.rejectRefresh.Load() {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired"})
		return
	}
	b.issueLocked(w)
	writeJSON(w, http.StatusOK, map[string]any{"detail": "refreshed"})
}

func (b *fakeBackend) handleLogout(w http.ResponseWriter, _ *http.Request) {
	b.logouts.Add(1)
	http.SetCookie(w, &http.Cookie{Name: "access_token", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	if b.blocked.Load() {
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "User account is inactive."})
		return
	}
	if !b.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Authentication credentials were not provided."})
		return
	}
	writeJSON(w, http.StatusOK, profile())
}

func (b *fakeBackend) handleListTournaments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{{
		"id":         4,
		"name":       "Summer Cup",
		"status":     "upcoming",
		"location":   "Leeds",
		"start_date": "2026-06-01",
		"end_date":   "2026-06-20",
	}})
}

func (b *fakeBackend) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Authentication credentials were not provided."})
		return
	}
	var body map[string]any
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
	assert.Equal(b.t, "2026-12-01", body["start_date"])
	body["id"] = 12
	body["status"] = "upcoming"
	writeJSON(w, http.StatusCreated, body)
}

func (b *fakeBackend) handleMatch(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"id": 9, "home": "Lions", "away": "Tigers", "status": "live"})
}

func (b *fakeBackend) handleChat(w http.ResponseWriter, r *http.Request) {
	b.chatDials.Add(1)
	if b.rejectChat.Load() || !b.authorized(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	welcome := map[string]any{
		"id":         "welcome",
		"message":    "Welcome to match 9",
		"sender":     map[string]any{"id": 1, "username": "umpire"},
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	// Sent twice: the client keeps one copy per id.
	for range 2 {
		if err := conn.WriteJSON(welcome); err != nil {
			return
		}
	}

	for {
		var frame struct {
			Message string `json:"message"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if err := conn.WriteJSON(map[string]any{
			"id":         b.chatSeq.Add(1),
			"message":    frame.Message,
			"sender":     map[string]any{"id": 7, "username": "kane"},
			"created_at": time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			return
		}
	}
}

func profile() map[string]any {
	return map[string]any{
		"id":        7,
		"username":  "kane",
		"email":     testEmail,
		"full_name": "Kane Williamson",
		"role":      "organizer",
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
