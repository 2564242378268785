package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"pkt.systems/pslog"
)

type SessionDeps struct {
	State     *SessionState
	Store     ports.SessionStore
	Auth      ports.Authenticator
	Jar       ports.CredentialJar
	Teardown  ports.SessionTeardown
	Navigator ports.Navigator
	Clock     ports.Clock
}

type SessionService struct {
	state     *SessionState
	store     ports.SessionStore
	auth      ports.Authenticator
	jar       ports.CredentialJar
	teardown  ports.SessionTeardown
	navigator ports.Navigator
	clock     ports.Clock
}

func NewSessionService(deps SessionDeps) *SessionService {
	state := deps.State
	if state == nil {
		state = NewSessionState()
	}
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		state:     state,
		store:     deps.Store,
		auth:      deps.Auth,
		jar:       deps.Jar,
		teardown:  deps.Teardown,
		navigator: deps.Navigator,
		clock:     clock,
	}
}

func (s *SessionService) Current() domain.Session {
	return s.state.Current()
}

func (s *SessionService) Present() bool {
	return s.state.Present()
}

// Restore reloads the cookies and the durable snapshot left by a previous
// run. A missing snapshot means signed out and is not an error.
func (s *SessionService) Restore(ctx context.Context) (SessionStatus, error) {
	if err := s.jar.Restore(ctx); err != nil {
		return SessionStatus{}, fmt.Errorf("restore session cookies: %w", err)
	}

	snapshot, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			s.state.Clear()
			return SessionStatus{}, nil
		}
		return SessionStatus{}, fmt.Errorf("load session snapshot: %w", err)
	}

	session := snapshot.Session()
	if session.Present() {
		s.state.Set(*session.User)
	} else {
		s.state.Clear()
	}

	pslog.Ctx(ctx).Debug("session restored", "present", session.Present(), "view", snapshot.View)
	return SessionStatus{Session: s.state.Current(), View: snapshot.View, SavedAt: snapshot.SavedAt}, nil
}

func (s *SessionService) SignIn(ctx context.Context, cmd SignInCommand) (domain.User, error) {
	if err := cmd.Credentials.Validate(); err != nil {
		return domain.User{}, err
	}

	user, err := s.auth.SignIn(ctx, cmd.Credentials)
	if err != nil {
		return domain.User{}, err
	}

	s.state.Set(user)
	view := cmd.View
	if strings.TrimSpace(view) == "" && s.navigator != nil {
		view = s.navigator.CurrentPath()
	}

	if err := s.save(ctx, user, view); err != nil {
		s.state.Clear()
		if rollbackErr := s.jar.Expire(ctx); rollbackErr != nil {
			return domain.User{}, fmt.Errorf("save session and rollback cookies: %w", errors.Join(err, rollbackErr))
		}
		return domain.User{}, err
	}
	if err := s.jar.Persist(ctx); err != nil {
		return domain.User{}, fmt.Errorf("persist session cookies: %w", err)
	}

	pslog.Ctx(ctx).Info("signed in", "user", string(user.ID), "role", string(user.Role))
	return user, nil
}

// SignUp registers an account without signing in.
func (s *SessionService) SignUp(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if err := reg.Validate(); err != nil {
		return domain.User{}, err
	}
	return s.auth.SignUp(ctx, reg)
}

// Logout tells the backend on a best-effort basis and always clears the
// local session.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		pslog.Ctx(ctx).Debug("backend logout failed", "err", err)
	}
	return s.teardown.Teardown(ctx, domain.TeardownLogout)
}

// Verify asks the backend who the session belongs to. This is the only
// session check: an expired session is refreshed by the gateway, and a
// refresh failure or blocked account is torn down there.
func (s *SessionService) Verify(ctx context.Context) (SessionStatus, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return SessionStatus{Session: s.state.Current()}, err
	}

	s.state.Set(user)
	view := ""
	if s.navigator != nil {
		view = s.navigator.CurrentPath()
	}
	if err := s.save(ctx, user, view); err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{Session: s.state.Current(), View: view, SavedAt: s.clock.Now(), Verified: true}, nil
}

// RequireRole guards commands restricted to some roles.
func (s *SessionService) RequireRole(roles ...domain.Role) (domain.Session, error) {
	session := s.state.Current()
	if !session.Present() {
		return session, domain.ErrNoSession
	}
	if len(roles) > 0 && !session.HasRole(roles...) {
		labels := make([]string, 0, len(roles))
		for _, role := range roles {
			labels = append(labels, role.Label())
		}
		return session, fmt.Errorf("%w: %s role required, signed in as %s", domain.ErrRoleNotAllowed, strings.Join(labels, " or "), session.User.Role.Label())
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, user domain.User, view string) error {
	snapshot := domain.Snapshot{
		User:          &user,
		Authenticated: true,
		View:          view,
		SavedAt:       s.clock.Now(),
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}
