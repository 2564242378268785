package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"pkt.systems/pslog"
)

// SessionTeardown ends the local session. Logout, a failed refresh and a
// blocked account all converge here.
type SessionTeardown struct {
	state     *SessionState
	store     ports.SessionStore
	jar       ports.CredentialJar
	navigator ports.Navigator
}

var _ ports.SessionTeardown = (*SessionTeardown)(nil)

func NewSessionTeardown(state *SessionState, store ports.SessionStore, jar ports.CredentialJar, navigator ports.Navigator) *SessionTeardown {
	return &SessionTeardown{state: state, store: store, jar: jar, navigator: navigator}
}

// Teardown runs every step even when an earlier one fails and reports all
// failures together.
func (t *SessionTeardown) Teardown(ctx context.Context, reason domain.TeardownReason) error {
	logger := pslog.Ctx(ctx).With("reason", string(reason))
	logger.Info("session teardown")

	if t.state != nil {
		t.state.Clear()
	}

	var errs []error
	if t.store != nil {
		if err := t.store.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear session snapshot: %w", err))
		}
	}
	if t.jar != nil {
		if err := t.jar.Expire(ctx); err != nil {
			errs = append(errs, fmt.Errorf("expire session cookies: %w", err))
		}
	}
	if t.navigator != nil && domain.NormalizePath(t.navigator.CurrentPath()) != domain.SignInPath {
		if err := t.navigator.Navigate(ctx, domain.NavigationCommand{Path: domain.SignInPath, Reason: reason}); err != nil {
			errs = append(errs, fmt.Errorf("navigate to sign-in: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Warn("session teardown incomplete", "err", err)
		return err
	}
	return nil
}
