package ports

import (
	"context"

	"github.com/bnema/pitchside/internal/domain"
)

type SessionStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Clear(ctx context.Context) error
}

// CredentialJar owns the access and refresh cookies.
type CredentialJar interface {
	Persist(ctx context.Context) error
	Restore(ctx context.Context) error
	Expire(ctx context.Context) error
}

type SessionTeardown interface {
	Teardown(ctx context.Context, reason domain.TeardownReason) error
}

type Navigator interface {
	CurrentPath() string
	Navigate(ctx context.Context, cmd domain.NavigationCommand) error
}

type Authenticator interface {
	SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error)
	SignUp(ctx context.Context, reg domain.Registration) (domain.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (domain.User, error)
}
