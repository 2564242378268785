package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserID string

type User struct {
	ID       UserID
	Username string
	Email    string
	FullName string
	Role     Role
}

// DisplayName prefers the full name, then the username, then the email.
func (u User) DisplayName() string {
	for _, candidate := range []string{u.FullName, u.Username, u.Email} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return string(u.ID)
}

type Session struct {
	User          *User
	Authenticated bool
}

func (s Session) Present() bool {
	return s.Authenticated && s.User != nil
}

func (s Session) HasRole(roles ...Role) bool {
	if !s.Present() {
		return false
	}
	for _, role := range roles {
		if s.User.Role == role {
			return true
		}
	}
	return false
}

type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type Registration struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     Role
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Role == "" {
		return nil
	}
	if !r.Role.Valid() {
		return fmt.Errorf("unsupported role %q", r.Role)
	}
	if r.Role == RoleAdmin {
		return fmt.Errorf("role %q cannot be self-assigned", r.Role)
	}
	return nil
}

// Snapshot is the durable copy of the session kept between runs.
type Snapshot struct {
	User          *User
	Authenticated bool
	View          string
	SavedAt       time.Time
}

func (s Snapshot) Session() Session {
	if s.User == nil {
		return Session{}
	}
	user := *s.User
	return Session{User: &user, Authenticated: s.Authenticated}
}

type TeardownReason string

const (
	TeardownLogout  TeardownReason = "logout"
	TeardownExpired TeardownReason = "expired"
	TeardownBlocked TeardownReason = "blocked"
)

var blockedMarkers = []string{"inactive", "blocked"}

// IsBlockedDetail reports whether a 403 error detail marks the account as
// administratively deactivated.
func IsBlockedDetail(detail string) bool {
	lowered := strings.ToLower(detail)
	for _, marker := range blockedMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
