package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPresentRequiresUserAndAuthentication(t *testing.T) {
	t.Parallel()

	assert.False(t, Session{}.Present())
	assert.False(t, Session{Authenticated: true}.Present())
	assert.False(t, Session{User: &User{ID: "1"}}.Present())
	assert.True(t, Session{User: &User{ID: "1"}, Authenticated: true}.Present())
}

func TestSessionHasRole(t *testing.T) {
	t.Parallel()

	session := Session{User: &User{ID: "7", Role: RoleOrganizer}, Authenticated: true}

	assert.True(t, session.HasRole(RoleAdmin, RoleOrganizer))
	assert.False(t, session.HasRole(RolePlayer))
	assert.False(t, Session{}.HasRole(RoleOrganizer))
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "full name", user: User{ID: "1", FullName: "Ravi Shastri", Username: "ravi"}, want: "Ravi Shastri"},
		{name: "username", user: User{ID: "1", Username: "ravi", Email: "r@example.com"}, want: "ravi"},
		{name: "email", user: User{ID: "1", Email: "r@example.com"}, want: "r@example.com"},
		{name: "id fallback", user: User{ID: "1", FullName: "  "}, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reg     Registration
		wantErr string
	}{
		{name: "valid", reg: Registration{Username: "ravi", Email: "r@example.com", Password: "long-enough", Role: RolePlayer}},
		{name: "valid without role", reg: Registration{Username: "ravi", Email: "r@example.com", Password: "long-enough"}},
		{name: "missing username", reg: Registration{Email: "r@example.com", Password: "long-enough"}, wantErr: "username is required"},
		{name: "missing email", reg: Registration{Username: "ravi", Password: "long-enough"}, wantErr: "email is required"},
		{name: "short password", reg: Registration{Username: "ravi", Email: "r@example.com", Password: "short"}, wantErr: "at least 8"},
		{name: "unknown role", reg: Registration{Username: "ravi", Email: "r@example.com", Password: "long-enough", Role: "umpire"}, wantErr: "unsupported role"},
		{name: "admin", reg: Registration{Username: "ravi", Email: "r@example.com", Password: "long-enough", Role: RoleAdmin}, wantErr: "cannot be self-assigned"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.reg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RoleClubManager, ParseRole("Club Manager"))
	assert.Equal(t, RoleClubManager, ParseRole("club-manager"))
	assert.Equal(t, RoleFan, ParseRole(" FAN "))
	assert.False(t, ParseRole("umpire").Valid())
}

func TestIsBlockedDetail(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlockedDetail("User account is inactive"))
	assert.True(t, IsBlockedDetail("Your account has been BLOCKED by an administrator"))
	assert.False(t, IsBlockedDetail("You do not have permission to perform this action."))
	assert.False(t, IsBlockedDetail(""))
}

func TestSnapshotSessionCopiesUser(t *testing.T) {
	t.Parallel()

	snapshot := Snapshot{User: &User{ID: "9", Role: RoleFan}, Authenticated: true}
	session := snapshot.Session()
	require.True(t, session.Present())

	session.User.Role = RoleAdmin
	assert.Equal(t, RoleFan, snapshot.User.Role)
	assert.False(t, Snapshot{}.Session().Present())
}

func TestPathSetMatch(t *testing.T) {
	t.Parallel()

	public := PathSet{"/", "/tournaments/**", "/matches/*/live", "/signin"}

	tests := []struct {
		path string
		want bool
	}{
		{path: "/", want: true},
		{path: "", want: true},
		{path: "/tournaments", want: true},
		{path: "/tournaments/", want: true},
		{path: "/tournaments/42/fixtures", want: true},
		{path: "/tournaments-admin", want: false},
		{path: "/matches/12/live", want: true},
		{path: "/matches/12/live?tab=chat", want: true},
		{path: "/matches/12/score", want: false},
		{path: "/signin/", want: true},
		{path: "/dashboard", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, public.Match(tt.path))
		})
	}
}

func TestPathSetEmptyMatchesNothing(t *testing.T) {
	t.Parallel()

	assert.False(t, PathSet(nil).Match("/"))
	assert.False(t, PathSet{"", "  "}.Match("/"))
}
