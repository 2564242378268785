package cookies

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	filestore "github.com/bnema/pitchside/internal/adapters/secrets/file"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	portmocks "github.com/bnema/pitchside/internal/ports/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJar(t *testing.T, vault ports.SecretStore) *Jar {
	t.Helper()

	jar, err := NewJar(Options{BaseURL: "http://api.pitchside.test:8000/api", Vault: vault})
	require.NoError(t, err)
	return jar
}

func apiURL(t *testing.T) *url.URL {
	t.Helper()

	u, err := url.Parse("http://api.pitchside.test:8000/api/auth/signin")
	require.NoError(t, err)
	return u
}

func TestNewJarRejectsRelativeOrigin(t *testing.T) {
	t.Parallel()

	_, err := NewJar(Options{BaseURL: "/api"})
	require.ErrorContains(t, err, "must be absolute")
}

func TestPersistAndRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	vault := filestore.NewStore(t.TempDir())
	jar := newTestJar(t, vault)
	jar.SetCookies(apiURL(t), []*http.Cookie{
		{Name: "access_token", Value: "access-1", Path: "/"},
		{Name: "refresh_token", Value: "refresh-1", Path: "/"},
		{Name: "csrftoken", Value: "ignored", Path: "/"},
	})

	require.NoError(t, jar.Persist(context.Background()))

	stored, err := vault.Get(context.Background(), "pitchside/api.pitchside.test_8000/access_token")
	require.NoError(t, err)
	assert.Equal(t, "access-1", stored)
	_, err = vault.Get(context.Background(), "pitchside/api.pitchside.test_8000/csrftoken")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	restored := newTestJar(t, vault)
	require.NoError(t, restored.Restore(context.Background()))
	assert.Equal(t, "access-1", restored.AccessToken())
	assert.True(t, restored.HasRefreshToken())
}

func TestCookiesAreSentToWebsocketOrigin(t *testing.T) {
	t.Parallel()

	jar := newTestJar(t, nil)
	jar.SetCookies(apiURL(t), []*http.Cookie{{Name: "access_token", Value: "access-1", Path: "/"}})

	chatURL, err := url.Parse("http://api.pitchside.test:8000/ws/chat/12/")
	require.NoError(t, err)

	cookies := jar.Cookies(chatURL)
	require.Len(t, cookies, 1)
	assert.Equal(t, "access-1", cookies[0].Value)
}

func TestRestoreSkipsMissingCookies(t *testing.T) {
	t.Parallel()

	jar := newTestJar(t, filestore.NewStore(t.TempDir()))

	require.NoError(t, jar.Restore(context.Background()))
	assert.Empty(t, jar.AccessToken())
	assert.False(t, jar.HasRefreshToken())
}

func TestPersistDropsCookiesTheServerCleared(t *testing.T) {
	t.Parallel()

	vault := filestore.NewStore(t.TempDir())
	require.NoError(t, vault.Put(context.Background(), "pitchside/api.pitchside.test_8000/refresh_token", "stale"))

	jar := newTestJar(t, vault)
	jar.SetCookies(apiURL(t), []*http.Cookie{{Name: "access_token", Value: "fresh", Path: "/"}})

	require.NoError(t, jar.Persist(context.Background()))

	_, err := vault.Get(context.Background(), "pitchside/api.pitchside.test_8000/refresh_token")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestExpireClearsJarAndVault(t *testing.T) {
	t.Parallel()

	vault := filestore.NewStore(t.TempDir())
	jar := newTestJar(t, vault)
	jar.SetCookies(apiURL(t), []*http.Cookie{
		{Name: "access_token", Value: "access-1", Path: "/"},
		{Name: "refresh_token", Value: "refresh-1", Path: "/"},
	})
	require.NoError(t, jar.Persist(context.Background()))

	require.NoError(t, jar.Expire(context.Background()))

	assert.Empty(t, jar.AccessToken())
	assert.False(t, jar.HasRefreshToken())
	_, err := vault.Get(context.Background(), "pitchside/api.pitchside.test_8000/access_token")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestExpireJoinsVaultErrors(t *testing.T) {
	t.Parallel()

	vault := portmocks.NewMockSecretStore(t)
	vault.EXPECT().Delete(mock.Anything, "pitchside/api.pitchside.test_8000/access_token").Return(errors.New("locked")).Once()
	vault.EXPECT().Delete(mock.Anything, "pitchside/api.pitchside.test_8000/refresh_token").Return(nil).Once()

	jar, err := NewJar(Options{BaseURL: "http://api.pitchside.test:8000/api", Vault: vault})
	require.NoError(t, err)

	err = jar.Expire(context.Background())
	require.ErrorContains(t, err, "delete cookie access_token")
}

func TestAccessClaimsReadsExpiry(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	jar := newTestJar(t, nil)
	jar.SetCookies(apiURL(t), []*http.Cookie{{Name: "access_token", Value: token, Path: "/"}})

	claims, err := jar.AccessClaims()
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, expiresAt.Equal(claims.ExpiresAt))
	assert.False(t, claims.Expired(expiresAt.Add(-time.Minute)))
	assert.True(t, claims.Expired(expiresAt))
}

func TestAccessClaimsWithoutCookie(t *testing.T) {
	t.Parallel()

	_, err := newTestJar(t, nil).AccessClaims()
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}
