package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, sessionPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(SessionPathKey, sessionPath)
	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))
	savedAt := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	snapshot := domain.Snapshot{
		User: &domain.User{
			ID:       "42",
			Username: "kohli",
			Email:    "virat@example.com",
			FullName: "Virat Kohli",
			Role:     domain.RoleClubManager,
		},
		Authenticated: true,
		View:          "/matches/12/live",
		SavedAt:       savedAt,
	}

	require.NoError(t, repo.Save(context.Background(), snapshot))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestRepositoryLoadMissingFileReturnsSnapshotNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "session.toml"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRepositoryLoadDropsAuthenticationWithoutUser(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[session]",
		"authenticated = true",
		"view = \"/tournaments\"",
		"",
	}, "\n")), 0o600))

	got, err := newTestRepository(t, sessionPath).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Authenticated)
	assert.Nil(t, got.User)
	assert.Equal(t, "/tournaments", got.View)
	assert.False(t, got.Session().Present())
}

func TestRepositoryClearIsIdempotent(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repo := newTestRepository(t, sessionPath)

	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{User: &domain.User{ID: "1"}, Authenticated: true}))
	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, repo.Clear(context.Background()))

	_, err := os.Stat(sessionPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{User: &domain.User{ID: "1"}, Authenticated: true}))

	sessionPath := filepath.Join(homeDir, ".pitchside", "session.toml")
	assert.Equal(t, sessionPath, repo.Path())
	info, err := os.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryLoadMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte("session = ["), 0o600))

	_, err := newTestRepository(t, sessionPath).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session file")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Snapshot{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepositoryConcurrentSavesAcrossInstancesLeaveValidFile(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repoA := newTestRepository(t, sessionPath)
	repoB := newTestRepository(t, sessionPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, id domain.UserID) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.Snapshot{User: &domain.User{ID: id}, Authenticated: true})
		}
	}
	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Contains(t, []domain.UserID{"a", "b"}, got.User.ID)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repo := newTestRepository(t, sessionPath)

	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{User: &domain.User{ID: "1", Role: domain.RoleFan}, Authenticated: true}))

	data, err := os.ReadFile(sessionPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "fan")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte("version = 999\n"), 0o600))

	_, err := newTestRepository(t, sessionPath).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported session schema version")
}
