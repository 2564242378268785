package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "credential key is empty"},
		{name: "whitespace", key: "   ", wantErr: "credential key is empty"},
		{name: "absolute", key: "/etc/passwd", wantErr: "invalid credential key"},
		{name: "traversal", key: "../escape", wantErr: "invalid credential key"},
		{name: "nested traversal", key: "pitchside/../../escape", wantErr: "invalid credential key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "pitchside/localhost/refresh_token"

	require.NoError(t, store.Put(context.Background(), key, "rotated-refresh"))
	require.NoError(t, store.Put(context.Background(), key, "rotated-again"))

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "rotated-again", got)

	info, err := os.Stat(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(vaultFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "pitchside", "localhost"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestStoreGetMissingReturnsCredentialNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "pitchside/localhost/access_token")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreDeleteIsIdempotentWhenCredentialMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "pitchside/localhost/access_token"

	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Put(context.Background(), key, "token"))
	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Delete(context.Background(), key))
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "pitchside/localhost/access_token", "token"), context.Canceled)
	_, err := store.Get(ctx, "pitchside/localhost/access_token")
	require.ErrorIs(t, err, context.Canceled)
}
