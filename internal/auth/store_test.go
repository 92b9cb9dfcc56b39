package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, api.DomainDFX)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	dfx := api.Session{AccessToken: "dfx-token", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, store.Put(ctx, api.DomainDFX, dfx))
	require.NoError(t, store.Put(ctx, api.DomainLOCK, api.Session{AccessToken: "lock-token"}))

	got, err := store.Get(ctx, api.DomainDFX)
	require.NoError(t, err)
	assert.Equal(t, dfx.AccessToken, got.AccessToken)
	assert.True(t, dfx.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, api.DomainDFX))
	require.NoError(t, store.Delete(ctx, api.DomainDFX))
	_, err = store.Get(ctx, api.DomainDFX)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err = store.Get(ctx, api.DomainLOCK)
	require.NoError(t, err)
	assert.Equal(t, "lock-token", got.AccessToken)

	require.NoError(t, store.DeleteAll(ctx))
	_, err = store.Get(ctx, api.DomainLOCK)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sessions.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), api.DomainLOCK, api.Session{AccessToken: "x"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, path, store.Path())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dfx: [unterminated"), 0o600))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), api.DomainDFX)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestFileStore_Encrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.bin")
	store, err := NewFileStore(path, WithSecret("correct horse"))
	require.NoError(t, err)
	assert.True(t, store.Encrypted())
	exerciseStore(t, store)

	require.NoError(t, store.Put(context.Background(), api.DomainDFX, api.Session{AccessToken: "secret-token"}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")

	reopened, err := NewFileStore(path, WithSecret("correct horse"))
	require.NoError(t, err)
	got, err := reopened.Get(context.Background(), api.DomainDFX)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got.AccessToken)

	wrong, err := NewFileStore(path, WithSecret("battery staple"))
	require.NoError(t, err)
	_, err = wrong.Get(context.Background(), api.DomainDFX)
	assert.ErrorContains(t, err, "decrypt session file")
}

func TestFileStore_EmptySecretIsPlain(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "sessions.yaml"), WithSecret(""))
	require.NoError(t, err)
	assert.False(t, store.Encrypted())
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestNewRedisStore_RequiresClient(t *testing.T) {
	_, err := NewRedisStore(nil, "")
	assert.Error(t, err)
}

// =============================================================================
// Redis
// =============================================================================

var redisNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newRedisStore(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisStore(client, prefix)
	require.NoError(t, err)
	store.now = func() time.Time { return redisNow }
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, "wallet-test")
	exerciseStore(t, store)
}

func TestRedisStore_KeyTTLFollowsExpiry(t *testing.T) {
	store, mr := newRedisStore(t, "wallet-test")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, api.DomainDFX, api.Session{AccessToken: "dfx", ExpiresAt: redisNow.Add(time.Hour)}))
	require.NoError(t, store.Put(ctx, api.DomainLOCK, api.Session{AccessToken: "lock"}))

	assert.Equal(t, time.Hour, mr.TTL("wallet-test:session:dfx"))
	assert.True(t, mr.Exists("wallet-test:session:lock"))
	assert.Zero(t, mr.TTL("wallet-test:session:lock"))

	mr.FastForward(time.Hour + time.Second)
	_, err := store.Get(ctx, api.DomainDFX)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := store.Get(ctx, api.DomainLOCK)
	require.NoError(t, err)
	assert.Equal(t, "lock", got.AccessToken)
}

func TestRedisStore_ExpiredPutDeletes(t *testing.T) {
	store, mr := newRedisStore(t, "wallet-test")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, api.DomainDFX, api.Session{AccessToken: "fresh", ExpiresAt: redisNow.Add(time.Minute)}))
	require.True(t, mr.Exists("wallet-test:session:dfx"))

	require.NoError(t, store.Put(ctx, api.DomainDFX, api.Session{AccessToken: "stale", ExpiresAt: redisNow.Add(-time.Second)}))
	assert.False(t, mr.Exists("wallet-test:session:dfx"))
	_, err := store.Get(ctx, api.DomainDFX)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_DeleteAllLeavesOtherKeys(t *testing.T) {
	store, mr := newRedisStore(t, "")
	ctx := context.Background()
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, store.Put(ctx, api.DomainDFX, api.Session{AccessToken: "dfx"}))
	require.NoError(t, store.Put(ctx, api.DomainLOCK, api.Session{AccessToken: "lock"}))
	assert.ElementsMatch(t, []string{"unrelated", "wallet:session:dfx", "wallet:session:lock"}, mr.Keys())

	require.NoError(t, store.DeleteAll(ctx))
	assert.Equal(t, []string{"unrelated"}, mr.Keys())
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newRedisStore(t, "wallet-test")
	require.NoError(t, mr.Set("wallet-test:session:dfx", "{not json"))

	_, err := store.Get(context.Background(), api.DomainDFX)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newRedisStore(t, "wallet-test")
	mr.Close()

	_, err := store.Get(context.Background(), api.DomainDFX)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}
