package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, ttl), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{Role: RoleAdmin, Email: "admin@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.Equal(t, "admin@x.com", sess.Email)
}

func TestGetUnknownToken(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	_, err := store.Get(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{Role: RoleAdmin, Email: "admin@x.com"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDestroy(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{Role: RoleAdmin, Email: "admin@x.com"})
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Destroying an unknown token is not an error
	assert.NoError(t, store.Destroy(ctx, "not-a-token"))
}

func TestTokensAreUnique(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()

	first, err := store.Create(ctx, Session{Role: RoleAdmin, Email: "a@x.com"})
	require.NoError(t, err)
	second, err := store.Create(ctx, Session{Role: RoleAdmin, Email: "a@x.com"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
