package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/peopledash/domain"
)

func newRepo(t *testing.T) (*miniredis.Miniredis, *sessionRepository) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewSessionRepository(client, time.Hour).(*sessionRepository)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	srv, repo := newRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "s-1",
		UserID:    "u-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, repo.Save(ctx, session))
	assert.True(t, srv.Exists("session:s-1"))

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)

	require.NoError(t, repo.Delete(ctx, "s-1"))
	_, err = repo.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_ExpiresWithTTL(t *testing.T) {
	srv, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{
		ID:        "s-2",
		UserID:    "u-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	srv.FastForward(2 * time.Minute)
	_, err := repo.Get(ctx, "s-2")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Extend(t *testing.T) {
	srv, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{
		ID:        "s-3",
		UserID:    "u-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	deadline := time.Now().Add(time.Hour)
	extended, err := repo.Extend(ctx, "s-3", deadline)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, srv.TTL("session:s-3"))

	stored, err := repo.Get(ctx, "s-3")
	require.NoError(t, err)
	assert.WithinDuration(t, deadline, stored.ExpiresAt, time.Millisecond)
	assert.Equal(t, "u-1", extended.UserID)

	_, err = repo.Extend(ctx, "missing", deadline)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_RejectsEmptyID(t *testing.T) {
	_, repo := newRepo(t)
	assert.ErrorIs(t, repo.Save(context.Background(), &domain.Session{}), domain.ErrInvalidPayload)
}
