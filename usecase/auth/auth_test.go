package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/peopledash/domain"
	redisRepo "github.com/fastygo/peopledash/repository/redis"
)

type userStub map[string]*domain.User

func (u userStub) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (u userStub) Upsert(_ context.Context, user *domain.User) error {
	u[user.ID] = user
	return nil
}

func newUseCase(t *testing.T) (*UseCase, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := userStub{
		"analyst":  {ID: "analyst", Role: "viewer", Status: "active"},
		"disabled": {ID: "disabled", Role: "viewer", Status: "suspended"},
	}
	return New(users, redisRepo.NewSessionRepository(client, time.Hour), "test-secret", "peopledash", nil), srv
}

func TestCreateSession_IssuesVerifiableToken(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "analyst", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	claims, err := uc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "analyst", claims.UserID)
	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, "viewer", claims.Role)
}

func TestCreateSession_Rejections(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.CreateSession(context.Background(), "nobody", time.Minute)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	_, err = uc.CreateSession(context.Background(), "disabled", time.Minute)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestRevokeSession_InvalidatesToken(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "analyst", time.Hour)
	require.NoError(t, err)
	require.NoError(t, uc.RevokeSession(ctx, session.ID))

	_, err = uc.Authenticate(ctx, session.Token)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestRefreshSession(t *testing.T) {
	uc, srv := newUseCase(t)
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "analyst", time.Minute)
	require.NoError(t, err)

	refreshed, err := uc.RefreshSession(ctx, session.ID, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, srv.TTL("session:"+session.ID))
	assert.True(t, refreshed.ExpiresAt.After(session.ExpiresAt))

	_, err = uc.Authenticate(ctx, refreshed.Token)
	assert.NoError(t, err)

	_, err = uc.RefreshSession(ctx, "missing", time.Hour)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestParse_RejectsForeignTokens(t *testing.T) {
	uc, _ := newUseCase(t)
	session, err := uc.CreateSession(context.Background(), "analyst", time.Hour)
	require.NoError(t, err)

	other := New(userStub{}, nil, "another-secret", "peopledash", nil)
	_, err = other.Parse(session.Token)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	wrongIssuer := New(userStub{}, nil, "test-secret", "someone-else", nil)
	_, err = wrongIssuer.Parse(session.Token)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	_, err = uc.Parse("not-a-jwt")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}
