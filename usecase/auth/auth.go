package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/repository"
)

// Claims carried by an access token. SessionID ties the token to a revocable session.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	logger   *zap.Logger
	now      func() time.Time
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSession signs in an active user and returns the session with its access token.
func (uc *UseCase) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.Unavailable("failed to load user", err)
	}
	if !user.IsActive() {
		return nil, domain.NewError(domain.ErrCodeForbidden, "user is not active")
	}

	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Metadata:  map[string]string{"role": user.Role},
	}
	if session.Token, err = uc.sign(session, user.Role); err != nil {
		return nil, err
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, domain.Unavailable("failed to store session", err)
	}
	uc.logger.Info("session created", zap.String("user_id", userID), zap.String("session_id", session.ID))
	return session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.Unavailable("failed to load session", err)
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a live session and issues a token with the new expiry.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	if _, err := uc.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	session, err := uc.sessions.Extend(ctx, sessionID, uc.now().Add(ttl))
	if err != nil {
		return nil, domain.Unavailable("failed to extend session", err)
	}
	if session.Token, err = uc.sign(session, session.Metadata["role"]); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return domain.Unavailable("failed to revoke session", err)
	}
	uc.logger.Info("session revoked", zap.String("session_id", sessionID))
	return nil
}

// Authenticate verifies a token and checks that its session has not been revoked.
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := uc.Parse(token)
	if err != nil {
		return nil, err
	}
	session, err := uc.GetSession(ctx, claims.SessionID)
	if err != nil || session.UserID != claims.UserID {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// Parse validates the signature, issuer and expiry of a token.
func (uc *UseCase) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return uc.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "invalid token", err)
	}
	if uc.issuer != "" && !claims.VerifyIssuer(uc.issuer, true) {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "invalid token issuer")
	}
	return claims, nil
}

func (uc *UseCase) sign(session *domain.Session, role string) (string, error) {
	claims := Claims{
		UserID:    session.UserID,
		SessionID: session.ID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    uc.issuer,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "failed to sign token", err)
	}
	return signed, nil
}
