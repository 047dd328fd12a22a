package repository

import (
	"context"
	"time"

	"github.com/fastygo/peopledash/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, expiresAt time.Time) (*domain.Session, error)
}
