package usecase

import (
	"context"

	"github.com/fastygo/peopledash/domain"
)

// InsertBuffer parks employee inserts that failed against primary storage.
type InsertBuffer interface {
	BufferEmployees(ctx context.Context, source string, employees []domain.Employee) error
}
