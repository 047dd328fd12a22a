package repository

import (
	"context"
	"strings"

	"github.com/fastygo/peopledash/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// EmployeeFilter narrows a paged listing. Search matches name, position and department
// as a substring. Department, Position and Gender must match exactly when set.
type EmployeeFilter struct {
	Page       int
	PageSize   int
	Search     string
	Department string
	Position   string
	Gender     string
}

// Normalize clamps paging to the supported window.
func (f EmployeeFilter) Normalize() EmployeeFilter {
	f.Department = strings.TrimSpace(f.Department)
	f.Position = strings.TrimSpace(f.Position)
	f.Gender = strings.TrimSpace(f.Gender)
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PageSize <= 0:
		f.PageSize = DefaultPageSize
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset is the number of rows skipped before the requested page.
func (f EmployeeFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.PageSize
}

// EmployeeRepository stores employees. Get, Update and Delete return
// domain.ErrEmployeeNotFound for an unknown id. Constraint violations come back as
// CONFLICT or INVALID domain errors; any other error means the store is unreachable.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int, error)
	All(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (domain.Employee, error)
	Insert(ctx context.Context, employees []domain.Employee) (int, error)
	Update(ctx context.Context, employee domain.Employee) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}
