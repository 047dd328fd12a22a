package analytics

import (
	"context"
	"time"

	"github.com/fastygo/peopledash/domain"
)

// Provider serves the aggregate views. Implementations either compute them in process or
// trust a store that pre-aggregates; callers cannot tell the difference.
type Provider interface {
	DepartmentStats(ctx context.Context) ([]domain.DepartmentStats, error)
	SalaryDistribution(ctx context.Context) ([]domain.RangeCount, error)
	AgeDistribution(ctx context.Context) ([]domain.RangeCount, error)
	GenderDistribution(ctx context.Context) ([]domain.GenderCount, error)
	TenureDistribution(ctx context.Context) ([]domain.RangeCount, error)
	// TopPerformers ranks by score descending, ties in insertion order.
	TopPerformers(ctx context.Context, n int) ([]domain.Employee, error)
}

// EmployeeLister loads the full collection in insertion order.
type EmployeeLister interface {
	All(ctx context.Context) ([]domain.Employee, error)
}

// Local computes views in process over whatever the lister returns.
type Local struct {
	employees EmployeeLister
	now       func() time.Time
}

// NewLocal builds a Local provider. now defaults to time.Now.
func NewLocal(employees EmployeeLister, now func() time.Time) *Local {
	if now == nil {
		now = time.Now
	}
	return &Local{employees: employees, now: now}
}

func (l *Local) load(ctx context.Context) ([]domain.Employee, error) {
	if l.employees == nil {
		return nil, nil
	}
	return l.employees.All(ctx)
}

func (l *Local) DepartmentStats(ctx context.Context) ([]domain.DepartmentStats, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return DepartmentStats(employees), nil
}

func (l *Local) SalaryDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return SalaryDistribution(employees), nil
}

func (l *Local) AgeDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return AgeDistribution(employees), nil
}

func (l *Local) GenderDistribution(ctx context.Context) ([]domain.GenderCount, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return GenderDistribution(employees), nil
}

func (l *Local) TenureDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return TenureDistribution(employees, l.now()), nil
}

func (l *Local) TopPerformers(ctx context.Context, n int) ([]domain.Employee, error) {
	employees, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return TopPerformers(employees, n), nil
}

var _ Provider = (*Local)(nil)
