package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/peopledash/domain"
	engine "github.com/fastygo/peopledash/internal/analytics"
	"github.com/fastygo/peopledash/internal/generator"
	"github.com/fastygo/peopledash/usecase"
)

var now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

type memSource struct {
	employees []domain.Employee
	err       error
}

func (m *memSource) All(context.Context) ([]domain.Employee, error) { return m.employees, m.err }

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func setup(t *testing.T, src *memSource) *usecase.Dispatcher {
	t.Helper()
	d := usecase.NewDispatcher()
	New(engine.NewLocal(src, func() time.Time { return now }), nil, nil, nil).Register(d)
	return d
}

func TestRegister_AllViews(t *testing.T) {
	d := setup(t, &memSource{})
	assert.Equal(t, []string{
		QueryAgeDistribution,
		QueryDepartmentStats,
		QueryGenderDistribution,
		QuerySalaryDistribution,
		QueryTenureDistribution,
		QueryTopPerformers,
	}, d.Queries())
}

func TestViewsMatchEngine(t *testing.T) {
	employees, err := generator.New(generator.WithSeed(5), generator.WithClock(func() time.Time { return now })).Generate(120)
	require.NoError(t, err)
	d := setup(t, &memSource{employees: employees})
	ctx := context.Background()

	got, err := d.ExecuteQuery(ctx, QueryDepartmentStats, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.DepartmentStats(employees), got)

	got, err = d.ExecuteQuery(ctx, QueryTenureDistribution, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.TenureDistribution(employees, now), got)

	got, err = d.ExecuteQuery(ctx, QueryGenderDistribution, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.GenderDistribution(employees), got)

	got, err = d.ExecuteQuery(ctx, QueryTopPerformers, 3)
	require.NoError(t, err)
	assert.Equal(t, engine.TopPerformers(employees, 3), got)

	got, err = d.ExecuteQuery(ctx, QueryTopPerformers, nil)
	require.NoError(t, err)
	assert.Len(t, got, engine.DefaultTopPerformers)
}

func TestViews_StoreFailure(t *testing.T) {
	d := setup(t, &memSource{err: errors.New("connection reset")})
	_, err := d.ExecuteQuery(context.Background(), QuerySalaryDistribution, nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestViews_RateLimited(t *testing.T) {
	d := usecase.NewDispatcher()
	src := &memSource{}
	New(engine.NewLocal(src, nil), denyAll{}, nil, nil).Register(d)

	_, err := d.ExecuteQuery(context.Background(), QueryAgeDistribution, nil)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}
