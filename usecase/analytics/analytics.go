package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/peopledash/domain"
	engine "github.com/fastygo/peopledash/internal/analytics"
	"github.com/fastygo/peopledash/internal/ratelimit"
	"github.com/fastygo/peopledash/internal/telemetry"
	pkgLogger "github.com/fastygo/peopledash/pkg/logger"
	"github.com/fastygo/peopledash/usecase"
)

// Query names registered on the dispatcher.
const (
	QueryDepartmentStats    = "department-stats"
	QuerySalaryDistribution = "salary-distribution"
	QueryAgeDistribution    = "age-distribution"
	QueryGenderDistribution = "gender-distribution"
	QueryTenureDistribution = "tenure-distribution"
	QueryTopPerformers      = "top-performers"
)

// UseCase serves the aggregate views from whichever provider it was built with.
type UseCase struct {
	provider engine.Provider
	limiter  ratelimit.Limiter
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

func New(provider engine.Provider, limiter ratelimit.Limiter, metrics *telemetry.Metrics, logger *zap.Logger) *UseCase {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		provider: provider,
		limiter:  limiter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register exposes every view as a named query.
func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterQuery(QueryDepartmentStats, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return run(uc, ctx, QueryDepartmentStats, uc.provider.DepartmentStats)
	})
	d.RegisterQuery(QuerySalaryDistribution, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return run(uc, ctx, QuerySalaryDistribution, uc.provider.SalaryDistribution)
	})
	d.RegisterQuery(QueryAgeDistribution, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return run(uc, ctx, QueryAgeDistribution, uc.provider.AgeDistribution)
	})
	d.RegisterQuery(QueryGenderDistribution, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return run(uc, ctx, QueryGenderDistribution, uc.provider.GenderDistribution)
	})
	d.RegisterQuery(QueryTenureDistribution, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return run(uc, ctx, QueryTenureDistribution, uc.provider.TenureDistribution)
	})
	d.RegisterQuery(QueryTopPerformers, func(ctx context.Context, params interface{}) (interface{}, error) {
		n, ok := params.(int)
		if !ok {
			n = engine.DefaultTopPerformers
		}
		return run(uc, ctx, QueryTopPerformers, func(ctx context.Context) ([]domain.Employee, error) {
			return uc.provider.TopPerformers(ctx, n)
		})
	})
}

func run[T any](uc *UseCase, ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	ok, err := uc.limiter.Allow(ctx, usecase.ActorFrom(ctx))
	if err != nil {
		return zero, domain.Unavailable("rate limiter unavailable", err)
	}
	if !ok {
		uc.metrics.RateLimited(name)
		return zero, domain.ErrRateLimited
	}

	out, err := fn(ctx)
	if err != nil {
		uc.metrics.StoreFailure(name)
		pkgLogger.WithRequestID(ctx, uc.logger).Error("analytics query failed", zap.String("view", name), zap.Error(err))
		return zero, domain.Unavailable("failed to fetch "+name, err)
	}
	return out, nil
}
