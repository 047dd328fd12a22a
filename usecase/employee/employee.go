package employee

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/export"
	"github.com/fastygo/peopledash/internal/generator"
	"github.com/fastygo/peopledash/internal/ratelimit"
	"github.com/fastygo/peopledash/internal/telemetry"
	pkgLogger "github.com/fastygo/peopledash/pkg/logger"
	"github.com/fastygo/peopledash/repository"
	"github.com/fastygo/peopledash/usecase"
)

const (
	DefaultMinGenerate = 10
	DefaultMaxGenerate = 1000
)

// Config bounds what callers may request.
type Config struct {
	MinGenerate int
	MaxGenerate int
}

// GenerateResult reports what a Generate call did. Seed reproduces the same records.
type GenerateResult struct {
	Seed     uint64 `json:"seed"`
	Count    int    `json:"count"`
	Inserted int    `json:"inserted"`
	Buffered bool   `json:"buffered"`
}

// InsertResult reports what an Insert call did. Buffered batches are written once the
// store is reachable again and count as not yet inserted.
type InsertResult struct {
	Inserted int  `json:"inserted"`
	Buffered bool `json:"buffered"`
}

// UseCase is the data access facade over the employee store.
type UseCase struct {
	employees repository.EmployeeRepository
	limiter   ratelimit.Limiter
	buffer    usecase.InsertBuffer
	metrics   *telemetry.Metrics
	logger    *zap.Logger
	cfg       Config
}

// New wires the facade. buffer may be nil, in which case failed inserts surface to the caller.
func New(
	employees repository.EmployeeRepository,
	limiter ratelimit.Limiter,
	buffer usecase.InsertBuffer,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
	cfg Config,
) *UseCase {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinGenerate <= 0 {
		cfg.MinGenerate = DefaultMinGenerate
	}
	if cfg.MaxGenerate < cfg.MinGenerate {
		cfg.MaxGenerate = DefaultMaxGenerate
	}
	return &UseCase{
		employees: employees,
		limiter:   limiter,
		buffer:    buffer,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// List returns one page of employees, newest first.
func (uc *UseCase) List(ctx context.Context, filter repository.EmployeeFilter) (domain.EmployeePage, error) {
	if err := uc.allow(ctx, "list"); err != nil {
		return domain.EmployeePage{}, err
	}

	filter = filter.Normalize()
	records, total, err := uc.employees.List(ctx, filter)
	if err != nil {
		return domain.EmployeePage{}, uc.storeFailure(ctx, "list", "failed to fetch employees", err)
	}
	return domain.EmployeePage{
		Records:    records,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// Get returns one employee by id.
func (uc *UseCase) Get(ctx context.Context, id string) (domain.Employee, error) {
	if err := uc.allow(ctx, "get"); err != nil {
		return domain.Employee{}, err
	}
	if err := validID(id); err != nil {
		return domain.Employee{}, err
	}
	e, err := uc.employees.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, uc.storeFailure(ctx, "get", "failed to fetch employee", err)
	}
	return e, nil
}

// Insert validates and stores a batch. Nothing is written if any record is invalid.
func (uc *UseCase) Insert(ctx context.Context, employees []domain.Employee) (InsertResult, error) {
	if err := uc.allow(ctx, "insert"); err != nil {
		return InsertResult{}, err
	}
	for i, e := range employees {
		if err := e.Validate(); err != nil {
			return InsertResult{}, domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("record %d", i), err)
		}
	}
	n, buffered, err := uc.store(ctx, employees)
	if err != nil {
		return InsertResult{}, err
	}
	return InsertResult{Inserted: n, Buffered: buffered}, nil
}

// Update replaces every field of the employee with the given id.
func (uc *UseCase) Update(ctx context.Context, id string, e domain.Employee) (domain.Employee, error) {
	if err := uc.allow(ctx, "update"); err != nil {
		return domain.Employee{}, err
	}
	if err := validID(id); err != nil {
		return domain.Employee{}, err
	}
	e.ID = id
	if err := e.Validate(); err != nil {
		return domain.Employee{}, err
	}
	if err := uc.employees.Update(ctx, e); err != nil {
		return domain.Employee{}, uc.storeFailure(ctx, "update", "failed to update employee", err)
	}
	return e, nil
}

// Delete removes one employee by id.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.allow(ctx, "delete"); err != nil {
		return err
	}
	if err := validID(id); err != nil {
		return err
	}
	if err := uc.employees.Delete(ctx, id); err != nil {
		return uc.storeFailure(ctx, "delete", "failed to delete employee", err)
	}
	return nil
}

// Generate produces count synthetic employees and stores them. A nil seed draws a fresh one.
func (uc *UseCase) Generate(ctx context.Context, count int, seed *uint64) (GenerateResult, error) {
	if err := uc.allow(ctx, "generate"); err != nil {
		return GenerateResult{}, err
	}
	if count < uc.cfg.MinGenerate || count > uc.cfg.MaxGenerate {
		return GenerateResult{}, domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("count must be between %d and %d", uc.cfg.MinGenerate, uc.cfg.MaxGenerate))
	}

	var opts []generator.Option
	if seed != nil {
		opts = append(opts, generator.WithSeed(*seed))
	}
	gen := generator.New(opts...)
	employees, err := gen.Generate(count)
	if err != nil {
		return GenerateResult{}, err
	}
	uc.metrics.AddGenerated(len(employees))

	inserted, buffered, err := uc.store(ctx, employees)
	if err != nil {
		return GenerateResult{}, err
	}

	pkgLogger.WithRequestID(ctx, uc.logger).Info("employees generated",
		zap.Int("count", count),
		zap.Uint64("seed", gen.Seed()),
		zap.Bool("buffered", buffered))

	return GenerateResult{Seed: gen.Seed(), Count: count, Inserted: inserted, Buffered: buffered}, nil
}

// Export writes the whole collection as CSV.
func (uc *UseCase) Export(ctx context.Context, w io.Writer) (int, error) {
	if err := uc.allow(ctx, "export"); err != nil {
		return 0, err
	}
	employees, err := uc.employees.All(ctx)
	if err != nil {
		return 0, uc.storeFailure(ctx, "export", "failed to export data", err)
	}
	if err := export.WriteCSV(w, employees); err != nil {
		return 0, err
	}
	return len(employees), nil
}

// store writes employees, parking them in the buffer when enabled and the store is down.
// Rejections the store classified, such as a duplicate id, are never buffered.
func (uc *UseCase) store(ctx context.Context, employees []domain.Employee) (int, bool, error) {
	if len(employees) == 0 {
		return 0, false, nil
	}
	n, err := uc.employees.Insert(ctx, employees)
	if err == nil {
		uc.metrics.AddInserted(n)
		return n, false, nil
	}
	var rejected *domain.Error
	if errors.As(err, &rejected) || uc.buffer == nil {
		return 0, false, uc.storeFailure(ctx, "insert", "failed to add employees", err)
	}

	uc.metrics.StoreFailure("insert")
	if bufErr := uc.buffer.BufferEmployees(ctx, usecase.ActorFrom(ctx), employees); bufErr != nil {
		uc.logger.Error("failed to buffer employee insert", zap.Error(bufErr))
		return 0, false, domain.Unavailable("failed to add employees", err)
	}
	uc.metrics.Buffered()
	uc.logger.Warn("employee insert buffered due to repository error", zap.Error(err))
	return 0, true, nil
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid employee id", err)
	}
	return nil
}

func (uc *UseCase) allow(ctx context.Context, operation string) error {
	ok, err := uc.limiter.Allow(ctx, usecase.ActorFrom(ctx))
	if err != nil {
		return domain.Unavailable("rate limiter unavailable", err)
	}
	if !ok {
		uc.metrics.RateLimited(operation)
		pkgLogger.WithRequestID(ctx, uc.logger).Debug("call rejected by rate limiter", zap.String("operation", operation))
		return domain.ErrRateLimited
	}
	return nil
}

// storeFailure reports an unreachable store. Errors the store already classified, such as
// NOT_FOUND or CONFLICT, are returned unchanged.
func (uc *UseCase) storeFailure(ctx context.Context, operation, message string, err error) error {
	var classified *domain.Error
	if errors.As(err, &classified) {
		return err
	}
	uc.metrics.StoreFailure(operation)
	pkgLogger.WithRequestID(ctx, uc.logger).Error(message, zap.String("operation", operation), zap.Error(err))
	return domain.Unavailable(message, err)
}
