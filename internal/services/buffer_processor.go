package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/infrastructure/buffer"
	"github.com/fastygo/peopledash/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the buffer is drained and how long items live.
// Interval is truncated to whole seconds, with a one second minimum.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// BufferProcessor replays parked employee inserts once Postgres is reachable again.
type BufferProcessor struct {
	store     *buffer.Store
	monitor   ConnectionHealth
	employees repository.EmployeeRepository
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       ProcessorConfig
	now       func() time.Time
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	employees repository.EmployeeRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	cfg.Interval = max(cfg.Interval.Truncate(time.Second), time.Second)
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:     store,
		monitor:   monitor,
		employees: employees,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
		now:       time.Now,
	}

	bp.schedule("@every "+cfg.Interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := bp.Drain(ctx); err != nil {
			bp.logger.Error("buffer drain failed", zap.Error(err))
		}
	})
	bp.schedule("@hourly", bp.purgeExpired)

	return bp
}

func (bp *BufferProcessor) schedule(spec string, job func()) {
	if _, err := bp.cron.AddFunc(spec, job); err != nil {
		bp.logger.Error("failed to schedule buffer job", zap.String("schedule", spec), zap.Error(err))
	}
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("buffer processor started", zap.Duration("interval", bp.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Info("buffer processor stopped")
}

// Drain replays one batch of buffered items. Items the store rejects outright are dropped;
// other failures are requeued until MaxRetries.
func (bp *BufferProcessor) Drain(ctx context.Context) error {
	if bp == nil || bp.store == nil {
		return nil
	}
	if bp.monitor != nil && !bp.monitor.IsOnline() {
		bp.logger.Debug("skipping buffer drain (offline)")
		return nil
	}

	items, err := bp.store.GetBatch(bp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := bp.processItem(ctx, item); err != nil {
			bp.logger.Error("failed to replay buffer item",
				zap.String("item_id", item.ID),
				zap.String("entity", item.Entity),
				zap.Int("retries", item.Retries),
				zap.Error(err))

			item.Retries++
			var rejected *domain.Error
			if item.Retries >= bp.cfg.MaxRetries || errors.As(err, &rejected) {
				bp.logger.Warn("dropping buffer item", zap.String("item_id", item.ID))
				_ = bp.store.Remove(item)
				continue
			}
			if err := bp.store.Requeue(item); err != nil {
				bp.logger.Error("failed to requeue buffer item", zap.Error(err))
			}
			continue
		}

		if err := bp.store.Remove(item); err != nil {
			bp.logger.Warn("failed to purge processed buffer item", zap.Error(err))
		}
	}
	return nil
}

// Defer parks an item for later replay. The caller has already failed to write it.
func (bp *BufferProcessor) Defer(_ context.Context, item buffer.Item) error {
	if bp == nil || bp.store == nil {
		return fmt.Errorf("buffer processor not configured")
	}
	if err := bp.store.Enqueue(item); err != nil {
		return err
	}
	bp.logger.Info("write buffered for replay",
		zap.String("entity", item.Entity),
		zap.String("operation", item.Operation),
		zap.String("source", item.Source))
	return nil
}

// Size returns the number of buffered items.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (bp *BufferProcessor) purgeExpired() {
	removed, err := bp.store.Cleanup(bp.now().Add(-bp.cfg.Retention))
	if err != nil {
		bp.logger.Error("buffer cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		bp.logger.Warn("expired buffer items dropped", zap.Int("count", removed))
	}
}

func (bp *BufferProcessor) processItem(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch item.Entity {
	case buffer.EntityEmployees:
		switch item.Operation {
		case buffer.OperationInsert:
			var employees []domain.Employee
			if err := json.Unmarshal(item.Data, &employees); err != nil {
				return domain.WrapError(domain.ErrCodeInvalid, "decode buffered employees", err)
			}
			_, err := bp.employees.Insert(ctx, employees)
			return err
		default:
			return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unsupported operation %s", item.Operation))
		}
	default:
		return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unsupported entity %s", item.Entity))
	}
}
