package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/infrastructure/buffer"
	"github.com/fastygo/peopledash/usecase"
)

// BufferBridge adapts the processor to the use case port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferEmployees(ctx context.Context, source string, employees []domain.Employee) error {
	if b.processor == nil || len(employees) == 0 {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(employees)
	if err != nil {
		return err
	}
	return b.processor.Defer(ctx, buffer.Item{
		Source:    source,
		Entity:    buffer.EntityEmployees,
		Operation: buffer.OperationInsert,
		Data:      payload,
		Priority:  buffer.DefaultPriority,
	})
}

var _ usecase.InsertBuffer = (*BufferBridge)(nil)
