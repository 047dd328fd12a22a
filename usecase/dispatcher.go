package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fastygo/peopledash/domain"
)

// QueryHandler resolves a named read-only query. params is query specific and may be nil.
type QueryHandler func(ctx context.Context, params interface{}) (interface{}, error)

// Dispatcher routes named queries to their handlers.
type Dispatcher struct {
	qryHandlers map[string]QueryHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		qryHandlers: make(map[string]QueryHandler),
	}
}

func (d *Dispatcher) RegisterQuery(name string, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qryHandlers[name] = handler
}

func (d *Dispatcher) ExecuteQuery(ctx context.Context, name string, params interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.qryHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.WrapError(domain.ErrCodeNotFound, domain.ErrUnknownView.Message, fmt.Errorf("query %q not registered", name))
	}
	return handler(ctx, params)
}

// Queries lists registered query names in sorted order.
func (d *Dispatcher) Queries() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.qryHandlers))
	for name := range d.qryHandlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
