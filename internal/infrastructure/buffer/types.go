package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityEmployees = "employees"

	OperationInsert = "insert"

	// DefaultPriority is used for items enqueued without one. Lower values drain first.
	DefaultPriority = 3
	maxPriority     = 5
)

// Item is a write that failed against primary storage and is parked until it can be replayed.
type Item struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > maxPriority {
		i.Priority = DefaultPriority
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
