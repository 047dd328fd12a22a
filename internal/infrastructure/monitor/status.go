package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Redis         bool      `json:"redis"`
	BufferEnabled bool      `json:"buffer_enabled"`
	Buffer        bool      `json:"buffer"`
	BufferSize    int       `json:"buffer_size"`
	LastCheck     time.Time `json:"last_check"`
}

// Healthy reports whether the primary stores answered the last probe.
func (s Status) Healthy() bool {
	return s.PostgreSQL && s.Redis
}
