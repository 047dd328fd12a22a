package transport

import "github.com/fastygo/peopledash/domain"

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// GenerateRequest asks for count synthetic employees. Count defaults server side; Seed is optional.
type GenerateRequest struct {
	Count int     `json:"count"`
	Seed  *uint64 `json:"seed,omitempty"`
}

// InsertRequest carries a batch of employee records.
type InsertRequest struct {
	Employees []domain.Employee `json:"employees"`
}
