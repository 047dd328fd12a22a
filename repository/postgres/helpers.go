package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/peopledash/domain"
)

// SQLSTATE codes and classes the repositories classify.
const (
	sqlStateUniqueViolation    = "23505"
	sqlStateClassIntegrity     = "23"
	sqlStateClassDataException = "22"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return b
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere. An empty s matches everything.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// classify turns constraint and data errors into domain errors: a duplicate key is a
// CONFLICT, any other integrity or data exception is INVALID. Everything else is returned
// unchanged and means the store could not serve the call.
func classify(err error, message string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == sqlStateUniqueViolation:
		return domain.WrapError(domain.ErrCodeConflict, message, err)
	case strings.HasPrefix(pgErr.Code, sqlStateClassIntegrity), strings.HasPrefix(pgErr.Code, sqlStateClassDataException):
		return domain.WrapError(domain.ErrCodeInvalid, message, err)
	}
	return err
}
