package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/csoai/entitlement/pkg/entitlement"
)

// Querier is the subset of pgxpool.Pool the counter needs, so tests and
// transactions can stand in for a pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresCounter counts rows in the system of record. Use it as the source
// of truth behind a cached RedisCounter, or directly when create volume is
// low enough that an aggregate per check is acceptable.
type PostgresCounter struct {
	db    Querier
	query string
}

// NewPostgresCounter creates a counter running the given aggregate query.
// The query must return a single bigint and take the account ID as $1, e.g.
//
//	SELECT count(*) FROM ai_systems WHERE account_id = $1
//
// Panics if db is nil or the query is empty to fail fast during
// initialization.
func NewPostgresCounter(db Querier, query string) *PostgresCounter {
	if db == nil {
		panic("usage: querier cannot be nil")
	}
	if query == "" {
		panic("usage: count query cannot be empty")
	}
	return &PostgresCounter{db: db, query: query}
}

// Counter adapts the counter to the registry's CounterFunc shape.
func (c *PostgresCounter) Counter() entitlement.CounterFunc {
	return func(ctx context.Context, accountID uuid.UUID) (int64, error) {
		var n int64
		if err := c.db.QueryRow(ctx, c.query, accountID).Scan(&n); err != nil {
			return 0, errors.Join(ErrCounterUnavailable, err)
		}
		return n, nil
	}
}
