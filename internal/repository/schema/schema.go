// Package schema owns the relational schema and applies it idempotently at
// startup.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var ddl string

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func Apply(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	return nil
}
