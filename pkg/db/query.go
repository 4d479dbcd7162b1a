// pkg/db/query.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sqlrow/pkg/row"
)

// Query runs query on q (a *sqlx.DB or *sqlx.Tx) and returns a Row over the
// result, positioned before the first row. The caller owns the Row and must
// close it.
func Query(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (row.Row, error) {
	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return row.Row{}, fmt.Errorf("failed to run query: %w", err)
	}
	c, err := NewCursor(rows, query)
	if err != nil {
		return row.Row{}, fmt.Errorf("failed to read result columns: %w", err)
	}
	return row.New(c), nil
}

// Select runs query and scans every row into dest, a pointer to a slice of
// structs. Fields map to columns by their db tag, or else by the snake_case
// form of the field name when q came from Open or Wrap.
func Select(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) error {
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return fmt.Errorf("failed to select: %w", err)
	}
	return nil
}
