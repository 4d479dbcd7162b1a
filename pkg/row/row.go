// pkg/row/row.go

// Package row gives typed, null-aware access to the current row of a
// database result cursor.
//
// A Row is a view over a shared Cursor, not a copy: advancing the cursor
// through Next or iteration moves every Row that references it. Only the Row
// matching the cursor's actual position reads meaningful values, and rows
// already passed cannot be revisited.
//
//	r, err := db.Query(ctx, conn, `SELECT id, user_id, email FROM accounts`)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for acct := range r.All() {
//		id, err := acct.Int64(row.Label("id"))
//		...
//		email, err := acct.String(row.Field("email")) // nil when NULL
//	}
//
// Accessors return a nil pointer for SQL NULL, never the driver's zero value.
// Bool is the exception and reports false for NULL.
package row

import (
	"fmt"
	"time"
)

// Row pairs a shared Cursor with a position marker. The position is
// descriptive only; the cursor decides which row is current.
type Row struct {
	cursor   Cursor
	position int
}

// New wraps a cursor positioned before its first row.
func New(c Cursor) Row {
	return Row{cursor: c}
}

// NewAt wraps a cursor at the given logical position.
func NewAt(c Cursor, position int) Row {
	return Row{cursor: c, position: position}
}

// Position returns the logical position this Row was created at.
func (r Row) Position() int {
	return r.position
}

// Cursor returns the underlying cursor.
func (r Row) Cursor() Cursor {
	return r.cursor
}

// Next advances the underlying cursor. Do not mix it with All or Iterator
// on the same cursor: both advance it.
func (r Row) Next() bool {
	return r.cursor.Next()
}

// Close closes the underlying cursor.
func (r Row) Close() error {
	return r.cursor.Close()
}

// Metadata describes the result columns.
func (r Row) Metadata() ([]ColumnMeta, error) {
	return r.cursor.Columns()
}

// Warnings returns warnings reported by the driver for the cursor.
func (r Row) Warnings() []error {
	return r.cursor.Warnings()
}

// Statement returns the statement that produced the cursor.
func (r Row) Statement() string {
	return r.cursor.Statement()
}

// Value extracts col as type t. The result is nil when the column is SQL NULL.
// Timestamps are read in time.Local.
func (r Row) Value(t Type, col Column) (any, error) {
	return r.valueIn(t, col, time.Local)
}

func (r Row) valueIn(t Type, col Column, loc *time.Location) (any, error) {
	convert, ok := converters[t]
	if !ok {
		return nil, fmt.Errorf("row: unsupported type %s", t)
	}
	v, err := r.cursor.Value(col)
	if err != nil {
		return nil, err
	}
	if r.cursor.WasNull() {
		return nil, nil
	}
	out, err := convert(v, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: column %s as %s: %v", ErrTypeMismatch, col, t, err)
	}
	return out, nil
}

// As extracts col as type t and asserts the result to T.
// It returns nil for SQL NULL.
func As[T any](r Row, t Type, col Column) (*T, error) {
	return asIn[T](r, t, col, time.Local)
}

func asIn[T any](r Row, t Type, col Column, loc *time.Location) (*T, error) {
	v, err := r.valueIn(t, col, loc)
	if err != nil || v == nil {
		return nil, err
	}
	out, ok := v.(T)
	if !ok {
		var want T
		return nil, fmt.Errorf("%w: column %s as %s yields %T, not %T", ErrTypeMismatch, col, t, v, want)
	}
	return &out, nil
}
