// pkg/row/cursor.go
package row

import "reflect"

// Cursor is a forward-only result cursor owned by the query-execution layer.
// A Cursor is not safe for concurrent use.
type Cursor interface {
	// Next advances to the following row and reports whether one exists.
	Next() bool
	// Value returns the raw driver value of col in the current row.
	// SQL NULL is returned as nil and recorded for WasNull.
	Value(col Column) (any, error)
	// WasNull reports whether the last value read by Value was SQL NULL.
	WasNull() bool
	// Columns describes the result columns.
	Columns() ([]ColumnMeta, error)
	// Warnings returns driver warnings reported for this cursor, if any.
	Warnings() []error
	// Statement returns the statement text that produced the cursor.
	Statement() string
	// Close releases the cursor's resources.
	Close() error
	// IsClosed reports whether Close was called or the cursor was exhausted.
	IsClosed() bool
	// Err returns the error, if any, that ended iteration.
	Err() error
}

// ColumnMeta describes one result column.
type ColumnMeta struct {
	Name         string
	DatabaseType string
	Nullable     bool
	HasNullable  bool
	ScanType     reflect.Type
}
