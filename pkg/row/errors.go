// pkg/row/errors.go
package row

import "errors"

// Errors raised by Cursor implementations and by typed extraction.
// Driver errors are never wrapped in these; they reach the caller unchanged.
var (
	ErrCursorClosed = errors.New("cursor is closed")
	ErrNoCurrentRow = errors.New("no current row")
	ErrNoSuchColumn = errors.New("no such column")
	ErrTypeMismatch = errors.New("column value cannot be converted")
)
