// pkg/row/rowtest/cursor.go

// Package rowtest provides an in-memory row.Cursor for tests.
package rowtest

import (
	"reflect"

	"sqlrow/pkg/row"
)

// Cursor serves a fixed table. Like database/sql rows it reports itself
// closed once Next runs past the last row; reads after that fail with
// row.ErrNoCurrentRow, reads after Close with row.ErrCursorClosed.
type Cursor struct {
	columns   []string
	types     []string
	rows      [][]any
	current   int
	closed    bool
	done      bool
	wasNull   bool
	statement string
	warnings  []error
	valueErr  error
	iterErr   error

	// Advances counts calls to Next; Closes counts calls to Close.
	Advances int
	Closes   int
}

// New returns a cursor over rows, positioned before the first one.
func New(columns []string, rows ...[]any) *Cursor {
	return &Cursor{columns: columns, rows: rows}
}

// WithStatement sets the text returned by Statement.
func (c *Cursor) WithStatement(statement string) *Cursor {
	c.statement = statement
	return c
}

// WithTypes sets the database type names reported by Columns, in column order.
func (c *Cursor) WithTypes(types ...string) *Cursor {
	c.types = types
	return c
}

// WithWarnings sets the warnings returned by Warnings.
func (c *Cursor) WithWarnings(warnings ...error) *Cursor {
	c.warnings = warnings
	return c
}

// FailValues makes every Value call return err, as a failing driver would.
func (c *Cursor) FailValues(err error) *Cursor {
	c.valueErr = err
	return c
}

// FailIteration makes Next stop immediately and Err report err.
func (c *Cursor) FailIteration(err error) *Cursor {
	c.iterErr = err
	return c
}

func (c *Cursor) Next() bool {
	c.Advances++
	if c.closed || c.done {
		return false
	}
	if c.iterErr != nil || c.current >= len(c.rows) {
		c.current = len(c.rows) + 1
		c.done = true
		return false
	}
	c.current++
	return true
}

func (c *Cursor) Value(col row.Column) (any, error) {
	if c.closed {
		return nil, row.ErrCursorClosed
	}
	if c.valueErr != nil {
		return nil, c.valueErr
	}
	if c.current < 1 || c.current > len(c.rows) {
		return nil, row.ErrNoCurrentRow
	}
	i, err := col.Resolve(c.columns)
	if err != nil {
		return nil, err
	}
	var v any
	if r := c.rows[c.current-1]; i < len(r) {
		v = r[i]
	}
	c.wasNull = v == nil
	if c.wasNull {
		// Drivers hand back a zero value for NULL; callers must consult WasNull.
		return int64(0), nil
	}
	return v, nil
}

func (c *Cursor) WasNull() bool {
	return c.wasNull
}

func (c *Cursor) Columns() ([]row.ColumnMeta, error) {
	if c.closed {
		return nil, row.ErrCursorClosed
	}
	meta := make([]row.ColumnMeta, len(c.columns))
	for i, name := range c.columns {
		meta[i] = row.ColumnMeta{Name: name}
		if i < len(c.types) {
			meta[i].DatabaseType = c.types[i]
		}
		for _, r := range c.rows {
			if i < len(r) && r[i] != nil {
				meta[i].ScanType = reflect.TypeOf(r[i])
				break
			}
		}
	}
	return meta, nil
}

func (c *Cursor) Warnings() []error {
	return c.warnings
}

func (c *Cursor) Statement() string {
	return c.statement
}

func (c *Cursor) Close() error {
	c.Closes++
	c.closed = true
	return nil
}

func (c *Cursor) IsClosed() bool {
	return c.closed || c.done
}

func (c *Cursor) Err() error {
	return c.iterErr
}
