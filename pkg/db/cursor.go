// pkg/db/cursor.go
package db

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"sqlrow/pkg/row"
)

// Cursor adapts *sqlx.Rows to row.Cursor. Each advance scans the whole
// current row once; Value then serves columns from that scan.
type Cursor struct {
	rows      *sqlx.Rows
	statement string
	names     []string
	meta      []row.ColumnMeta
	zoneless  []bool

	values  []any
	onRow   bool
	wasNull bool
	closed  bool
	done    bool
	err     error
}

var _ row.Cursor = (*Cursor)(nil)

// zonelessTypes are the temporal column types that store a wall clock
// without a zone.
var zonelessTypes = map[string]bool{
	"TIMESTAMP": true,
	"DATETIME":  true,
	"DATE":      true,
	"TIME":      true,
}

// NewCursor wraps rows, which must be positioned before the first row.
// The cursor takes ownership of rows.
func NewCursor(rows *sqlx.Rows, statement string) (*Cursor, error) {
	names, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}
	c := &Cursor{
		rows:      rows,
		statement: statement,
		names:     names,
		meta:      make([]row.ColumnMeta, len(types)),
		zoneless:  make([]bool, len(types)),
	}
	for i, ct := range types {
		nullable, ok := ct.Nullable()
		c.meta[i] = row.ColumnMeta{
			Name:         ct.Name(),
			DatabaseType: ct.DatabaseTypeName(),
			Nullable:     nullable,
			HasNullable:  ok,
			ScanType:     ct.ScanType(),
		}
		c.zoneless[i] = zonelessTypes[strings.ToUpper(ct.DatabaseTypeName())]
	}
	return c, nil
}

func (c *Cursor) Next() bool {
	c.onRow = false
	if c.closed || c.done {
		return false
	}
	if !c.rows.Next() {
		c.done = true
		c.err = c.rows.Err()
		return false
	}
	values, err := c.rows.SliceScan()
	if err != nil {
		c.done = true
		c.err = err
		_ = c.rows.Close()
		return false
	}
	for i, v := range values {
		if t, ok := v.(time.Time); ok && i < len(c.zoneless) && c.zoneless[i] {
			values[i] = rebaseUTC(t)
		}
	}
	c.values = values
	c.onRow = true
	return true
}

// rebaseUTC keeps the wall clock of t and marks it as UTC. lib/pq returns
// timestamp and date values in an unnamed zero-offset zone.
func rebaseUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (c *Cursor) Value(col row.Column) (any, error) {
	if c.closed {
		return nil, row.ErrCursorClosed
	}
	if !c.onRow {
		return nil, row.ErrNoCurrentRow
	}
	i, err := col.Resolve(c.names)
	if err != nil {
		return nil, err
	}
	v := c.values[i]
	c.wasNull = v == nil
	return v, nil
}

func (c *Cursor) WasNull() bool {
	return c.wasNull
}

// Columns reports column metadata, loaded when the cursor was created.
func (c *Cursor) Columns() ([]row.ColumnMeta, error) {
	return c.meta, nil
}

// Warnings is always empty: database/sql has no warning channel.
func (c *Cursor) Warnings() []error {
	return nil
}

func (c *Cursor) Statement() string {
	return c.statement
}

func (c *Cursor) Close() error {
	c.closed = true
	c.onRow = false
	return c.rows.Close()
}

func (c *Cursor) IsClosed() bool {
	return c.closed || c.done
}

func (c *Cursor) Err() error {
	return c.err
}
