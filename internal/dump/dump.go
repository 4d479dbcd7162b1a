// internal/dump/dump.go
package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"sqlrow/internal/util"
	"sqlrow/pkg/row"
)

// Format selects how rows are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", util.ErrUnknownFormat, s)
	}
}

// columnTypes picks the extraction type for database type names reported
// by PostgreSQL and MySQL. Anything else is rendered from the raw value.
var columnTypes = map[string]row.Type{
	"NUMERIC":   row.TypeDecimal,
	"DECIMAL":   row.TypeDecimal,
	"UUID":      row.TypeUUID,
	"_TEXT":     row.TypeArray,
	"_VARCHAR":  row.TypeArray,
	"TIMESTAMP": row.TypeTimestamp,
	"DATETIME":  row.TypeTimestamp,
	"DATE":      row.TypeDate,
	"BOOL":      row.TypeBool,
	"BOOLEAN":   row.TypeBool,
	"TEXT":      row.TypeString,
	"VARCHAR":   row.TypeString,
	"BYTEA":     row.TypeBlob,
	"BLOB":      row.TypeBlob,
}

// Write renders the rows remaining in r to w and returns how many were
// written. A positive limit stops output after that many rows.
func Write(w io.Writer, r row.Row, format Format, limit int) (int, error) {
	meta, err := r.Metadata()
	if err != nil {
		return 0, err
	}

	var out rowWriter
	switch format {
	case FormatTable:
		out = newTableWriter(w, meta)
	case FormatJSON:
		out = &jsonWriter{w: w, meta: meta}
	default:
		return 0, fmt.Errorf("%w: %q", util.ErrUnknownFormat, format)
	}

	n := 0
	for each := range r.All() {
		values := make([]any, len(meta))
		for i, col := range meta {
			t, ok := columnTypes[strings.ToUpper(col.DatabaseType)]
			if !ok {
				t = row.TypeAny
			}
			v, err := each.Value(t, row.Index(i+1))
			if err != nil {
				return n, err
			}
			values[i] = v
		}
		if err := out.write(values); err != nil {
			return n, err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	if err := r.Cursor().Err(); err != nil {
		return n, err
	}
	return n, out.flush()
}

type rowWriter interface {
	write(values []any) error
	flush() error
}

type tableWriter struct {
	tw *tabwriter.Writer
}

func newTableWriter(w io.Writer, meta []row.ColumnMeta) *tableWriter {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := make([]string, len(meta))
	for i, col := range meta {
		names[i] = col.Name
	}
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	return &tableWriter{tw: tw}
}

func (t *tableWriter) write(values []any) error {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = text(v)
	}
	_, err := fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
	return err
}

func (t *tableWriter) flush() error {
	return t.tw.Flush()
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case []string:
		return "{" + strings.Join(v, ",") + "}"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// jsonWriter emits one object per row, keeping column order.
type jsonWriter struct {
	w    io.Writer
	meta []row.ColumnMeta
}

func (j *jsonWriter) write(values []any) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		key, err := json.Marshal(j.meta[i].Name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}\n")
	_, err := j.w.Write(buf.Bytes())
	return err
}

func (j *jsonWriter) flush() error {
	return nil
}
