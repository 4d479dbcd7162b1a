// pkg/row/types.go
package row

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Type tags the Go representation a column value is extracted as.
type Type int

const (
	TypeString Type = iota + 1
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	TypeBytes
	TypeDate
	TypeTime
	TypeTimestamp
	TypeZoned
	TypeInstant
	TypeBlob
	TypeClob
	TypeNClob
	TypeAny
	TypeURL
	TypeRef
	TypeUUID
	TypeArray
	TypeCharacterStream
	TypeBinaryStream
	TypeASCIIStream
)

var typeNames = map[Type]string{
	TypeString:          "string",
	TypeBool:            "bool",
	TypeInt8:            "int8",
	TypeInt16:           "int16",
	TypeInt32:           "int32",
	TypeInt64:           "int64",
	TypeFloat32:         "float32",
	TypeFloat64:         "float64",
	TypeDecimal:         "decimal",
	TypeBytes:           "bytes",
	TypeDate:            "date",
	TypeTime:            "time",
	TypeTimestamp:       "timestamp",
	TypeZoned:           "zoned timestamp",
	TypeInstant:         "instant",
	TypeBlob:            "blob",
	TypeClob:            "clob",
	TypeNClob:           "nclob",
	TypeAny:             "any",
	TypeURL:             "url",
	TypeRef:             "ref",
	TypeUUID:            "uuid",
	TypeArray:           "array",
	TypeCharacterStream: "character stream",
	TypeBinaryStream:    "binary stream",
	TypeASCIIStream:     "ascii stream",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// converter turns a non-NULL driver value into the Go value for a Type.
// loc is the zone wall-clock timestamps are read in.
type converter func(v any, loc *time.Location) (any, error)

var converters = map[Type]converter{
	TypeString:          scanned[string],
	TypeBool:            scanned[bool],
	TypeInt8:            scanned[int8],
	TypeInt16:           scanned[int16],
	TypeInt32:           scanned[int32],
	TypeInt64:           scanned[int64],
	TypeFloat32:         scanned[float32],
	TypeFloat64:         scanned[float64],
	TypeDecimal:         toDecimal,
	TypeBytes:           scanned[[]byte],
	TypeDate:            toDate,
	TypeTime:            toClock,
	TypeTimestamp:       toTimestamp,
	TypeZoned:           toZoned,
	TypeInstant:         toInstant,
	TypeBlob:            scanned[[]byte],
	TypeClob:            scanned[string],
	TypeNClob:           scanned[string],
	TypeAny:             func(v any, _ *time.Location) (any, error) { return v, nil },
	TypeURL:             toURL,
	TypeRef:             scanned[string],
	TypeUUID:            toUUID,
	TypeArray:           toStrings,
	TypeCharacterStream: toCharacterStream,
	TypeBinaryStream:    toBinaryStream,
	TypeASCIIStream:     toASCIIStream,
}

// scanned converts with the same rules database/sql applies in Rows.Scan.
func scanned[T any](v any, _ *time.Location) (any, error) {
	var n sql.Null[T]
	if err := n.Scan(v); err != nil {
		return nil, err
	}
	return n.V, nil
}

func toDecimal(v any, _ *time.Location) (any, error) {
	var d decimal.Decimal
	if err := d.Scan(v); err != nil {
		return nil, err
	}
	return d, nil
}

func toUUID(v any, _ *time.Location) (any, error) {
	var u uuid.UUID
	if err := u.Scan(v); err != nil {
		return nil, err
	}
	return u, nil
}

func toStrings(v any, _ *time.Location) (any, error) {
	if s, ok := v.([]string); ok {
		return append([]string(nil), s...), nil
	}
	var a pq.StringArray
	if err := a.Scan(v); err != nil {
		return nil, err
	}
	return []string(a), nil
}

func toURL(v any, loc *time.Location) (any, error) {
	s, err := scanned[string](v, loc)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s.(string))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("url %q has no scheme", u)
	}
	return u, nil
}

func toCharacterStream(v any, loc *time.Location) (any, error) {
	s, err := scanned[string](v, loc)
	if err != nil {
		return nil, err
	}
	return io.Reader(strings.NewReader(s.(string))), nil
}

func toBinaryStream(v any, loc *time.Location) (any, error) {
	b, err := scanned[[]byte](v, loc)
	if err != nil {
		return nil, err
	}
	return io.Reader(bytes.NewReader(b.([]byte))), nil
}

func toASCIIStream(v any, loc *time.Location) (any, error) {
	s, err := scanned[string](v, loc)
	if err != nil {
		return nil, err
	}
	ascii := strings.Map(func(r rune) rune {
		if r > 0x7f {
			return '?'
		}
		return r
	}, s.(string))
	return io.Reader(strings.NewReader(ascii)), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"15:04:05.999999999",
}

func parseTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported time value of type %T", v)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}

// zoneless reports whether t came from a column without time zone. Drivers
// hand those back in UTC or, like lib/pq, in an unnamed zero-offset zone.
func zoneless(t time.Time) bool {
	if t.Location() == time.UTC {
		return true
	}
	name, offset := t.Zone()
	return name == "" && offset == 0
}

// wallClock reads t in loc. Zone-less values keep their wall clock; values
// carrying a zone are instants and are moved.
func wallClock(t time.Time, loc *time.Location) time.Time {
	if !zoneless(t) {
		return t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func toTimestamp(v any, loc *time.Location) (any, error) {
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	return wallClock(t, loc), nil
}

func toDate(v any, loc *time.Location) (any, error) {
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	t = wallClock(t, loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func toClock(v any, loc *time.Location) (any, error) {
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	t = wallClock(t, loc)
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

func toZoned(v any, _ *time.Location) (any, error) {
	return toTimestamp(v, time.Local)
}

func toInstant(v any, _ *time.Location) (any, error) {
	t, err := toTimestamp(v, time.Local)
	if err != nil {
		return nil, err
	}
	return t.(time.Time).UTC(), nil
}
