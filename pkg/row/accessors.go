// pkg/row/accessors.go
package row

import (
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (r Row) String(col Column) (*string, error) { return As[string](r, TypeString, col) }

// Bool reports false for SQL NULL. Callers reading nullable boolean columns
// should use As[bool] with TypeBool instead.
func (r Row) Bool(col Column) (bool, error) {
	b, err := As[bool](r, TypeBool, col)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

func (r Row) Int8(col Column) (*int8, error)       { return As[int8](r, TypeInt8, col) }
func (r Row) Int16(col Column) (*int16, error)     { return As[int16](r, TypeInt16, col) }
func (r Row) Int32(col Column) (*int32, error)     { return As[int32](r, TypeInt32, col) }
func (r Row) Int64(col Column) (*int64, error)     { return As[int64](r, TypeInt64, col) }
func (r Row) Float32(col Column) (*float32, error) { return As[float32](r, TypeFloat32, col) }
func (r Row) Float64(col Column) (*float64, error) { return As[float64](r, TypeFloat64, col) }
func (r Row) Bytes(col Column) (*[]byte, error)    { return As[[]byte](r, TypeBytes, col) }
func (r Row) Blob(col Column) (*[]byte, error)     { return As[[]byte](r, TypeBlob, col) }
func (r Row) Clob(col Column) (*string, error)     { return As[string](r, TypeClob, col) }
func (r Row) NClob(col Column) (*string, error)    { return As[string](r, TypeNClob, col) }
func (r Row) Ref(col Column) (*string, error)      { return As[string](r, TypeRef, col) }
func (r Row) Array(col Column) (*[]string, error)  { return As[[]string](r, TypeArray, col) }

func (r Row) Decimal(col Column) (*decimal.Decimal, error) {
	return As[decimal.Decimal](r, TypeDecimal, col)
}

func (r Row) UUID(col Column) (*uuid.UUID, error) {
	return As[uuid.UUID](r, TypeUUID, col)
}

func (r Row) URL(col Column) (*url.URL, error) {
	u, err := As[*url.URL](r, TypeURL, col)
	if err != nil || u == nil {
		return nil, err
	}
	return *u, nil
}

// Any returns the raw driver value, or nil for SQL NULL.
func (r Row) Any(col Column) (any, error) {
	return r.Value(TypeAny, col)
}

// Timestamp reads the stored date-time as a wall clock in time.Local.
func (r Row) Timestamp(col Column) (*time.Time, error) {
	return asIn[time.Time](r, TypeTimestamp, col, time.Local)
}

// TimestampIn reads the stored date-time as a wall clock in loc.
func (r Row) TimestampIn(col Column, loc *time.Location) (*time.Time, error) {
	return asIn[time.Time](r, TypeTimestamp, col, loc)
}

// Date returns midnight of the stored date in time.Local.
func (r Row) Date(col Column) (*time.Time, error) {
	return asIn[time.Time](r, TypeDate, col, time.Local)
}

func (r Row) DateIn(col Column, loc *time.Location) (*time.Time, error) {
	return asIn[time.Time](r, TypeDate, col, loc)
}

// Time returns the stored time of day on January 1st of year 0.
func (r Row) Time(col Column) (*time.Time, error) {
	return asIn[time.Time](r, TypeTime, col, time.Local)
}

func (r Row) TimeIn(col Column, loc *time.Location) (*time.Time, error) {
	return asIn[time.Time](r, TypeTime, col, loc)
}

// Zoned returns the stored instant expressed in time.Local. It also serves
// offset date-times, since a time.Time carries both zone and offset.
func (r Row) Zoned(col Column) (*time.Time, error) {
	return As[time.Time](r, TypeZoned, col)
}

// Instant returns the stored instant expressed in UTC.
func (r Row) Instant(col Column) (*time.Time, error) {
	return As[time.Time](r, TypeInstant, col)
}

// CharacterStream, BinaryStream and ASCIIStream each read a column value
// once. Reading the same value through two stream accessors is unsupported.
func (r Row) CharacterStream(col Column) (io.Reader, error) { return r.stream(TypeCharacterStream, col) }
func (r Row) BinaryStream(col Column) (io.Reader, error)    { return r.stream(TypeBinaryStream, col) }
func (r Row) ASCIIStream(col Column) (io.Reader, error)     { return r.stream(TypeASCIIStream, col) }

func (r Row) stream(t Type, col Column) (io.Reader, error) {
	rd, err := As[io.Reader](r, t, col)
	if err != nil || rd == nil {
		return nil, err
	}
	return *rd, nil
}
