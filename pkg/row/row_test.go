// pkg/row/row_test.go
package row_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sqlrow/pkg/row"
	"sqlrow/pkg/row/rowtest"
)

// at returns a Row whose cursor has been advanced onto the first data row.
func at(t *testing.T, c *rowtest.Cursor) row.Row {
	t.Helper()
	r := row.New(c)
	require.True(t, r.Next())
	return r
}

func TestNullableAccessorsReturnNilForNull(t *testing.T) {
	r := at(t, rowtest.New([]string{"v"}, []any{nil}))

	accessors := map[string]func(row.Column) (any, error){
		"String":   func(c row.Column) (any, error) { v, err := r.String(c); return v, err },
		"Int8":     func(c row.Column) (any, error) { v, err := r.Int8(c); return v, err },
		"Int16":    func(c row.Column) (any, error) { v, err := r.Int16(c); return v, err },
		"Int32":    func(c row.Column) (any, error) { v, err := r.Int32(c); return v, err },
		"Int64":    func(c row.Column) (any, error) { v, err := r.Int64(c); return v, err },
		"Float32":  func(c row.Column) (any, error) { v, err := r.Float32(c); return v, err },
		"Float64":  func(c row.Column) (any, error) { v, err := r.Float64(c); return v, err },
		"Decimal":  func(c row.Column) (any, error) { v, err := r.Decimal(c); return v, err },
		"Bytes":    func(c row.Column) (any, error) { v, err := r.Bytes(c); return v, err },
		"Blob":     func(c row.Column) (any, error) { v, err := r.Blob(c); return v, err },
		"Clob":     func(c row.Column) (any, error) { v, err := r.Clob(c); return v, err },
		"NClob":    func(c row.Column) (any, error) { v, err := r.NClob(c); return v, err },
		"Ref":      func(c row.Column) (any, error) { v, err := r.Ref(c); return v, err },
		"UUID":     func(c row.Column) (any, error) { v, err := r.UUID(c); return v, err },
		"Array":    func(c row.Column) (any, error) { v, err := r.Array(c); return v, err },
		"URL":      func(c row.Column) (any, error) { v, err := r.URL(c); return v, err },
		"Date":     func(c row.Column) (any, error) { v, err := r.Date(c); return v, err },
		"Time":     func(c row.Column) (any, error) { v, err := r.Time(c); return v, err },
		"Instant":  func(c row.Column) (any, error) { v, err := r.Instant(c); return v, err },
		"Zoned":    func(c row.Column) (any, error) { v, err := r.Zoned(c); return v, err },
		"Stamp":    func(c row.Column) (any, error) { v, err := r.Timestamp(c); return v, err },
		"StampUTC": func(c row.Column) (any, error) { v, err := r.TimestampIn(c, time.UTC); return v, err },
		"Chars":    func(c row.Column) (any, error) { v, err := r.CharacterStream(c); return v, err },
		"Binary":   func(c row.Column) (any, error) { v, err := r.BinaryStream(c); return v, err },
		"ASCII":    func(c row.Column) (any, error) { v, err := r.ASCIIStream(c); return v, err },
		"Any":      r.Any,
	}

	for name, get := range accessors {
		t.Run(name, func(t *testing.T) {
			for _, col := range []row.Column{row.Index(1), row.Label("v"), row.Label("V")} {
				v, err := get(col)
				require.NoError(t, err)
				assert.Nil(t, v, "column %s", col)
			}
		})
	}
}

func TestBoolReportsFalseForNull(t *testing.T) {
	r := at(t, rowtest.New([]string{"flag", "set"}, []any{nil, int64(1)}))

	got, err := r.Bool(row.Label("flag"))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = r.Bool(row.Label("set"))
	require.NoError(t, err)
	assert.True(t, got)

	nullable, err := row.As[bool](r, row.TypeBool, row.Label("flag"))
	require.NoError(t, err)
	assert.Nil(t, nullable)
}

func TestIndexAndLabelAgree(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	r := at(t, rowtest.New(
		[]string{"name", "age", "score", "balance", "token"},
		[]any{"ada", int64(36), 9.5, "1024.5000", id.String()},
	))

	byIndex, err := r.String(row.Index(1))
	require.NoError(t, err)
	byLabel, err := r.String(row.Label("NAME"))
	require.NoError(t, err)
	assert.Equal(t, byIndex, byLabel)
	assert.Equal(t, "ada", *byLabel)

	age, err := r.Int32(row.Index(2))
	require.NoError(t, err)
	ageByLabel, err := r.Int32(row.Label("age"))
	require.NoError(t, err)
	assert.Equal(t, int32(36), *age)
	assert.Equal(t, age, ageByLabel)

	score, err := r.Float64(row.Index(3))
	require.NoError(t, err)
	assert.Equal(t, 9.5, *score)

	balance, err := r.Decimal(row.Label("balance"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1024.5").Equal(*balance))

	token, err := r.UUID(row.Index(5))
	require.NoError(t, err)
	assert.Equal(t, id, *token)
}

func TestFieldNameResolvesSnakeCaseColumn(t *testing.T) {
	c := rowtest.New([]string{"user_id"}, []any{int64(42)}, []any{nil})
	r := at(t, c)

	got, err := r.Int64(row.Field("userId"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)

	require.True(t, r.Next())
	got, err = r.Int64(row.Field("userId"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCoercion(t *testing.T) {
	r := at(t, rowtest.New(
		[]string{"num", "word", "big", "site", "bare", "tags", "raw"},
		[]any{"42", "abc", int64(300), "https://example.com/x", "example.com", "{a,b,\"c d\"}", []byte("bin")},
	))

	n, err := r.Int64(row.Label("num"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), *n)

	_, err = r.Int64(row.Label("word"))
	assert.ErrorIs(t, err, row.ErrTypeMismatch)

	_, err = r.Int8(row.Label("big"))
	assert.ErrorIs(t, err, row.ErrTypeMismatch)

	small, err := r.Int16(row.Label("big"))
	require.NoError(t, err)
	assert.Equal(t, int16(300), *small)

	u, err := r.URL(row.Label("site"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)

	_, err = r.URL(row.Label("bare"))
	assert.ErrorIs(t, err, row.ErrTypeMismatch)

	tags, err := r.Array(row.Label("tags"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c d"}, *tags)

	s, err := r.String(row.Label("raw"))
	require.NoError(t, err)
	assert.Equal(t, "bin", *s)
}

func TestTimestampZones(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	stored := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	r := at(t, rowtest.New([]string{"at", "day", "clock"}, []any{stored, "2024-03-01", "15:04:05"}))

	inUTC, err := r.TimestampIn(row.Label("at"), time.UTC)
	require.NoError(t, err)
	assert.True(t, stored.Equal(*inUTC))

	inTokyo, err := r.TimestampIn(row.Label("at"), tokyo)
	require.NoError(t, err)
	assert.Equal(t, 12, inTokyo.Hour())
	assert.Equal(t, tokyo, inTokyo.Location())
	assert.Equal(t, 9*time.Hour, inUTC.Sub(*inTokyo))

	local, err := r.Timestamp(row.Label("at"))
	require.NoError(t, err)
	inLocal, err := r.TimestampIn(row.Label("at"), time.Local)
	require.NoError(t, err)
	assert.True(t, local.Equal(*inLocal))

	zoned, err := r.Zoned(row.Label("at"))
	require.NoError(t, err)
	assert.Equal(t, time.Local, zoned.Location())
	assert.True(t, local.Equal(*zoned))

	instant, err := r.Instant(row.Label("at"))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, instant.Location())
	assert.True(t, local.Equal(*instant))

	day, err := r.DateIn(row.Label("day"), tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, tokyo), *day)

	clock, err := r.TimeIn(row.Label("clock"), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(0, time.January, 1, 15, 4, 5, 0, time.UTC), *clock)
}

func TestTimestampWithZoneIsAnInstant(t *testing.T) {
	stored := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.FixedZone("CET", 60*60))
	r := at(t, rowtest.New([]string{"at"}, []any{stored}))

	got, err := r.TimestampIn(row.Index(1), time.UTC)
	require.NoError(t, err)
	assert.True(t, stored.Equal(*got))
	assert.Equal(t, 11, got.Hour())
}

func TestUnnamedZeroOffsetIsZoneless(t *testing.T) {
	// lib/pq decodes timestamp and date columns into FixedZone("", 0).
	stamp, err := pq.ParseTimestamp(nil, "2024-03-01 12:30:00")
	require.NoError(t, err)
	day, err := pq.ParseTimestamp(nil, "2024-03-01")
	require.NoError(t, err)
	r := at(t, rowtest.New([]string{"at", "day"}, []any{stamp, day}))

	tokyo := time.FixedZone("JST", 9*60*60)
	inTokyo, err := r.TimestampIn(row.Label("at"), tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 12, 30, 0, 0, tokyo), *inTokyo)

	local, err := r.Timestamp(row.Label("at"))
	require.NoError(t, err)
	assert.Equal(t, 12, local.Hour())
	assert.Equal(t, 30, local.Minute())

	newYork := time.FixedZone("EST", -5*60*60)
	date, err := r.DateIn(row.Label("day"), newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, newYork), *date)

	date, err = r.Date(row.Label("day"))
	require.NoError(t, err)
	assert.Equal(t, 1, date.Day())
}

func TestStreams(t *testing.T) {
	r := at(t, rowtest.New([]string{"doc"}, []any{"naïve"}))

	rd, err := r.BinaryStream(row.Label("doc"))
	require.NoError(t, err)
	b, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, []byte("naïve"), b)

	// A second stream over the same value is unsupported; only the first read
	// above is guaranteed.
	_, _ = r.ASCIIStream(row.Label("doc"))
}

func TestASCIIStreamReplacesNonASCII(t *testing.T) {
	r := at(t, rowtest.New([]string{"doc"}, []any{"naïve"}))

	rd, err := r.ASCIIStream(row.Index(1))
	require.NoError(t, err)
	b, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, "na?ve", string(b))
}

func TestAccessorErrors(t *testing.T) {
	t.Run("before first row", func(t *testing.T) {
		r := row.New(rowtest.New([]string{"a"}, []any{int64(1)}))
		_, err := r.Int64(row.Index(1))
		assert.ErrorIs(t, err, row.ErrNoCurrentRow)
	})

	t.Run("closed cursor", func(t *testing.T) {
		r := at(t, rowtest.New([]string{"a"}, []any{int64(1)}))
		require.NoError(t, r.Close())
		_, err := r.Int64(row.Index(1))
		assert.ErrorIs(t, err, row.ErrCursorClosed)
	})

	t.Run("unknown column", func(t *testing.T) {
		r := at(t, rowtest.New([]string{"a"}, []any{int64(1)}))
		_, err := r.Int64(row.Label("b"))
		assert.ErrorIs(t, err, row.ErrNoSuchColumn)
		_, err = r.Int64(row.Index(2))
		assert.ErrorIs(t, err, row.ErrNoSuchColumn)
	})

	t.Run("driver error passes through", func(t *testing.T) {
		driverErr := errors.New("connection reset")
		r := at(t, rowtest.New([]string{"a"}, []any{int64(1)}).FailValues(driverErr))
		_, err := r.String(row.Index(1))
		assert.Same(t, driverErr, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		r := at(t, rowtest.New([]string{"a"}, []any{int64(1)}))
		_, err := r.Value(row.Type(999), row.Index(1))
		assert.Error(t, err)
	})
}

func TestIterationYieldsRemainingRows(t *testing.T) {
	c := rowtest.New([]string{"n"}, []any{int64(1)}, []any{int64(2)}, []any{int64(3)})
	r := row.New(c)

	var got []int64
	var positions []int
	for each := range r.All() {
		n, err := each.Int64(row.Label("n"))
		require.NoError(t, err)
		got = append(got, *n)
		positions = append(positions, each.Position())
	}

	assert.Equal(t, []int64{1, 2, 3}, got)
	assert.Equal(t, []int{1, 2, 3}, positions)

	it := r.Iterator()
	assert.False(t, it.HasNext())
	assert.False(t, it.HasNext())
}

func TestIteratorHasNextAdvances(t *testing.T) {
	c := rowtest.New([]string{"n"}, []any{int64(1)}, []any{int64(2)})
	it := row.New(c).Iterator()

	require.True(t, it.HasNext())
	require.True(t, it.HasNext())
	n, err := it.Next().Int64(row.Index(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), *n)

	assert.False(t, it.HasNext())
}

func TestHasNextOnClosedCursor(t *testing.T) {
	c := rowtest.New([]string{"n"}, []any{int64(1)})
	r := row.New(c)
	require.NoError(t, r.Close())

	it := r.Iterator()
	assert.NotPanics(t, func() {
		assert.False(t, it.HasNext())
	})
	assert.Equal(t, 0, c.Advances)
}

func TestIterationStartsFromCursorPosition(t *testing.T) {
	c := rowtest.New([]string{"n"}, []any{int64(1)}, []any{int64(2)}, []any{int64(3)})
	first := row.New(c)
	require.True(t, first.Next())

	var got []int64
	for each := range first.All() {
		n, err := each.Int64(row.Index(1))
		require.NoError(t, err)
		got = append(got, *n)
	}
	assert.Equal(t, []int64{2, 3}, got)
}

func TestAllStopsWhenConsumerBreaks(t *testing.T) {
	c := rowtest.New([]string{"n"}, []any{int64(1)}, []any{int64(2)}, []any{int64(3)})
	for range row.New(c).All() {
		break
	}
	assert.Equal(t, 1, c.Advances)
}

func TestPassthroughs(t *testing.T) {
	warn := errors.New("truncated")
	c := rowtest.New([]string{"id", "name"}, []any{int64(1), "x"}).
		WithStatement("SELECT id, name FROM t").
		WithWarnings(warn)
	r := row.NewAt(c, 7)

	assert.Equal(t, 7, r.Position())
	assert.Same(t, c, r.Cursor())
	assert.Equal(t, "SELECT id, name FROM t", r.Statement())
	assert.Equal(t, []error{warn}, r.Warnings())

	meta, err := r.Metadata()
	require.NoError(t, err)
	require.Len(t, meta, 2)
	assert.Equal(t, "name", meta[1].Name)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 2, c.Closes)
	assert.True(t, c.IsClosed())
}

// MockCursor is a testify mock of row.Cursor.
type MockCursor struct {
	mock.Mock
}

func (m *MockCursor) Next() bool { return m.Called().Bool(0) }

func (m *MockCursor) Value(col row.Column) (any, error) {
	args := m.Called(col)
	return args.Get(0), args.Error(1)
}

func (m *MockCursor) WasNull() bool { return m.Called().Bool(0) }

func (m *MockCursor) Columns() ([]row.ColumnMeta, error) {
	args := m.Called()
	return args.Get(0).([]row.ColumnMeta), args.Error(1)
}

func (m *MockCursor) Warnings() []error { return nil }
func (m *MockCursor) Statement() string { return "" }
func (m *MockCursor) Close() error       { return m.Called().Error(0) }
func (m *MockCursor) IsClosed() bool     { return m.Called().Bool(0) }
func (m *MockCursor) Err() error         { return nil }

func TestDriverZeroValueIsSuppressedByWasNull(t *testing.T) {
	c := new(MockCursor)
	c.On("Value", row.Label("amount")).Return(int64(0), nil).Once()
	c.On("WasNull").Return(true).Once()

	got, err := row.New(c).Int64(row.Label("amount"))
	require.NoError(t, err)
	assert.Nil(t, got)
	c.AssertExpectations(t)
}

func TestCloseErrorPassesThrough(t *testing.T) {
	closeErr := errors.New("statement already released")
	c := new(MockCursor)
	c.On("Close").Return(closeErr)

	assert.Same(t, closeErr, row.New(c).Close())
	c.AssertExpectations(t)
}
