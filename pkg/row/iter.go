// pkg/row/iter.go
package row

import "iter"

// Iterator walks the rows remaining in a cursor. HasNext advances the
// cursor, so it must be called exactly once per Next.
type Iterator struct {
	cursor   Cursor
	position int
}

// Iterator starts iteration from the cursor's current position,
// whatever position r was created at.
func (r Row) Iterator() *Iterator {
	return &Iterator{cursor: r.cursor, position: r.position}
}

// HasNext advances the cursor and reports whether a row is available.
// It returns false once the cursor is closed or exhausted.
func (it *Iterator) HasNext() bool {
	return !it.cursor.IsClosed() && it.cursor.Next()
}

// Next returns the row HasNext moved to. It does not advance the cursor.
func (it *Iterator) Next() Row {
	it.position++
	return Row{cursor: it.cursor, position: it.position}
}

// All yields every remaining row. The sequence is single-use.
func (r Row) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		it := r.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
