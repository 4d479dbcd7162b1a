// pkg/row/column.go
package row

import (
	"fmt"
	"strings"
)

// Column addresses a value in the current row, either by 1-based position
// or by label. Labels match case-insensitively.
type Column struct {
	index int
	label string
}

// Index addresses a column by its 1-based position.
func Index(i int) Column {
	return Column{index: i}
}

// Label addresses a column by name.
func Label(name string) Column {
	return Column{label: name}
}

// Field addresses the column conventionally backing a lowerCamelCase field,
// e.g. Field("userId") reads column "user_id".
func Field(name string) Column {
	return Label(CamelToSnake(name))
}

// IsIndex reports whether c addresses a column by position.
func (c Column) IsIndex() bool {
	return c.label == ""
}

// Position returns the 1-based position, or 0 for a labeled column.
func (c Column) Position() int {
	return c.index
}

// Name returns the label, or "" for a positional column.
func (c Column) Name() string {
	return c.label
}

// Resolve returns the 0-based offset of c among names.
func (c Column) Resolve(names []string) (int, error) {
	if c.IsIndex() {
		if c.index < 1 || c.index > len(names) {
			return 0, fmt.Errorf("%w: %s", ErrNoSuchColumn, c)
		}
		return c.index - 1, nil
	}
	for i, name := range names {
		if strings.EqualFold(name, c.label) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoSuchColumn, c)
}

func (c Column) String() string {
	if c.IsIndex() {
		return fmt.Sprintf("#%d", c.index)
	}
	return fmt.Sprintf("%q", c.label)
}
