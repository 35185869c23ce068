package heap

import (
	"errors"
	"fmt"

	"github.com/tuannm99/tinysql/internal/record"
)

var ErrValueCount = errors.New("heap: value count does not match table columns")

// FieldError reports a literal rejected by one column's type.
type FieldError struct {
	Column  string
	Type    record.ColumnType
	Literal string
	Err     error // record.ErrTypeMismatch or record.ErrValueTooLong
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("heap: column %s (%s): %q: %v", e.Column, e.Type, e.Literal, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Table is an in-memory heap: rows kept in insertion order, each row holding
// one typed value per schema column.
type Table struct {
	Name   string
	Schema record.Schema

	rows   [][]any
	idPos  int
	nextID uint64
}

func NewTable(name string, schema record.Schema) *Table {
	return &Table{
		Name:   name,
		Schema: schema,
		idPos:  schema.IDPos(),
		nextID: 1,
	}
}

// HasID reports whether the table declares an Id column.
func (t *Table) HasID() bool { return t.idPos >= 0 }

// Len is the number of stored rows.
func (t *Table) Len() int { return len(t.rows) }

// Insert coerces literals onto the non-Id columns in declared order and
// appends the row. When the table has an Id column, the next Id is reserved
// before any literal is checked, so a rejected row still consumes its Id.
func (t *Table) Insert(literals []string) (id uint64, hasID bool, err error) {
	if t.HasID() {
		id = t.nextID
		t.nextID++
		hasID = true
	}

	nValues := len(t.Schema.Cols)
	if hasID {
		nValues--
	}
	if len(literals) != nValues {
		return id, hasID, ErrValueCount
	}

	row := make([]any, len(t.Schema.Cols))
	li := 0
	for i, col := range t.Schema.Cols {
		if i == t.idPos {
			row[i] = id
			continue
		}
		v, err := record.Coerce(col.Type, literals[li])
		if err != nil {
			return id, hasID, &FieldError{
				Column:  col.Name,
				Type:    col.Type,
				Literal: literals[li],
				Err:     err,
			}
		}
		row[i] = v
		li++
	}

	t.rows = append(t.rows, row)
	return id, hasID, nil
}

// Scan calls fn for every row in insertion order. The row slice is owned by
// the table; callers must copy what they keep.
func (t *Table) Scan(fn func(n int, row []any) error) error {
	for n, row := range t.rows {
		if err := fn(n, row); err != nil {
			return err
		}
	}
	return nil
}

// Project returns copies of every row restricted to the given column positions.
func (t *Table) Project(positions []int) [][]any {
	out := make([][]any, 0, len(t.rows))
	_ = t.Scan(func(_ int, row []any) error {
		cp := make([]any, len(positions))
		for i, p := range positions {
			cp[i] = row[p]
		}
		out = append(out, cp)
		return nil
	})
	return out
}
