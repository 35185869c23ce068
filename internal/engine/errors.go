package engine

import (
	"fmt"

	"github.com/tuannm99/tinysql/internal/record"
)

// ErrorKind classifies a storage failure.
type ErrorKind uint8

const (
	KindTableAlreadyExists ErrorKind = iota + 1
	KindDuplicateColumnName
	KindEmptyColumnList
	KindMultipleIDColumns
	KindUnknownTable
	KindColumnCountMismatch
	KindTypeMismatch
	KindValueTooLong
	KindUnknownColumn
)

var kindNames = map[ErrorKind]string{
	KindTableAlreadyExists:  "TableAlreadyExists",
	KindDuplicateColumnName: "DuplicateColumnName",
	KindEmptyColumnList:     "EmptyColumnList",
	KindMultipleIDColumns:   "MultipleIdColumns",
	KindUnknownTable:        "UnknownTable",
	KindColumnCountMismatch: "ColumnCountMismatch",
	KindTypeMismatch:        "TypeMismatch",
	KindValueTooLong:        "ValueTooLong",
	KindUnknownColumn:       "UnknownColumn",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a StorageError: a kind plus the offending fragment. Only the
// fields relevant to Kind are set.
type Error struct {
	Kind   ErrorKind
	Table  string
	Column string

	// TypeMismatch
	Expected record.ColumnType
	Got      string

	// ColumnCountMismatch: Want/Have value counts. ValueTooLong: Want is the
	// byte limit, Have the literal's length.
	Want int
	Have int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTableAlreadyExists:
		return fmt.Sprintf("table %q already exists", e.Table)
	case KindDuplicateColumnName:
		return fmt.Sprintf("duplicate column %q in table %q", e.Column, e.Table)
	case KindEmptyColumnList:
		return fmt.Sprintf("table %q must declare at least one column", e.Table)
	case KindMultipleIDColumns:
		return fmt.Sprintf("table %q declares more than one id column (second: %q)", e.Table, e.Column)
	case KindUnknownTable:
		return fmt.Sprintf("unknown table %q", e.Table)
	case KindColumnCountMismatch:
		return fmt.Sprintf("table %q expects %d values, got %d", e.Table, e.Want, e.Have)
	case KindTypeMismatch:
		return fmt.Sprintf("type mismatch for column %q: expected %s, got %q", e.Column, e.Expected, e.Got)
	case KindValueTooLong:
		return fmt.Sprintf("value too long for column %q: %d bytes, max %d", e.Column, e.Have, e.Want)
	case KindUnknownColumn:
		return fmt.Sprintf("unknown column %q in table %q", e.Column, e.Table)
	}
	return "storage error: " + e.Kind.String()
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrTableAlreadyExists  = &Error{Kind: KindTableAlreadyExists}
	ErrDuplicateColumnName = &Error{Kind: KindDuplicateColumnName}
	ErrEmptyColumnList     = &Error{Kind: KindEmptyColumnList}
	ErrMultipleIDColumns   = &Error{Kind: KindMultipleIDColumns}
	ErrUnknownTable        = &Error{Kind: KindUnknownTable}
	ErrColumnCountMismatch = &Error{Kind: KindColumnCountMismatch}
	ErrTypeMismatch        = &Error{Kind: KindTypeMismatch}
	ErrValueTooLong        = &Error{Kind: KindValueTooLong}
	ErrUnknownColumn       = &Error{Kind: KindUnknownColumn}
)

// ColumnCountMismatch builds the error shared by Storage and the executor's
// positional binding.
func ColumnCountMismatch(table string, want, have int) *Error {
	return &Error{Kind: KindColumnCountMismatch, Table: table, Want: want, Have: have}
}

func UnknownTable(table string) *Error {
	return &Error{Kind: KindUnknownTable, Table: table}
}
