package record

import (
	"strconv"
	"strings"
)

type ColumnType uint8

const (
	ColID      ColumnType = iota // auto-assigned uint64, unique per table
	ColChar255                   // UTF-8 text, at most MaxCharLen bytes
	ColInt8
	ColInt16
	ColInt32
	ColInt64
	ColUint8
	ColUint16
	ColUint32
	ColUint64
)

// MaxCharLen is the byte limit of a Char255 value.
const MaxCharLen = 255

var columnTypeNames = [...]string{
	ColID:      "Id",
	ColChar255: "Char255",
	ColInt8:    "Int8",
	ColInt16:   "Int16",
	ColInt32:   "Int32",
	ColInt64:   "Int64",
	ColUint8:   "Uint8",
	ColUint16:  "Uint16",
	ColUint32:  "Uint32",
	ColUint64:  "Uint64",
}

func (t ColumnType) String() string {
	if int(t) < len(columnTypeNames) {
		return columnTypeNames[t]
	}
	return "ColumnType(" + strconv.Itoa(int(t)) + ")"
}

// Keyword is the grammar token for the type, e.g. "uint8".
func (t ColumnType) Keyword() string {
	return strings.ToLower(t.String())
}

// ParseColumnType maps a type token (id, char255, int8..int64, uint8..uint64)
// onto a ColumnType. Matching is exact and case-insensitive.
func ParseColumnType(token string) (ColumnType, bool) {
	for i, name := range columnTypeNames {
		if strings.EqualFold(token, name) {
			return ColumnType(i), true
		}
	}
	return 0, false
}

// Signed reports whether the type accepts a leading '-'.
func (t ColumnType) Signed() bool {
	switch t {
	case ColInt8, ColInt16, ColInt32, ColInt64:
		return true
	}
	return false
}

// BitSize is the integer width of the type, 0 for Char255.
func (t ColumnType) BitSize() int {
	switch t {
	case ColInt8, ColUint8:
		return 8
	case ColInt16, ColUint16:
		return 16
	case ColInt32, ColUint32:
		return 32
	case ColInt64, ColUint64, ColID:
		return 64
	}
	return 0
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

type Schema struct {
	Cols []Column `json:"cols"`
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColPos returns the position of the named column or -1.
func (s Schema) ColPos(name string) int {
	name = NormalizeName(name)
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

// IDPos returns the position of the Id column or -1 when the table has none.
func (s Schema) IDPos() int {
	for i := range s.Cols {
		if s.Cols[i].Type == ColID {
			return i
		}
	}
	return -1
}

// ValueCols returns the columns a caller supplies on insert, in declared order.
func (s Schema) ValueCols() []Column {
	out := make([]Column, 0, len(s.Cols))
	for _, c := range s.Cols {
		if c.Type == ColID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Names returns the column names in declared order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		out[i] = c.Name
	}
	return out
}
