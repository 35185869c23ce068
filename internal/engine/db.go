package engine

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/tuannm99/tinysql/internal/heap"
	"github.com/tuannm99/tinysql/internal/record"
)

// DatabaseOperation is the Storage contract: one operation per statement kind.
type DatabaseOperation interface {
	CreateTable(name string, cols []record.Column) error
	Insert(table string, literals []string) (id uint64, hasID bool, err error)
	Select(table string, cols []string) (*Selection, error)
	DropTable(name string) error
	Schema(table string) (record.Schema, error)
	ListTables() []string
}

var _ DatabaseOperation = (*Database)(nil)

// Selection is the projection returned by Select, rows in insertion order.
type Selection struct {
	Columns []string
	Rows    [][]any
}

// Database owns every table of a session. All operations are atomic: a failed
// call leaves no visible change, except the Id reservation documented on
// heap.Table.Insert. One mutex covers the whole database per call.
type Database struct {
	mu     sync.Mutex
	tables map[string]*heap.Table
}

// NewDatabase returns an empty in-memory database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*heap.Table)}
}

func (db *Database) CreateTable(name string, cols []record.Column) error {
	name = record.NormalizeName(name)

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[name]; exists {
		return &Error{Kind: KindTableAlreadyExists, Table: name}
	}
	if len(cols) == 0 {
		return &Error{Kind: KindEmptyColumnList, Table: name}
	}

	schema := record.Schema{Cols: make([]record.Column, len(cols))}
	seen := make(map[string]struct{}, len(cols))
	hasID := false
	for i, c := range cols {
		c.Name = record.NormalizeName(c.Name)
		if _, dup := seen[c.Name]; dup {
			return &Error{Kind: KindDuplicateColumnName, Table: name, Column: c.Name}
		}
		seen[c.Name] = struct{}{}

		if c.Type == record.ColID {
			if hasID {
				return &Error{Kind: KindMultipleIDColumns, Table: name, Column: c.Name}
			}
			hasID = true
		}
		schema.Cols[i] = c
	}

	db.tables[name] = heap.NewTable(name, schema)
	slog.Info("engine: table created", "table", name, "cols", len(cols))
	return nil
}

func (db *Database) Insert(table string, literals []string) (uint64, bool, error) {
	table = record.NormalizeName(table)

	db.mu.Lock()
	defer db.mu.Unlock()

	tbl, ok := db.tables[table]
	if !ok {
		return 0, false, UnknownTable(table)
	}

	id, hasID, err := tbl.Insert(literals)
	if err == nil {
		return id, hasID, nil
	}

	if errors.Is(err, heap.ErrValueCount) {
		return 0, false, ColumnCountMismatch(table, len(tbl.Schema.ValueCols()), len(literals))
	}

	var fe *heap.FieldError
	if errors.As(err, &fe) {
		if errors.Is(fe.Err, record.ErrValueTooLong) {
			return 0, false, &Error{
				Kind:   KindValueTooLong,
				Table:  table,
				Column: fe.Column,
				Want:   record.MaxCharLen,
				Have:   literalLen(fe.Literal),
			}
		}
		return 0, false, &Error{
			Kind:     KindTypeMismatch,
			Table:    table,
			Column:   fe.Column,
			Expected: fe.Type,
			Got:      fe.Literal,
		}
	}
	return 0, false, err
}

func (db *Database) Select(table string, cols []string) (*Selection, error) {
	table = record.NormalizeName(table)

	db.mu.Lock()
	defer db.mu.Unlock()

	tbl, ok := db.tables[table]
	if !ok {
		return nil, UnknownTable(table)
	}

	var positions []int
	if len(cols) == 0 {
		positions = make([]int, tbl.Schema.NumCols())
		for i := range positions {
			positions[i] = i
		}
	} else {
		positions = make([]int, len(cols))
		for i, c := range cols {
			p := tbl.Schema.ColPos(c)
			if p < 0 {
				return nil, &Error{Kind: KindUnknownColumn, Table: table, Column: record.NormalizeName(c)}
			}
			positions[i] = p
		}
	}

	sel := &Selection{Columns: make([]string, len(positions))}
	for i, p := range positions {
		sel.Columns[i] = tbl.Schema.Cols[p].Name
	}
	sel.Rows = tbl.Project(positions)
	return sel, nil
}

func (db *Database) DropTable(name string) error {
	name = record.NormalizeName(name)

	db.mu.Lock()
	defer db.mu.Unlock()

	tbl, ok := db.tables[name]
	if !ok {
		return UnknownTable(name)
	}
	delete(db.tables, name)
	slog.Info("engine: table dropped", "table", name, "rows", tbl.Len())
	return nil
}

// Schema returns a copy of the table's column layout.
func (db *Database) Schema(table string) (record.Schema, error) {
	table = record.NormalizeName(table)

	db.mu.Lock()
	defer db.mu.Unlock()

	tbl, ok := db.tables[table]
	if !ok {
		return record.Schema{}, UnknownTable(table)
	}
	cols := make([]record.Column, len(tbl.Schema.Cols))
	copy(cols, tbl.Schema.Cols)
	return record.Schema{Cols: cols}, nil
}

// ListTables returns the table names in lexical order.
func (db *Database) ListTables() []string {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]string, 0, len(db.tables))
	for name := range db.tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close releases every table.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.tables = make(map[string]*heap.Table)
	return nil
}

// literalLen is the byte length of a Char255 literal once unquoted.
func literalLen(lit string) int {
	if s, err := record.Unquote(lit); err == nil {
		return len(s)
	}
	return len(lit)
}
