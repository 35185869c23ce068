package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/record"
	"github.com/tuannm99/tinysql/internal/sql/parser"
)

// executorDB is a small seam for unit-testing Executor without a real DB.
type executorDB interface {
	CreateTable(name string, cols []record.Column) error
	Insert(table string, literals []string) (id uint64, hasID bool, err error)
	Select(table string, cols []string) (*engine.Selection, error)
	DropTable(name string) error
	Schema(table string) (record.Schema, error)
}

var _ executorDB = (*engine.Database)(nil)

// Executor maps parsed statements onto Storage calls. One Executor owns its
// database for the lifetime of a session.
type Executor struct {
	DB executorDB
}

func NewExecutor(db *engine.Database) *Executor {
	return &Executor{DB: db}
}

// NewExecutorForTest allows injecting a fake executorDB.
func NewExecutorForTest(db executorDB) *Executor {
	return &Executor{DB: db}
}

// ExecSQL is the top-level entry: batch text -> one Result per statement.
//
// A parse error rejects the whole batch before anything runs. Statements then
// execute in order; the first failure stops the batch and is returned along
// with the results of the statements before it, whose effects stay committed.
func (e *Executor) ExecSQL(sql string) ([]*Result, error) {
	stmts, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(stmts))
	for i, stmt := range stmts {
		res, err := e.Execute(stmt)
		if err != nil {
			slog.Debug("executor: batch stopped",
				"index", i, "statements", len(stmts), "err", err)
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Execute runs one statement.
func (e *Executor) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect(s)
	case *parser.DropTableStmt:
		return e.execDropTable(s)
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	if err := e.DB.CreateTable(s.TableName, s.Columns); err != nil {
		return nil, wrap(s, s.TableName, err)
	}
	return &Result{Kind: ResultCreated, Table: s.TableName}, nil
}

func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	schema, err := e.DB.Schema(s.TableName)
	if err != nil {
		return nil, wrap(s, s.TableName, err)
	}

	bound, err := bindValues(s.TableName, schema, s.Values)
	if err != nil {
		return nil, wrap(s, s.TableName, err)
	}

	literals := make([]string, len(bound))
	for i, b := range bound {
		literals[i] = b.Literal
	}

	id, hasID, err := e.DB.Insert(s.TableName, literals)
	if err != nil {
		return nil, wrap(s, s.TableName, err)
	}

	slog.Debug("executor: row inserted", "table", s.TableName, "values", bound)

	res := &Result{Kind: ResultInserted, Table: s.TableName, AffectedRows: 1}
	if hasID {
		res.ID = &id
	}
	return res, nil
}

func (e *Executor) execSelect(s *parser.SelectStmt) (*Result, error) {
	sel, err := e.DB.Select(s.TableName, s.Columns)
	if err != nil {
		return nil, wrap(s, s.TableName, err)
	}
	return &Result{
		Kind:         ResultRows,
		Table:        s.TableName,
		Columns:      sel.Columns,
		Rows:         sel.Rows,
		AffectedRows: int64(len(sel.Rows)),
	}, nil
}

func (e *Executor) execDropTable(s *parser.DropTableStmt) (*Result, error) {
	if err := e.DB.DropTable(s.TableName); err != nil {
		return nil, wrap(s, s.TableName, err)
	}
	return &Result{Kind: ResultDropped, Table: s.TableName}, nil
}

// BoundValue is one insert literal matched to its target column.
type BoundValue struct {
	Column  string
	Literal string
}

func (b BoundValue) String() string { return b.Column + "=" + b.Literal }

// bindValues zips literals onto the non-Id columns in declared order. The Id
// column is never supplied by the caller.
func bindValues(table string, schema record.Schema, literals []string) ([]BoundValue, error) {
	cols := schema.ValueCols()
	if len(literals) != len(cols) {
		return nil, engine.ColumnCountMismatch(table, len(cols), len(literals))
	}
	out := make([]BoundValue, len(cols))
	for i, c := range cols {
		out[i] = BoundValue{Column: c.Name, Literal: literals[i]}
	}
	return out, nil
}

func wrap(stmt parser.Statement, table string, err error) error {
	return &ExecutionError{Statement: stmt.StatementKind(), Table: table, Err: err}
}
