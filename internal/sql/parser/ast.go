package parser

import "github.com/tuannm99/tinysql/internal/record"

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
	// StatementKind names the statement for diagnostics, e.g. "create table".
	StatementKind() string
}

// ----- CREATE TABLE -----
type ColumnDef = record.Column

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode()             {}
func (*CreateTableStmt) StatementKind() string { return "create table" }

// ----- INSERT -----

// InsertStmt keeps the value list as raw literal tokens in source order.
// Binding them to column names happens at execution time against the
// table's declared column order.
type InsertStmt struct {
	TableName string
	Values    []string
}

func (*InsertStmt) stmtNode()             {}
func (*InsertStmt) StatementKind() string { return "insert" }

// ----- SELECT -----
type SelectStmt struct {
	TableName string
	Columns   []string // nil means all columns
}

func (*SelectStmt) stmtNode()             {}
func (*SelectStmt) StatementKind() string { return "select" }

// ----- DROP TABLE -----
type DropTableStmt struct {
	TableName string
}

func (*DropTableStmt) stmtNode()             {}
func (*DropTableStmt) StatementKind() string { return "drop table" }
