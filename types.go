// Package tinysql is the top-level facade for embedding the TinySQL engine.
package tinysql

import (
	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
)

type (
	Database = engine.Database
	Executor = executor.Executor
	Result   = executor.Result
)

// Open returns an empty in-memory database with an executor bound to it.
func Open() (*Database, *Executor) {
	db := engine.NewDatabase()
	return db, executor.NewExecutor(db)
}
