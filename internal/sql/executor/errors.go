package executor

import (
	"fmt"
)

// ExecutionError wraps the storage failure of a well-formed statement with
// the statement it came from. errors.Is/As reach the wrapped engine.Error.
type ExecutionError struct {
	Statement string // statement kind, e.g. "insert"
	Table     string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Statement, e.Table, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
