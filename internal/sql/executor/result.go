package executor

// ResultKind tells which statement produced a Result.
type ResultKind string

const (
	ResultCreated  ResultKind = "created"
	ResultInserted ResultKind = "inserted"
	ResultRows     ResultKind = "rows"
	ResultDropped  ResultKind = "dropped"
)

// Result is the generic query result returned to the caller.
type Result struct {
	Kind  ResultKind `json:"kind"`
	Table string     `json:"table"`

	// Inserted: the assigned Id when the table has an Id column.
	ID *uint64 `json:"id,omitempty"`

	// Rows: projected columns and values in insertion order.
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`

	AffectedRows int64 `json:"affected_rows"`
}
