package sqlwire

import (
	"errors"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/internal/sql/parser"
)

// ExecuteRequest carries one batch of statements.
type ExecuteRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ExecuteResponse is the response for a request ID. Results holds every
// statement that completed, Error the failure that stopped the batch.
type ExecuteResponse struct {
	ID      uint64             `json:"id"`
	Results []*executor.Result `json:"results,omitempty"`
	Error   *Error             `json:"error,omitempty"`
}

// Error families on the wire.
const (
	FamilyParse     = "parse"
	FamilyExecution = "execution"
	FamilyInternal  = "internal"
)

// Error is a structured error that survives the round trip: the family and
// kind let clients branch without parsing the message.
type Error struct {
	Family  string `json:"family"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// FromError classifies err for the wire. nil maps to nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var pe *parser.Error
	if errors.As(err, &pe) {
		return &Error{Family: FamilyParse, Kind: pe.Kind.String(), Message: err.Error()}
	}
	var se *engine.Error
	if errors.As(err, &se) {
		return &Error{Family: FamilyExecution, Kind: se.Kind.String(), Message: err.Error()}
	}
	return &Error{Family: FamilyInternal, Message: err.Error()}
}
