package parser

import "fmt"

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	KindUnknownStatement ErrorKind = iota + 1
	// KindUnsupportedStatement is for grammar that is recognized but not
	// executed yet.
	KindUnsupportedStatement
	KindMissingValuesClause
	KindMissingTableName
	KindUnknownColumnType
	KindMalformedColumnList
	KindMalformedValueList
	KindInvalidIdentifier
)

var kindNames = map[ErrorKind]string{
	KindUnknownStatement:     "UnknownStatement",
	KindUnsupportedStatement: "UnsupportedStatement",
	KindMissingValuesClause:  "MissingValuesClause",
	KindMissingTableName:     "MissingTableName",
	KindUnknownColumnType:    "UnknownColumnType",
	KindMalformedColumnList:  "MalformedColumnList",
	KindMalformedValueList:   "MalformedValueList",
	KindInvalidIdentifier:    "InvalidIdentifier",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a ParseError. Fragment holds the offending text: the statement
// body, the statement kind, the type token or the malformed list.
type Error struct {
	Kind     ErrorKind
	Fragment string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownStatement:
		return fmt.Sprintf("unknown SQL statement: %s", e.Fragment)
	case KindUnsupportedStatement:
		return fmt.Sprintf("%s statements are not yet supported", e.Fragment)
	case KindMissingValuesClause:
		return fmt.Sprintf("missing VALUES clause: %s", e.Fragment)
	case KindMissingTableName:
		return fmt.Sprintf("missing table name in %s statement", e.Fragment)
	case KindUnknownColumnType:
		return fmt.Sprintf("unknown column type %q", e.Fragment)
	case KindMalformedColumnList:
		return fmt.Sprintf("malformed column list: %s", e.Fragment)
	case KindMalformedValueList:
		return fmt.Sprintf("malformed value list: %s", e.Fragment)
	case KindInvalidIdentifier:
		return fmt.Sprintf("invalid identifier %q", e.Fragment)
	}
	return "parse error: " + e.Kind.String()
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnknownStatement     = &Error{Kind: KindUnknownStatement}
	ErrUnsupportedStatement = &Error{Kind: KindUnsupportedStatement}
	ErrMissingValuesClause  = &Error{Kind: KindMissingValuesClause}
	ErrMissingTableName     = &Error{Kind: KindMissingTableName}
	ErrUnknownColumnType    = &Error{Kind: KindUnknownColumnType}
	ErrMalformedColumnList  = &Error{Kind: KindMalformedColumnList}
	ErrMalformedValueList   = &Error{Kind: KindMalformedValueList}
	ErrInvalidIdentifier    = &Error{Kind: KindInvalidIdentifier}
)

func newError(kind ErrorKind, fragment string) *Error {
	return &Error{Kind: kind, Fragment: fragment}
}
