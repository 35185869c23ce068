package parser

import (
	"strings"
	"unicode"

	"github.com/tuannm99/tinysql/internal/record"
)

// Parse parses a batch of ';'-separated statements.
//
// Each body is trimmed and empty bodies are skipped, so "" and "a;" are fine.
// Keywords match case-insensitively; table and column names are lower-cased.
// Literal values keep their original text.
//
// Parsing fails fast: the first bad body aborts the batch and no statement
// is returned.
func Parse(text string) ([]Statement, error) {
	var out []Statement
	for _, body := range splitOutsideQuotes(text, ';') {
		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}
		stmt, err := parseStatement(body)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func parseStatement(body string) (Statement, error) {
	first, rest := cutWord(body)

	switch asciiLower(first) {
	case "insert":
		second, after := cutWord(rest)
		if asciiLower(second) != "into" {
			return nil, newError(KindUnknownStatement, body)
		}
		return parseInsert(after)
	case "select":
		return parseSelect(rest)
	case "drop":
		second, after := cutWord(rest)
		if asciiLower(second) != "table" {
			return nil, newError(KindUnknownStatement, body)
		}
		return parseDropTable(after)
	case "create":
		second, after := cutWord(rest)
		if asciiLower(second) != "table" {
			return nil, newError(KindUnknownStatement, body)
		}
		return parseCreateTable(after)
	case "update", "delete", "alter":
		return nil, newError(KindUnsupportedStatement, asciiLower(first))
	default:
		return nil, newError(KindUnknownStatement, body)
	}
}

// parseTableName validates the table-name slot of a statement.
func parseTableName(s, kind string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newError(KindMissingTableName, kind)
	}
	if !record.ValidIdent(s) {
		return "", newError(KindInvalidIdentifier, s)
	}
	return record.NormalizeName(s), nil
}

func parseCreateTable(rest string) (Statement, error) {
	// "users (id id, name char255, age uint8)"
	rest = strings.TrimSpace(rest)
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		if rest == "" {
			return nil, newError(KindMissingTableName, "create table")
		}
		return nil, newError(KindMalformedColumnList, rest)
	}

	name, err := parseTableName(rest[:open], "create table")
	if err != nil {
		return nil, err
	}

	defPart := strings.TrimSpace(rest[open:])
	if !strings.HasSuffix(defPart, ")") {
		return nil, newError(KindMalformedColumnList, defPart)
	}
	inner := strings.TrimSpace(defPart[1 : len(defPart)-1])

	// "()" is handed to Storage, which owns the empty-column-list rule.
	cols := []ColumnDef{}
	if inner == "" {
		return &CreateTableStmt{TableName: name, Columns: cols}, nil
	}

	for _, def := range strings.Split(inner, ",") {
		toks := strings.Fields(def)
		if len(toks) != 2 || !record.ValidIdent(toks[0]) {
			return nil, newError(KindMalformedColumnList, strings.TrimSpace(def))
		}
		typ, ok := record.ParseColumnType(toks[1])
		if !ok {
			return nil, newError(KindUnknownColumnType, toks[1])
		}
		cols = append(cols, ColumnDef{
			Name: record.NormalizeName(toks[0]),
			Type: typ,
		})
	}

	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

func parseDropTable(rest string) (Statement, error) {
	name, err := parseTableName(rest, "drop table")
	if err != nil {
		return nil, err
	}
	return &DropTableStmt{TableName: name}, nil
}

func parseInsert(rest string) (Statement, error) {
	// "users values (1, 'abc')"
	idx := indexKeyword(rest, "values")
	if idx < 0 {
		if strings.TrimSpace(rest) == "" {
			return nil, newError(KindMissingTableName, "insert")
		}
		return nil, newError(KindMissingValuesClause, strings.TrimSpace(rest))
	}

	name, err := parseTableName(rest[:idx], "insert")
	if err != nil {
		return nil, err
	}

	valPart := strings.TrimSpace(rest[idx+len("values"):])
	if len(valPart) < 2 || valPart[0] != '(' || valPart[len(valPart)-1] != ')' {
		return nil, newError(KindMalformedValueList, valPart)
	}
	inner := strings.TrimSpace(valPart[1 : len(valPart)-1])

	values := []string{}
	if inner == "" {
		return &InsertStmt{TableName: name, Values: values}, nil
	}

	raw := splitOutsideQuotes(inner, ',')
	for _, rv := range raw {
		lit := strings.TrimSpace(rv)
		if !validLiteral(lit) {
			return nil, newError(KindMalformedValueList, valPart)
		}
		values = append(values, lit)
	}

	return &InsertStmt{TableName: name, Values: values}, nil
}

func parseSelect(rest string) (Statement, error) {
	// "<cols | *> from <table>", the column list may be empty
	var colPart, tablePart string

	first, after := cutWord(rest)
	if asciiLower(first) == "from" {
		tablePart = after
	} else {
		idx := indexKeyword(rest, "from")
		if idx < 0 {
			return nil, newError(KindMissingTableName, "select")
		}
		colPart = strings.TrimSpace(rest[:idx])
		tablePart = rest[idx+len("from"):]
	}

	name, err := parseTableName(tablePart, "select")
	if err != nil {
		return nil, err
	}

	if colPart == "" || colPart == "*" {
		return &SelectStmt{TableName: name}, nil
	}

	parts := strings.Split(colPart, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !record.ValidIdent(p) {
			return nil, newError(KindMalformedColumnList, colPart)
		}
		cols = append(cols, record.NormalizeName(p))
	}

	return &SelectStmt{TableName: name, Columns: cols}, nil
}

// validLiteral accepts a well-formed single-quoted string or a bare token
// without spaces, quotes or parentheses.
func validLiteral(lit string) bool {
	if lit == "" {
		return false
	}
	if lit[0] == '\'' {
		_, err := record.Unquote(lit)
		return err == nil
	}
	return !strings.ContainsFunc(lit, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\'' || r == '(' || r == ')'
	})
}

// cutWord splits off the first whitespace-delimited word.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// indexKeyword finds keyword (lower-case) in s case-insensitively as a whole
// word: preceded by start or whitespace, followed by end, whitespace or '('.
// Returns -1 when absent.
func indexKeyword(s, keyword string) int {
	low := asciiLower(s)
	from := 0
	for {
		i := strings.Index(low[from:], keyword)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(keyword)

		before := i == 0 || isSpaceByte(low[i-1])
		after := end == len(low) || isSpaceByte(low[end]) || low[end] == '('
		if before && after {
			return i
		}
		from = i + 1
	}
}

// splitOutsideQuotes splits s on sep, ignoring separators inside single quotes.
func splitOutsideQuotes(s string, sep rune) []string {
	parts := []string{}
	cur := strings.Builder{}
	inQuote := false
	for _, r := range s {
		switch {
		case r == '\'':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == sep && !inQuote:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// asciiLower lower-cases ASCII letters only, keeping byte offsets stable so
// positions found in the folded copy index the original text.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
