package shell

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tuannm99/tinysql/internal/record"
	"github.com/tuannm99/tinysql/internal/sql/executor"
)

// Control tells the loop what to do after a turn.
type Control int

const (
	Continue Control = iota
	Exit
)

const (
	exitDirective = ".exit"
	goodbye       = "Bye bye"
)

// Runner executes one batch of statements. *executor.Executor and
// *sqlclient.Client both satisfy it.
type Runner interface {
	ExecSQL(sql string) ([]*executor.Result, error)
}

// Catalog backs the .tables and .schema directives.
type Catalog interface {
	ListTables() []string
	Schema(table string) (record.Schema, error)
}

type Options struct {
	// Catalog is optional; without it .tables and .schema are unavailable.
	Catalog Catalog
	// History is optional; executed batches are appended to it.
	History *History
	// Multiline accumulates lines until a ';' outside quotes. When false
	// every line is one batch.
	Multiline bool
}

// Session is the per-connection command loop state. Handle is called once
// per input line and returns exactly one rendered output.
type Session struct {
	runner Runner
	opts   Options
	buf    strings.Builder
}

func NewSession(r Runner, opts Options) *Session {
	return &Session{runner: r, opts: opts}
}

// Pending reports whether a multi-line statement is being accumulated.
func (s *Session) Pending() bool { return s.buf.Len() > 0 }

// Reset drops a pending multi-line statement.
func (s *Session) Reset() { s.buf.Reset() }

// Handle processes one input line. Lines starting with '.' are directives
// and never reach the parser; ".exit" ends the session even when a
// multi-line statement is pending.
func (s *Session) Handle(line string) (string, Control) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, ".") {
		if trimmed == exitDirective {
			s.buf.Reset()
			return goodbye, Exit
		}
		return s.directive(trimmed), Continue
	}

	if trimmed == "" && !s.Pending() {
		return "", Continue
	}

	if s.opts.Multiline {
		if s.buf.Len() > 0 {
			s.buf.WriteByte('\n')
		}
		s.buf.WriteString(line)
		if !statementComplete(s.buf.String()) {
			return "", Continue
		}
		trimmed = strings.TrimSpace(s.buf.String())
		s.buf.Reset()
	}

	return s.run(trimmed), Continue
}

func (s *Session) run(batch string) string {
	if s.opts.History != nil {
		if err := s.opts.History.Append(batch); err != nil {
			slog.Warn("shell: history append failed", "err", err)
		}
	}

	results, err := s.runner.ExecSQL(batch)
	out := RenderResults(results)
	if err != nil {
		if out != "" {
			out += "\n"
		}
		out += RenderError(err)
	}
	return out
}

func (s *Session) directive(line string) string {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ".help":
		return helpText
	case ".history":
		if s.opts.History == nil {
			return "history is disabled"
		}
		return s.opts.History.Format(50)
	case ".tables":
		if s.opts.Catalog == nil {
			return "error: .tables is not available in this session"
		}
		tables := s.opts.Catalog.ListTables()
		if len(tables) == 0 {
			return "(no tables)"
		}
		return strings.Join(tables, "\n")
	case ".schema":
		if s.opts.Catalog == nil {
			return "error: .schema is not available in this session"
		}
		if arg == "" {
			return "usage: .schema <table>"
		}
		schema, err := s.opts.Catalog.Schema(arg)
		if err != nil {
			return RenderError(err)
		}
		return describe(record.NormalizeName(arg), schema)
	}
	return fmt.Sprintf("unknown command %s", line)
}

// describe renders a schema as the create table statement that rebuilds it.
func describe(table string, schema record.Schema) string {
	defs := make([]string, len(schema.Cols))
	for i, c := range schema.Cols {
		defs[i] = c.Name + " " + c.Type.Keyword()
	}
	return fmt.Sprintf("create table %s (%s);", table, strings.Join(defs, ", "))
}

// statementComplete checks if we have a terminating ';' outside single quotes
// with nothing but whitespace after it.
func statementComplete(buf string) bool {
	inQuote := false
	complete := false
	for _, r := range buf {
		switch {
		case r == '\'':
			inQuote = !inQuote
			complete = false
		case r == ';' && !inQuote:
			complete = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			complete = false
		}
	}
	return complete && !inQuote
}

const helpText = `directives:
  .exit            quit
  .tables          list tables
  .schema <table>  show a table's columns
  .history         print recent statements
  .help            show help

sql (keywords are case-insensitive, end statements with ';'):
  create table <name> (<col> <type>, ...)
      types: id, char255, int8, int16, int32, int64, uint8, uint16, uint32, uint64
  insert into <name> values (<literal>, ...)
  select <col, ... | *> from <name>
  drop table <name>`
