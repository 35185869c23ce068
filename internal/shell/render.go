package shell

import (
	"fmt"
	"strings"

	"github.com/tuannm99/tinysql/internal/sql/executor"
)

// RenderResults renders a batch's results as one block of text.
func RenderResults(results []*executor.Result) string {
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, renderResult(res))
	}
	return strings.Join(parts, "\n")
}

// RenderError is the single-line form of any parse or execution error.
func RenderError(err error) string {
	return "error: " + compactOneLine(err.Error())
}

func renderResult(res *executor.Result) string {
	switch res.Kind {
	case executor.ResultCreated:
		return fmt.Sprintf("table %s created", res.Table)
	case executor.ResultDropped:
		return fmt.Sprintf("table %s dropped", res.Table)
	case executor.ResultInserted:
		if res.ID != nil {
			return fmt.Sprintf("1 row inserted into %s (id=%d)", res.Table, *res.ID)
		}
		return fmt.Sprintf("1 row inserted into %s", res.Table)
	case executor.ResultRows:
		return renderRows(res)
	default:
		return fmt.Sprintf("OK (%d affected)", res.AffectedRows)
	}
}

func renderRows(res *executor.Result) string {
	cols := res.Columns

	// 1) stringify cells and compute widths
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	cells := make([][]string, len(res.Rows))
	for r, row := range res.Rows {
		cells[r] = make([]string, len(cols))
		for i := range cols {
			s := "NULL"
			if i < len(row) && row[i] != nil {
				s = fmt.Sprintf("%v", row[i])
			}
			cells[r][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	var b strings.Builder
	writeRow := func(values []string) {
		var line strings.Builder
		for i := range cols {
			if i > 0 {
				line.WriteString(" | ")
			}
			line.WriteString(padRight(values[i], widths[i]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}

	// 2) header
	writeRow(cols)

	// 3) separator ----+----
	for i := range cols {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", widths[i]))
	}
	b.WriteByte('\n')

	// 4) rows
	for _, row := range cells {
		writeRow(row)
	}

	fmt.Fprintf(&b, "(%d rows)", len(res.Rows))
	return b.String()
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
