// Package table renders small labelled tables as aligned plain text.
//
// Large tables are elided to the process-wide display limits (see
// CurrentLimits and Override): the middle rows and columns are replaced with
// "...".
package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

const ellipsis = "..."

// Table is a grid of formatted cells with a label for each row and column.
type Table struct {
	columns []string
	index   []string
	rows    [][]string
}

// New returns an empty table with the given column labels.
func New(columns ...string) *Table {
	return &Table{columns: columns}
}

// Append adds a row. Cells are formatted with FormatValue; missing trailing
// cells are left blank.
func (t *Table) Append(label string, cells ...interface{}) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = FormatValue(cells[i])
		}
	}
	t.index = append(t.index, label)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table using the current display limits.
func (t *Table) Render(w io.Writer) error {
	return t.RenderLimits(w, CurrentLimits())
}

// RenderLimits writes the table, eliding rows and columns beyond l.
func (t *Table) RenderLimits(w io.Writer, l Limits) error {
	if len(t.rows) == 0 || len(t.columns) == 0 {
		_, err := fmt.Fprintf(w, "(empty: %d rows, %d columns)\n", len(t.rows), len(t.columns))
		return err
	}

	colIdx := keep(len(t.columns), l.MaxColumns)
	rowIdx := keep(len(t.rows), l.MaxRows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{""}
	for _, c := range colIdx {
		header = append(header, t.column(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range rowIdx {
		line := []string{ellipsis}
		if r >= 0 {
			line[0] = t.index[r]
		}
		for _, c := range colIdx {
			switch {
			case r < 0 || c < 0:
				line = append(line, ellipsis)
			default:
				line = append(line, t.rows[r][c])
			}
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	if len(rowIdx) < len(t.rows) || len(colIdx) < len(t.columns) {
		fmt.Fprintf(tw, "\n[%d rows x %d columns]\n", len(t.rows), len(t.columns))
	}
	return tw.Flush()
}

func (t *Table) column(c int) string {
	if c < 0 {
		return ellipsis
	}
	return t.columns[c]
}

// keep returns the indices to render out of n, with -1 marking the elided
// middle.
func keep(n, limit int) []int {
	out := make([]int, 0, n)
	if limit <= 0 || n <= limit {
		for i := 0; i < n; i++ {
			out = append(out, i)
		}
		return out
	}
	head := (limit + 1) / 2
	tail := limit - head
	for i := 0; i < head; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - tail; i < n; i++ {
		out = append(out, i)
	}
	return out
}

// FormatValue formats a cell value for display. Nil renders as "-".
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
