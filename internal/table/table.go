// Package table holds the in-memory tabular dataset fed to the validators.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar type stored in a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindTime
	KindBool
)

// Cell is a single scalar value from a spreadsheet or CSV file.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
	Bool   bool
}

// Text returns a text cell, or an empty cell when s is blank.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Number: f} }

// Time returns a date/time cell.
func Time(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// String renders the cell the way a spreadsheet user reads it.
// Integral numbers drop the decimal part; midnight times render as a date and
// time-of-day values (Excel serials below 1) render as a clock.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		if c.Number == float64(int64(c.Number)) {
			return strconv.FormatInt(int64(c.Number), 10)
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindTime:
		if c.Time.Year() < 1900 {
			return c.Time.Format("15:04:05")
		}
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	case KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Row is one input record, aligned with Table.Columns.
type Row []Cell

// Table is a fully materialized dataset with ordered, unique column names.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// New builds a Table from a header and rows. Headers are sanitized: blank names
// become "Unnamed: <i>" and repeated names get ".1", ".2" suffixes. Rows are padded
// or truncated to the header width.
func New(header []string, rows []Row) *Table {
	cols := sanitizeHeader(header)
	t := &Table{
		Columns: cols,
		Rows:    make([]Row, 0, len(rows)),
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		t.index[c] = i
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, fitRow(r, len(cols)))
	}
	return t
}

// FromStrings builds a Table where every value is a text cell.
func FromStrings(header []string, records [][]string) *Table {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(rec))
		for i, v := range rec {
			row[i] = Text(v)
		}
		rows = append(rows, row)
	}
	return New(header, rows)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table contains the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Index returns the position of the named column.
func (t *Table) Index(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Column returns every cell of the named column, or nil if it does not exist.
func (t *Table) Column(col string) []Cell {
	i, ok := t.index[col]
	if !ok {
		return nil
	}
	out := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Get returns the cell at the given row and column name. Unknown columns yield an
// empty cell.
func (t *Table) Get(row int, col string) Cell {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	return t.Rows[row][i]
}

// Record renders the given columns of one row as display strings. Unknown columns
// render as "".
func (t *Table) Record(row int, cols []string) []string {
	out := make([]string, len(cols))
	for j, c := range cols {
		out[j] = t.Get(row, c).String()
	}
	return out
}

// Present returns the subset of cols that exist in the table, in the given order.
func (t *Table) Present(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func fitRow(r Row, width int) Row {
	out := make(Row, width)
	copy(out, r)
	return out
}

func sanitizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			name = candidate
		}
		seen[name] = max(seen[name], 1)
		out[i] = name
	}
	return out
}

// IsBlankRow reports whether every cell in the row is empty.
func IsBlankRow(r Row) bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
