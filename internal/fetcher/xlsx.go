package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// XLSXOptions configures the XLSX loader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // rows above the header row
}

// ReadXLSX loads one sheet of an XLSX workbook into a table. The first row after
// SkipRows is the header. Fully empty rows are dropped.
func ReadXLSX(path string, opts XLSXOptions) (*table.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return sheetTable(f, opts)
}

// SheetNames lists the sheets of a workbook in file order.
func SheetNames(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return sheetNames(f), nil
}

func sheetNames(f *xlsx.File) []string {
	names := make([]string, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	return names
}

func sheetTable(f *xlsx.File, opts XLSXOptions) (*table.Table, error) {
	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows []table.Row
	for i, row := range sheet.Rows {
		if i < opts.SkipRows || row == nil {
			continue
		}
		if header == nil {
			header = headerStrings(row)
			continue
		}
		cells := rowToCells(row, f.Date1904)
		if table.IsBlankRow(cells) {
			continue
		}
		rows = append(rows, cells)
	}

	if header == nil {
		return nil, eris.Errorf("xlsx: sheet %q has no header row", sheet.Name)
	}
	return table.New(header, rows), nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found (available: %s)",
				opts.SheetName, strings.Join(sheetNames(f), ", "))
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func headerStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		out[j] = strings.TrimSpace(cell.String())
	}
	// Trailing blank headers are formatting residue, not columns.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func rowToCells(row *xlsx.Row, date1904 bool) table.Row {
	cells := make(table.Row, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = toCell(cell, date1904)
	}
	return cells
}

// toCell maps an xlsx cell onto a typed scalar. Values that fail to parse as their
// declared type fall back to their display text.
func toCell(c *xlsx.Cell, date1904 bool) table.Cell {
	if c == nil {
		return table.Cell{}
	}
	text := c.String()
	if strings.TrimSpace(text) == "" {
		return table.Cell{}
	}

	switch c.Type() {
	case xlsx.CellTypeBool:
		return table.Bool(c.Bool())
	case xlsx.CellTypeNumeric:
		if c.IsTime() {
			if t, err := c.GetTime(date1904); err == nil {
				return table.Time(t)
			}
		}
		if v, err := c.Float(); err == nil {
			return table.Number(v)
		}
	}
	return table.Text(text)
}
