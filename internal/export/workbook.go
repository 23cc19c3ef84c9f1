// Package export writes validation results and tool outputs as XLSX, CSV or JSON.
package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet is one named grid of string cells.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteWorkbook writes sheets, in order, as an XLSX workbook to w. Every sheet gets
// its header row even when it has no data rows.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	f, err := buildWorkbook(sheets)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

// SaveWorkbook is WriteWorkbook to a file path.
func SaveWorkbook(path string, sheets ...Sheet) error {
	f, err := buildWorkbook(sheets)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

func buildWorkbook(sheets []Sheet) (*xlsx.File, error) {
	if len(sheets) == 0 {
		return nil, eris.New("export: workbook needs at least one sheet")
	}
	f := xlsx.NewFile()
	for _, s := range sheets {
		sh, err := f.AddSheet(s.Name)
		if err != nil {
			return nil, eris.Wrapf(err, "export: add sheet %q", s.Name)
		}
		addRow(sh, s.Header)
		for _, r := range s.Rows {
			addRow(sh, r)
		}
	}
	return f, nil
}

func addRow(sh *xlsx.Sheet, values []string) {
	row := sh.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// WriteSheetCSV writes one sheet as CSV with its header first.
func WriteSheetCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return eris.Wrap(err, "export: write csv rows")
	}
	return nil
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: create %s", path)
	}
	return f, nil
}
