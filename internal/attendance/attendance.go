// Package attendance checks daily attendance exports for duplicated document
// numbers, missing names and absences without a justification flag.
package attendance

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

const (
	// ColFlaggedIn lists the justification columns holding a 1 for a row.
	ColFlaggedIn = "Con valor 1 en"
	// NoFlag is written when no justification column holds a 1.
	NoFlag = "-"
	// NoFlagUnjustified is the ColFlaggedIn value of every unjustified row.
	NoFlagUnjustified = "- (ninguna tiene 1)"
)

// Columns names the input columns the checker reads.
type Columns struct {
	Document       string   `mapstructure:"document"`
	Name           string   `mapstructure:"name"`
	CheckIn        string   `mapstructure:"check_in"`
	CheckOut       string   `mapstructure:"check_out"`
	Justifications []string `mapstructure:"justifications"`
}

// DefaultColumns returns the column names of the payroll system export.
func DefaultColumns() Columns {
	return Columns{
		Document: "DNI",
		Name:     "Nombre",
		CheckIn:  "Hr Entrada",
		CheckOut: "Hr Salida",
		Justifications: []string{
			"D.Ausencia",
			"D.Permiso",
			"D.Permiso Goce",
			"D.Vacaciones",
			"D.Licencia",
		},
	}
}

// Section is one list of flagged rows, ready to print or export.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Len returns the number of flagged rows.
func (s Section) Len() int { return len(s.Rows) }

// Result holds the three checks. A section is empty when the check found nothing or
// was skipped; skipped checks leave a warning.
type Result struct {
	Duplicates  Section
	EmptyNames  Section
	Unjustified Section
	Warnings    []string
}

// Clean reports whether no check flagged any row.
func (r *Result) Clean() bool {
	return r.Duplicates.Len() == 0 && r.EmptyNames.Len() == 0 && r.Unjustified.Len() == 0
}

// Sections returns the three sections in report order.
func (r *Result) Sections() []Section {
	return []Section{r.Duplicates, r.EmptyNames, r.Unjustified}
}

// ErrMissingDocument is returned when the document column is absent.
var ErrMissingDocument = eris.New("attendance: document column not found")

// Check runs every attendance check over t. Only the document column is required;
// the name and hours checks are skipped with a warning when their columns are
// missing.
func Check(t *table.Table, cols Columns) (*Result, error) {
	if !t.Has(cols.Document) {
		return nil, eris.Wrapf(ErrMissingDocument, "column %q", cols.Document)
	}

	c := checker{tbl: t, cols: cols, flags: t.Present(cols.Justifications...)}
	res := &Result{
		Duplicates:  c.duplicates(),
		EmptyNames:  Section{Title: "Nombres vacios"},
		Unjustified: Section{Title: "Sin justificacion"},
	}

	if t.Has(cols.Name) {
		res.EmptyNames = c.emptyNames()
	} else {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("column %q not found, empty-name check skipped", cols.Name))
	}

	hasHours := t.Has(cols.CheckIn) && t.Has(cols.CheckOut)
	switch {
	case hasHours && len(c.flags) > 0:
		res.Unjustified = c.unjustified()
	case hasHours:
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"no justification columns (%s) found, missing-hours check skipped", strings.Join(cols.Justifications, ", ")))
	}

	return res, nil
}

type checker struct {
	tbl   *table.Table
	cols  Columns
	flags []string // justification columns present in the table
}

// duplicates lists every row whose document value appears more than once. Blank
// documents count as one shared value.
func (c checker) duplicates() Section {
	counts := make(map[string]int)
	for r := range c.tbl.Rows {
		counts[c.text(r, c.cols.Document)]++
	}

	view := c.tbl.Present(c.cols.Document, c.cols.Name, c.cols.CheckIn, c.cols.CheckOut)
	s := Section{Title: "Duplicados", Header: view}
	if len(c.flags) > 0 {
		s.Header = append(append([]string(nil), view...), ColFlaggedIn)
	}
	for r := range c.tbl.Rows {
		if counts[c.text(r, c.cols.Document)] < 2 {
			continue
		}
		rec := c.tbl.Record(r, view)
		if len(c.flags) > 0 {
			flagged := c.flaggedIn(r)
			if len(flagged) == 0 {
				rec = append(rec, NoFlag)
			} else {
				rec = append(rec, strings.Join(flagged, ", "))
			}
		}
		s.Rows = append(s.Rows, rec)
	}
	return s
}

// emptyNames lists full rows with a blank name.
func (c checker) emptyNames() Section {
	s := Section{Title: "Nombres vacios", Header: c.tbl.Columns}
	for r := range c.tbl.Rows {
		if isBlank(c.tbl.Get(r, c.cols.Name)) {
			s.Rows = append(s.Rows, c.tbl.Record(r, c.tbl.Columns))
		}
	}
	return s
}

// unjustified lists rows with neither check-in nor check-out and no justification
// column set to 1.
func (c checker) unjustified() Section {
	view := c.tbl.Present(append([]string{c.cols.Document, c.cols.Name, c.cols.CheckIn, c.cols.CheckOut}, c.flags...)...)
	s := Section{Title: "Sin justificacion", Header: append(append([]string(nil), view...), ColFlaggedIn)}
	for r := range c.tbl.Rows {
		if !isBlank(c.tbl.Get(r, c.cols.CheckIn)) || !isBlank(c.tbl.Get(r, c.cols.CheckOut)) {
			continue
		}
		if len(c.flaggedIn(r)) > 0 {
			continue
		}
		s.Rows = append(s.Rows, append(c.tbl.Record(r, view), NoFlagUnjustified))
	}
	return s
}

func (c checker) flaggedIn(r int) []string {
	var out []string
	for _, col := range c.flags {
		if strings.TrimSpace(c.tbl.Get(r, col).String()) == "1" {
			out = append(out, col)
		}
	}
	return out
}

func (c checker) text(r int, col string) string {
	return strings.TrimSpace(c.tbl.Get(r, col).String())
}

func isBlank(cell table.Cell) bool {
	s := strings.ToLower(strings.TrimSpace(cell.String()))
	return s == "" || s == "nan" || s == "none"
}
