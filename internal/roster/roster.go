// Package roster filters a global employee roster down to a list of document
// numbers.
package roster

import (
	"fmt"
	"strings"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// NotFoundMessage is the MENSAJE value of every unmatched document.
const NotFoundMessage = "DNI no se encontró en la data global"

// ColMessage is the message column of the not-found sheet.
const ColMessage = "MENSAJE"

// Columns names the document columns of both inputs.
type Columns struct {
	Global string `mapstructure:"global"`
	Filter string `mapstructure:"filter"`
}

// DefaultColumns returns the column names of the HR exports.
func DefaultColumns() Columns {
	return Columns{Global: "NRO. DOCUMENTO", Filter: "DNI"}
}

// Result is the outcome of matching a filter list against the global roster.
type Result struct {
	// FoundHeader is the filter columns followed by the global columns not already
	// present in the filter.
	FoundHeader []string
	Found       [][]string
	// NotFound holds each unmatched document once, in filter order.
	NotFoundHeader []string
	NotFound       [][]string
}

// MissingColumnError names a document column absent from one of the inputs.
type MissingColumnError struct {
	Input     string
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("roster: column %q not found in %s (available: %s)",
		e.Column, e.Input, strings.Join(e.Available, ", "))
}

// Match performs a left join of filter onto global by document number. Every
// filter row produces one found row per matching global row; filter documents with
// no match are listed once in NotFound.
func Match(global, filter *table.Table, cols Columns) (*Result, error) {
	if !global.Has(cols.Global) {
		return nil, &MissingColumnError{Input: "global data", Column: cols.Global, Available: global.Columns}
	}
	if !filter.Has(cols.Filter) {
		return nil, &MissingColumnError{Input: "document list", Column: cols.Filter, Available: filter.Columns}
	}

	byDoc := make(map[string][]int)
	for r := range global.Rows {
		doc := documentKey(global.Get(r, cols.Global))
		byDoc[doc] = append(byDoc[doc], r)
	}

	globalCols := make([]string, 0, len(global.Columns))
	for _, c := range global.Columns {
		if !filter.Has(c) {
			globalCols = append(globalCols, c)
		}
	}

	res := &Result{
		FoundHeader:    append(append([]string(nil), filter.Columns...), globalCols...),
		NotFoundHeader: []string{cols.Filter, ColMessage},
	}
	reported := make(map[string]bool)
	for r := range filter.Rows {
		doc := documentKey(filter.Get(r, cols.Filter))
		matches := byDoc[doc]
		if len(matches) == 0 {
			if !reported[doc] {
				reported[doc] = true
				res.NotFound = append(res.NotFound, []string{doc, NotFoundMessage})
			}
			continue
		}
		left := filter.Record(r, filter.Columns)
		for _, g := range matches {
			res.Found = append(res.Found, append(append([]string(nil), left...), global.Record(g, globalCols)...))
		}
	}
	return res, nil
}

// documentKey is the trimmed display text of a document cell.
func documentKey(c table.Cell) string {
	return strings.TrimSpace(c.String())
}
