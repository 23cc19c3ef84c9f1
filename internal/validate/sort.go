package validate

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// SortColumns are the report columns SortBy accepts.
var SortColumns = []string{ColPerson, ColHasIssues, ColRows, ColOmittedRows}

// sortAliases are the short names accepted on the command line.
var sortAliases = map[string]string{
	"person":  ColPerson,
	"issues":  ColHasIssues,
	"rows":    ColRows,
	"omitted": ColOmittedRows,
}

var sortComparators = map[string]func(a, b *PersonAggregate) int{
	ColPerson: func(a, b *PersonAggregate) int { return strings.Compare(a.Person, b.Person) },
	ColHasIssues: func(a, b *PersonAggregate) int {
		return cmp.Compare(boolRank(a.HasIssues), boolRank(b.HasIssues))
	},
	ColRows:        func(a, b *PersonAggregate) int { return cmp.Compare(a.Rows, b.Rows) },
	ColOmittedRows: func(a, b *PersonAggregate) int { return cmp.Compare(a.OmittedRows, b.OmittedRows) },
}

// ParseSortColumn resolves a report column header (case-insensitive) or one of the
// aliases person, issues, rows and omitted. An empty name returns "".
func ParseSortColumn(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if col, ok := sortAliases[strings.ToLower(s)]; ok {
		return col, nil
	}
	for _, col := range SortColumns {
		if strings.EqualFold(col, s) {
			return col, nil
		}
	}
	return "", eris.Errorf("validate: cannot sort by %q (want person, issues, rows or omitted)", s)
}

// SortBy returns a copy of r ordered on one of SortColumns. The sort is stable in
// both directions, so persons with equal keys keep their relative order. False
// sorts before true.
func SortBy(r *Report, col string, asc bool) (*Report, error) {
	compare, ok := sortComparators[col]
	if !ok {
		return nil, eris.Errorf("validate: cannot sort by column %q", col)
	}
	out := r.where(func(*PersonAggregate) bool { return true })
	slices.SortStableFunc(out.Persons, func(a, b PersonAggregate) int {
		if asc {
			return compare(&a, &b)
		}
		return compare(&b, &a)
	})
	return out, nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
