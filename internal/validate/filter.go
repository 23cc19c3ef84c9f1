package validate

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// QuickFilter selects a subset of report rows.
type QuickFilter string

const (
	FilterAll         QuickFilter = "all"
	FilterIssues      QuickFilter = "issues"
	FilterCostCenters QuickFilter = "ceco"
	FilterEmpty       QuickFilter = "empty"
	FilterOmitted     QuickFilter = "omitted"
)

// ParseQuickFilter validates a filter name. An empty name means FilterAll.
func ParseQuickFilter(s string) (QuickFilter, error) {
	switch f := QuickFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterIssues, FilterCostCenters, FilterEmpty, FilterOmitted:
		return f, nil
	}
	return "", eris.Errorf("validate: unknown filter %q (want all, issues, ceco, empty or omitted)", s)
}

func (f QuickFilter) match(p *PersonAggregate) bool {
	switch f {
	case FilterIssues:
		return p.HasIssues
	case FilterCostCenters:
		return p.MultipleCostCenters
	case FilterEmpty:
		return p.HasEmptyCostCenter || p.HasEmptyActivity
	case FilterOmitted:
		return p.OmittedRows > 0
	}
	return true
}

// ApplyQuickFilter returns a report holding only the persons f selects, in the
// original order.
func ApplyQuickFilter(r *Report, f QuickFilter) *Report {
	return r.where(f.match)
}

// FilterNeutral drops persons with no evaluated cost center and no issues; nothing
// in their rows is subject to CECO validation. It returns the remaining report and
// the number of persons hidden.
func FilterNeutral(r *Report) (*Report, int) {
	out := r.where(func(p *PersonAggregate) bool {
		return len(p.EvaluatedCostCenters) > 0 || p.HasIssues
	})
	return out, len(r.Persons) - len(out.Persons)
}

// Search keeps persons whose name, document, cost centers, activities or
// observations contain query. Matching ignores case and accents.
func Search(r *Report, query string) *Report {
	return containsIn(r, query, searchFields)
}

// ContainsCostCenter keeps persons whose distinct cost centers contain query.
func ContainsCostCenter(r *Report, query string) *Report {
	return containsIn(r, query, func(p *PersonAggregate) []string {
		return []string{strings.Join(p.CostCenters, listSeparator)}
	})
}

// ContainsActivity keeps persons whose activities or activity signatures contain
// query.
func ContainsActivity(r *Report, query string) *Report {
	return containsIn(r, query, func(p *PersonAggregate) []string {
		return []string{
			strings.Join(p.Activities, listSeparator),
			strings.Join(p.Signatures, listSeparator),
		}
	})
}

// MatchPerson keeps the persons whose name contains query, ignoring case and accents.
// An empty query keeps everyone.
func MatchPerson(r *Report, query string) *Report {
	return containsIn(r, query, func(p *PersonAggregate) []string {
		return []string{p.Person}
	})
}

func containsIn(r *Report, query string, fields func(*PersonAggregate) []string) *Report {
	q := foldText(strings.TrimSpace(query))
	if q == "" {
		return r.where(func(*PersonAggregate) bool { return true })
	}
	return r.where(func(p *PersonAggregate) bool {
		for _, field := range fields(p) {
			if strings.Contains(foldText(field), q) {
				return true
			}
		}
		return false
	})
}

func searchFields(p *PersonAggregate) []string {
	return []string{
		p.Person,
		p.Document,
		strings.Join(p.CostCenters, listSeparator),
		strings.Join(p.EvaluatedCostCenters, listSeparator),
		strings.Join(p.Activities, listSeparator),
		strings.Join(p.Signatures, listSeparator),
		strings.Join(p.Observations, observationSeparator),
	}
}

func (r *Report) where(keep func(*PersonAggregate) bool) *Report {
	out := &Report{CodeColumn: r.CodeColumn, CodeColumnInferred: r.CodeColumnInferred}
	out.Persons = make([]PersonAggregate, 0, len(r.Persons))
	for i := range r.Persons {
		if keep(&r.Persons[i]) {
			out.Persons = append(out.Persons, r.Persons[i])
		}
	}
	return out
}

// foldText lower-cases s and strips combining accents so "Peña" matches "pena".
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
