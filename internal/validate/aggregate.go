package validate

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

const (
	// NoName is the person bucket for rows with a blank identity.
	NoName = "(Sin nombre)"
	// NoDocument is reported when a person has no document value.
	NoDocument = "N/A"
	// noActivity stands in for the activity in a signature that only has a code.
	noActivity = "(Sin actividad)"
)

// Options configures a validation run. The zero value uses the default omission
// rules, the standard code pattern, and sequential aggregation.
type Options struct {
	Rules     *OmissionRules // nil: DefaultOmissionRules
	Extractor CodeExtractor  // nil: standard activity-code pattern
	Infer     InferOptions
	Workers   int // >1 aggregates persons concurrently
}

// PersonAggregate summarizes every row that belongs to one person.
type PersonAggregate struct {
	Person               string   `json:"person"`
	Document             string   `json:"document"`
	Rows                 int      `json:"rows"`
	CostCenters          []string `json:"cost_centers"`
	EvaluatedCostCenters []string `json:"evaluated_cost_centers"`
	OmittedRows          int      `json:"omitted_rows"`
	Activities           []string `json:"activities"`
	Signatures           []string `json:"activity_signatures"`
	EmptyCostCenterRows  int      `json:"empty_cost_center_rows"`
	EmptyActivityRows    int      `json:"empty_activity_rows"`
	Dates                []string `json:"dates"`

	MultipleCostCenters bool `json:"multiple_cost_centers"`
	MultipleActivities  bool `json:"multiple_activities"`
	HasEmptyCostCenter  bool `json:"has_empty_cost_center"`
	HasEmptyActivity    bool `json:"has_empty_activity"`
	MultipleDates       bool `json:"multiple_dates"`

	Observations []string `json:"observations"`
	HasIssues    bool     `json:"has_issues"`
}

// aggregator holds the per-run state resolved once before rows are grouped.
type aggregator struct {
	tbl       *table.Table
	rules     OmissionRules
	extractor CodeExtractor

	person, document, date, ceco, activity, code int // column indexes, -1 when unused
}

// partition is the set of row indexes sharing one normalized person value.
type partition struct {
	name string
	rows []int
}

// Aggregate groups rows by person and computes each person's summary, including
// observations. Persons appear in order of first occurrence. It fails with a
// *ConfigurationError when a required column is missing.
func Aggregate(t *table.Table, roles RoleMap, opts Options) ([]PersonAggregate, error) {
	a, _, err := newAggregator(t, roles, opts)
	if err != nil {
		return nil, err
	}
	return a.run(opts.Workers), nil
}

// newAggregator resolves column indexes and the effective code column. The returned
// string is the code column in use, or "" when codes come from the activity text.
func newAggregator(t *table.Table, roles RoleMap, opts Options) (*aggregator, string, error) {
	if err := checkRequired(t.Has, roles); err != nil {
		return nil, "", err
	}

	rules := DefaultOmissionRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	ex := opts.Extractor
	if ex == nil {
		ex = NewPatternExtractor(nil)
	}

	codeCol := ""
	if roles.ActivityCode != "" && t.Has(roles.ActivityCode) {
		codeCol = roles.ActivityCode
	} else {
		excluded := map[string]bool{roles.Person: true, roles.CostCenter: true, roles.Activity: true}
		if col, ok := InferCodeColumn(t, excluded, ex, opts.Infer); ok {
			codeCol = col
		}
	}

	a := &aggregator{
		tbl:       t,
		rules:     rules.Normalized(),
		extractor: ex,
		person:    indexOf(t, roles.Person),
		document:  indexOf(t, roles.Document),
		date:      indexOf(t, roles.Date),
		ceco:      indexOf(t, roles.CostCenter),
		activity:  indexOf(t, roles.Activity),
		code:      indexOf(t, codeCol),
	}
	return a, codeCol, nil
}

func indexOf(t *table.Table, col string) int {
	if col == "" {
		return -1
	}
	if i, ok := t.Index(col); ok {
		return i
	}
	return -1
}

func (a *aggregator) run(workers int) []PersonAggregate {
	parts := a.partitions()
	out := make([]PersonAggregate, len(parts))

	if workers <= 1 {
		for i, p := range parts {
			out[i] = a.summarize(p)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			out[i] = a.summarize(p)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// partitions groups row indexes by normalized person text. Blank identities share
// the NoName bucket.
func (a *aggregator) partitions() []partition {
	pos := make(map[string]int)
	var parts []partition
	for r, row := range a.tbl.Rows {
		name := cellText(row[a.person])
		if name == "" {
			name = NoName
		}
		i, ok := pos[name]
		if !ok {
			i = len(parts)
			pos[name] = i
			parts = append(parts, partition{name: name})
		}
		parts[i].rows = append(parts[i].rows, r)
	}
	return parts
}

func (a *aggregator) summarize(p partition) PersonAggregate {
	agg := PersonAggregate{
		Person:   p.name,
		Document: NoDocument,
		Rows:     len(p.rows),
	}

	cecos := newStringSet()
	evaluated := newStringSet()
	activities := newStringSet()
	signatures := newStringSet()
	dates := newStringSet()
	documentSet := false

	for _, r := range p.rows {
		row := a.tbl.Rows[r]

		ceco := cellText(row[a.ceco])
		activity := cellText(row[a.activity])
		code := a.codeFor(row, activity)

		if ceco == "" {
			agg.EmptyCostCenterRows++
		} else {
			cecos.add(ceco)
		}
		if activity == "" {
			agg.EmptyActivityRows++
		} else {
			activities.add(activity)
		}

		if a.rules.IsOmitted(activity, code) {
			agg.OmittedRows++
		} else if ceco != "" {
			evaluated.add(ceco)
		}

		if sig := activitySignature(activity, code); sig != "" {
			signatures.add(sig)
		}

		if a.date >= 0 {
			if d := NormalizeDate(row[a.date]); d != "" {
				dates.add(d)
			}
		}

		if a.document >= 0 && !documentSet {
			if doc := cellText(row[a.document]); doc != "" {
				agg.Document = doc
				documentSet = true
			}
		}
	}

	agg.CostCenters = cecos.sorted()
	agg.EvaluatedCostCenters = evaluated.sorted()
	agg.Activities = activities.sorted()
	agg.Signatures = signatures.sorted()
	agg.Dates = dates.sorted()

	agg.MultipleCostCenters = len(agg.EvaluatedCostCenters) > 1
	if a.code >= 0 {
		agg.MultipleActivities = len(agg.Signatures) > 1
	} else {
		agg.MultipleActivities = len(agg.Activities) > 1
	}
	agg.HasEmptyCostCenter = agg.EmptyCostCenterRows > 0
	agg.HasEmptyActivity = agg.EmptyActivityRows > 0
	agg.MultipleDates = len(agg.Dates) > 1

	Classify(&agg)
	return agg
}

// codeFor extracts the row's activity code from the code column, or from the
// activity text when no code column is in use.
func (a *aggregator) codeFor(row table.Row, activity string) string {
	if a.code >= 0 {
		return a.extractor.Extract(cellText(row[a.code]))
	}
	return a.extractor.Extract(activity)
}

func activitySignature(activity, code string) string {
	switch {
	case activity != "" && code != "":
		return activity + " (" + code + ")"
	case activity != "":
		return activity
	case code != "":
		return noActivity + " (" + code + ")"
	}
	return ""
}

type stringSet map[string]struct{}

func newStringSet() stringSet { return make(stringSet) }

func (s stringSet) add(v string) { s[v] = struct{}{} }

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
