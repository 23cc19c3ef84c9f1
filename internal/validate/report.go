package validate

import (
	"slices"
	"strconv"
	"strings"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// Report column headers, in output order.
const (
	ColPerson               = "Persona"
	ColDocument             = "Documento"
	ColRows                 = "Filas Persona"
	ColCostCenters          = "Cecos Unicos"
	ColEvaluatedCostCenters = "Cecos Evaluados (sin actividades omitidas)"
	ColOmittedRows          = "Filas Omitidas CECO"
	ColCostCenterCount      = "Cantidad Cecos Unicos"
	ColEvaluatedCount       = "Cantidad Cecos Evaluados (sin actividades omitidas)"
	ColMultipleCostCenters  = "Cecos Diferentes"
	ColEmptyCostCenterRows  = "Ceco Vacio (filas)"
	ColHasEmptyCostCenter   = "Tiene Ceco Vacio"
	ColActivities           = "Actividades Unicas"
	ColSignatures           = "Actividades (con Cod. Actividad)"
	ColActivityCount        = "Cantidad Actividades Unicas"
	ColSignatureCount       = "Cantidad Actividades (con Cod. Actividad)"
	ColMultipleActivities   = "Actividades Diferentes"
	ColEmptyActivityRows    = "Actividad Vacia (filas)"
	ColHasEmptyActivity     = "Tiene Actividad Vacia"
	ColDates                = "Fechas Persona"
	ColMultipleDates        = "Tiene Multiples Fechas Persona"
	ColObservations         = "Observaciones"
	ColHasIssues            = "Tiene Problemas"
)

const (
	noneMasculine        = "Ninguno"
	noneFeminine         = "Ninguna"
	noDate               = "Sin fecha"
	noObservations       = "OK"
	observationSeparator = " | "
	listSeparator        = ", "
)

// ReportColumns is the fixed column set of the report table.
var ReportColumns = []string{
	ColPerson,
	ColDocument,
	ColRows,
	ColCostCenters,
	ColEvaluatedCostCenters,
	ColOmittedRows,
	ColCostCenterCount,
	ColEvaluatedCount,
	ColMultipleCostCenters,
	ColEmptyCostCenterRows,
	ColHasEmptyCostCenter,
	ColActivities,
	ColSignatures,
	ColActivityCount,
	ColSignatureCount,
	ColMultipleActivities,
	ColEmptyActivityRows,
	ColHasEmptyActivity,
	ColDates,
	ColMultipleDates,
	ColObservations,
	ColHasIssues,
}

// Report is the per-person validation result, issues first, then by name.
type Report struct {
	Persons []PersonAggregate `json:"persons"`
	// CodeColumn is the column codes were read from; empty when codes were taken
	// from the activity text.
	CodeColumn string `json:"code_column,omitempty"`
	// CodeColumnInferred is true when CodeColumn was detected rather than given.
	CodeColumnInferred bool `json:"code_column_inferred,omitempty"`
}

// Validate aggregates t by person using the given role bindings and returns the
// sorted report. It fails with a *ConfigurationError when a required column is
// missing; an empty table yields an empty report.
func Validate(t *table.Table, roles RoleMap, opts Options) (*Report, error) {
	a, codeCol, err := newAggregator(t, roles, opts)
	if err != nil {
		return nil, err
	}

	persons := a.run(opts.Workers)
	SortPersons(persons)

	return &Report{
		Persons:            persons,
		CodeColumn:         codeCol,
		CodeColumnInferred: codeCol != "" && codeCol != roles.ActivityCode,
	}, nil
}

// SortPersons orders persons with issues first, then by name ascending. The sort is
// stable.
func SortPersons(persons []PersonAggregate) {
	slices.SortStableFunc(persons, func(a, b PersonAggregate) int {
		if a.HasIssues != b.HasIssues {
			if a.HasIssues {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Person, b.Person)
	})
}

// Len returns the number of persons in the report.
func (r *Report) Len() int {
	return len(r.Persons)
}

// Header returns the report column names.
func (r *Report) Header() []string {
	return slices.Clone(ReportColumns)
}

// Records renders every person as a row aligned with Header.
func (r *Report) Records() [][]string {
	out := make([][]string, 0, len(r.Persons))
	for i := range r.Persons {
		out = append(out, r.Persons[i].Record())
	}
	return out
}

// Record renders the aggregate as a row aligned with ReportColumns.
func (p *PersonAggregate) Record() []string {
	return []string{
		p.Person,
		p.Document,
		strconv.Itoa(p.Rows),
		joinOr(p.CostCenters, listSeparator, noneMasculine),
		joinOr(p.EvaluatedCostCenters, listSeparator, noneMasculine),
		strconv.Itoa(p.OmittedRows),
		strconv.Itoa(len(p.CostCenters)),
		strconv.Itoa(len(p.EvaluatedCostCenters)),
		strconv.FormatBool(p.MultipleCostCenters),
		strconv.Itoa(p.EmptyCostCenterRows),
		strconv.FormatBool(p.HasEmptyCostCenter),
		joinOr(p.Activities, listSeparator, noneFeminine),
		joinOr(p.Signatures, listSeparator, noneFeminine),
		strconv.Itoa(len(p.Activities)),
		strconv.Itoa(len(p.Signatures)),
		strconv.FormatBool(p.MultipleActivities),
		strconv.Itoa(p.EmptyActivityRows),
		strconv.FormatBool(p.HasEmptyActivity),
		joinOr(p.Dates, listSeparator, noDate),
		strconv.FormatBool(p.MultipleDates),
		joinOr(p.Observations, observationSeparator, noObservations),
		strconv.FormatBool(p.HasIssues),
	}
}

// Field returns the rendered value of one report column, or "" when col is not a
// report column.
func (p *PersonAggregate) Field(col string) string {
	i := slices.Index(ReportColumns, col)
	if i < 0 {
		return ""
	}
	return p.Record()[i]
}

func joinOr(values []string, sep, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, sep)
}

// DetectDistinctDates returns the sorted distinct normalized dates of dateCol. It
// is empty when dateCol is unset or not in the table.
func DetectDistinctDates(t *table.Table, dateCol string) []string {
	if dateCol == "" || !t.Has(dateCol) {
		return []string{}
	}
	set := newStringSet()
	for _, c := range t.Column(dateCol) {
		if d := NormalizeDate(c); d != "" {
			set.add(d)
		}
	}
	return set.sorted()
}
