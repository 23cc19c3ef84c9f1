package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

// Sheet names of the validation workbook.
const (
	SheetValidation   = "Validacion"
	SheetObservations = "Observaciones"
)

// Format is an output encoding for a validation report.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a format name. An empty name means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", eris.Errorf("export: unknown format %q (want table, json, csv or xlsx)", s)
}

// cleanColumns is the reduced column set of the spreadsheet views.
var cleanColumns = []string{
	validate.ColPerson,
	validate.ColDocument,
	validate.ColCostCenters,
	validate.ColActivities,
	validate.ColEmptyCostCenterRows,
	validate.ColEmptyActivityRows,
	validate.ColMultipleCostCenters,
	validate.ColOmittedRows,
	validate.ColObservations,
	validate.ColHasIssues,
}

// yesNoColumns are rendered as SI/NO instead of true/false in the clean view.
var yesNoColumns = map[string]bool{
	validate.ColMultipleCostCenters: true,
	validate.ColHasIssues:           true,
}

// CleanView projects the report onto the reduced spreadsheet columns.
func CleanView(name string, r *validate.Report) Sheet {
	idx := make(map[string]int, len(validate.ReportColumns))
	for i, c := range validate.ReportColumns {
		idx[c] = i
	}

	s := Sheet{Name: name, Header: append([]string(nil), cleanColumns...)}
	for _, rec := range r.Records() {
		row := make([]string, len(cleanColumns))
		for j, c := range cleanColumns {
			v := rec[idx[c]]
			if yesNoColumns[c] {
				v = yesNo(v == "true")
			}
			row[j] = v
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "SI"
	}
	return "NO"
}

// WriteReportXLSX writes the validation workbook: every person on the Validacion
// sheet and only persons with issues on the Observaciones sheet.
func WriteReportXLSX(w io.Writer, r *validate.Report) error {
	return WriteWorkbook(w,
		CleanView(SheetValidation, r),
		CleanView(SheetObservations, validate.ApplyQuickFilter(r, validate.FilterIssues)),
	)
}

// WriteReportCSV writes the full 22-column report.
func WriteReportCSV(w io.Writer, r *validate.Report) error {
	return WriteSheetCSV(w, Sheet{Header: r.Header(), Rows: r.Records()})
}

// ReportDocument is the JSON shape of a validation run.
type ReportDocument struct {
	Source             string                     `json:"source,omitempty"`
	Summary            validate.Summary           `json:"summary"`
	Dates              []string                   `json:"dates"`
	CodeColumn         string                     `json:"code_column,omitempty"`
	CodeColumnInferred bool                       `json:"code_column_inferred,omitempty"`
	HiddenNeutral      int                        `json:"hidden_neutral,omitempty"`
	Persons            []validate.PersonAggregate `json:"persons"`
}

// WriteReportJSON writes doc as indented JSON.
func WriteReportJSON(w io.Writer, doc ReportDocument) error {
	if doc.Persons == nil {
		doc.Persons = []validate.PersonAggregate{}
	}
	if doc.Dates == nil {
		doc.Dates = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}
