package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/aquanqa/aquanqa-cli/internal/table"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

func sampleReport(t *testing.T) *validate.Report {
	t.Helper()
	tbl := table.FromStrings(
		[]string{"Persona", "CECO", "Actividad"},
		[][]string{
			{"Ana", "C1", "Riego"},
			{"Ana", "C2", "Riego"},
			{"Eva", "C3", "Riego"},
		},
	)
	roles := validate.RoleMap{Person: "Persona", CostCenter: "CECO", Activity: "Actividad"}
	r, err := validate.Validate(tbl, roles, validate.Options{})
	require.NoError(t, err)
	return r
}

func sheetValues(t *testing.T, sh *xlsx.Sheet) [][]string {
	t.Helper()
	var out [][]string
	for _, row := range sh.Rows {
		var vals []string
		for _, c := range row.Cells {
			vals = append(vals, c.String())
		}
		out = append(out, vals)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestCleanView(t *testing.T) {
	s := CleanView("Validacion", sampleReport(t))

	assert.Equal(t, cleanColumns, s.Header)
	require.Len(t, s.Rows, 2)

	ana := s.Rows[0]
	assert.Equal(t, "Ana", ana[0])
	assert.Equal(t, "N/A", ana[1])
	assert.Equal(t, "C1, C2", ana[2])
	assert.Equal(t, "SI", ana[6])
	assert.Equal(t, validate.ObsMultipleCostCenters, ana[8])
	assert.Equal(t, "SI", ana[9])

	eva := s.Rows[1]
	assert.Equal(t, "NO", eva[6])
	assert.Equal(t, "OK", eva[8])
	assert.Equal(t, "NO", eva[9])
}

func TestWriteReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportXLSX(&buf, sampleReport(t)))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, SheetValidation, f.Sheets[0].Name)
	assert.Equal(t, SheetObservations, f.Sheets[1].Name)

	all := sheetValues(t, f.Sheets[0])
	assert.Len(t, all, 3)
	assert.Equal(t, cleanColumns, all[0])

	issues := sheetValues(t, f.Sheets[1])
	require.Len(t, issues, 2)
	assert.Equal(t, "Ana", issues[1][0])
}

func TestWriteReportXLSX_EmptyReportKeepsHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportXLSX(&buf, &validate.Report{}))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	for _, sh := range f.Sheets {
		rows := sheetValues(t, sh)
		require.Len(t, rows, 1, sh.Name)
		assert.Equal(t, cleanColumns, rows[0])
	}
}

func TestSaveWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, SaveWorkbook(path, Sheet{Name: "Datos", Header: []string{"DNI"}, Rows: [][]string{{"123"}}}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"DNI"}, {"123"}}, sheetValues(t, f.Sheets[0]))
}

func TestWriteWorkbook_NoSheets(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteWorkbook(&buf))
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, sampleReport(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, validate.ReportColumns, records[0])
	assert.Equal(t, "Ana", records[1][0])
	assert.Equal(t, "true", records[1][21])
}

func TestWriteReportJSON(t *testing.T) {
	r := sampleReport(t)
	doc := ReportDocument{
		Source:  "asistencia.xlsx",
		Summary: validate.Summarize(r, nil),
		Persons: r.Persons,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, doc))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "asistencia.xlsx", got["source"])
	assert.Equal(t, []any{}, got["dates"])

	summary := got["summary"].(map[string]any)
	assert.InDelta(t, 2, summary["total_persons"], 0)
	assert.InDelta(t, 1, summary["with_issues"], 0)

	persons := got["persons"].([]any)
	require.Len(t, persons, 2)
	assert.Equal(t, "Ana", persons[0].(map[string]any)["person"])
}

func TestWriteReportJSON_EmptyPersonsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, ReportDocument{}))
	assert.Contains(t, buf.String(), `"persons": []`)
}
