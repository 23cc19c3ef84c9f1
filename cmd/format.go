package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aquanqa/aquanqa-cli/internal/attendance"
	"github.com/aquanqa/aquanqa-cli/internal/export"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

// maxCellWidth caps free-text columns in terminal tables.
const maxCellWidth = 40

func formatSummary(out io.Writer, doc export.ReportDocument) {
	s := doc.Summary
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total personas:\t%d\n", s.TotalPersons)
	_, _ = fmt.Fprintf(w, "Con problemas:\t%d\n", s.WithIssues)
	_, _ = fmt.Fprintf(w, "CECO diferentes:\t%d\n", s.MultipleCostCenters)
	_, _ = fmt.Fprintf(w, "Actividades diferentes:\t%d\n", s.MultipleActivities)
	_, _ = fmt.Fprintf(w, "Con vacios:\t%d\n", s.WithEmptyFields)
	if doc.CodeColumn != "" {
		how := "configurada"
		if doc.CodeColumnInferred {
			how = "detectada"
		}
		_, _ = fmt.Fprintf(w, "Columna Cod. Actividad:\t%s (%s)\n", doc.CodeColumn, how)
	}
	_ = w.Flush()

	switch len(doc.Dates) {
	case 0:
	case 1:
		_, _ = fmt.Fprintf(out, "Fecha unica detectada en archivo: %s\n", doc.Dates[0])
	default:
		_, _ = fmt.Fprintf(out, "Se detectaron multiples fechas en el archivo (%d): %s\n",
			len(doc.Dates), strings.Join(doc.Dates, ", "))
	}
	if doc.HiddenNeutral > 0 {
		_, _ = fmt.Fprintf(out, "Se ocultaron %d registros sin CECO evaluable y sin problemas (use --show-neutral).\n",
			doc.HiddenNeutral)
	}
	_, _ = fmt.Fprintln(out)
}

func formatReport(out io.Writer, r *validate.Report) {
	if r.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No hay registros para mostrar con los filtros actuales.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PERSONA\tDOCUMENTO\tFILAS\tCECOS EVALUADOS\tOMITIDAS\tACTIVIDADES\tOBSERVACIONES\tPROBLEMAS")
	_, _ = fmt.Fprintln(w, "-------\t---------\t-----\t---------------\t--------\t-----------\t-------------\t---------")
	for _, p := range r.Persons {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\t%s\t%s\n",
			truncate(p.Person, maxCellWidth),
			p.Document,
			p.Rows,
			truncate(p.Field(validate.ColEvaluatedCostCenters), maxCellWidth),
			p.OmittedRows,
			truncate(p.Field(validate.ColSignatures), maxCellWidth),
			p.Field(validate.ColObservations),
			yesNo(p.HasIssues),
		)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\nTotal: %d registros.\n", r.Len())
}

// formatDetail prints one block per person in r.
func formatDetail(out io.Writer, r *validate.Report) {
	if r.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No se encontro persona para el termino de busqueda.")
		return
	}
	for i := range r.Persons {
		p := &r.Persons[i]
		_, _ = fmt.Fprintf(out, "== %s ==\n", p.Person)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, line := range [][2]string{
			{"Documento", p.Field(validate.ColDocument)},
			{"Filas de la persona", p.Field(validate.ColRows)},
			{"Cecos unicos", p.Field(validate.ColCostCenterCount)},
			{"Actividades unicas", p.Field(validate.ColActivityCount)},
			{"CECOs", p.Field(validate.ColCostCenters)},
			{"CECOs evaluados (sin actividades omitidas)", p.Field(validate.ColEvaluatedCostCenters)},
			{"Filas omitidas para CECO", p.Field(validate.ColOmittedRows)},
			{"Actividades", p.Field(validate.ColActivities)},
			{"Actividades con codigo", p.Field(validate.ColSignatures)},
			{"Fechas", p.Field(validate.ColDates)},
			{"Observaciones", p.Field(validate.ColObservations)},
		} {
			_, _ = fmt.Fprintf(w, "%s:\t%s\n", line[0], line[1])
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(out)
	}
}

func formatRoles(out io.Writer, roles validate.RoleMap, scores []validate.CodeColumnScore, inferred string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ROLE\tCOLUMN")
	_, _ = fmt.Fprintln(w, "----\t------")
	for _, role := range validate.Roles {
		col := roles.Get(role)
		if col == "" {
			col = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", role, col)
	}
	_ = w.Flush()

	if len(scores) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE CANDIDATE\tSCORE\t")
	_, _ = fmt.Fprintln(w, "--------------\t-----\t")
	for _, s := range scores {
		mark := ""
		if s.Column == inferred {
			mark = "<- inferred"
		}
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%s\n", s.Column, s.Score, mark)
	}
	_ = w.Flush()
}

func formatSection(out io.Writer, s attendance.Section) {
	_, _ = fmt.Fprintf(out, "%s (%d)\n", s.Title, s.Len())
	if s.Len() == 0 {
		_, _ = fmt.Fprintln(out, "  sin registros")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(s.Header, "\t"))
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = truncate(v, maxCellWidth)
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "SI"
	}
	return "NO"
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
