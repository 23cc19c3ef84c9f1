package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aquanqa/aquanqa-cli/internal/attendance"
	"github.com/aquanqa/aquanqa-cli/internal/export"
)

var attendanceOpts struct {
	file   string
	input  inputFlags
	output string
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Check a daily attendance file for duplicated DNIs, empty names and unjustified absences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("attendance"); err != nil {
			return err
		}
		tbl, err := loadTable(attendanceOpts.file, attendanceOpts.input)
		if err != nil {
			return err
		}

		res, err := attendance.Check(tbl, cfg.Attendance)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			zap.L().Warn(w)
		}
		zap.L().Info("attendance check complete",
			zap.String("file", attendanceOpts.file),
			zap.Int("duplicates", res.Duplicates.Len()),
			zap.Int("empty_names", res.EmptyNames.Len()),
			zap.Int("unjustified", res.Unjustified.Len()),
		)

		out := cmd.OutOrStdout()
		if res.Clean() {
			_, _ = fmt.Fprintln(out, "Archivo limpio: no se encontraron errores.")
		} else {
			for _, s := range res.Sections() {
				formatSection(out, s)
				_, _ = fmt.Fprintln(out)
			}
		}

		if attendanceOpts.output == "" {
			return nil
		}
		var sheets []export.Sheet
		for _, s := range res.Sections() {
			if s.Len() > 0 {
				sheets = append(sheets, export.Sheet{Name: s.Title, Header: s.Header, Rows: s.Rows})
			}
		}
		if len(sheets) == 0 {
			zap.L().Info("nothing to export, no workbook written")
			return nil
		}
		if err := export.SaveWorkbook(attendanceOpts.output, sheets...); err != nil {
			return err
		}
		zap.L().Info("workbook written", zap.String("path", attendanceOpts.output))
		return nil
	},
}

func init() {
	attendanceCmd.Flags().StringVarP(&attendanceOpts.file, "file", "f", "", "attendance .xlsx or .csv (required)")
	attendanceOpts.input.bind(attendanceCmd.Flags())
	attendanceCmd.Flags().StringVarP(&attendanceOpts.output, "output", "o", "", "write flagged rows to this .xlsx, one sheet per check")
	_ = attendanceCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(attendanceCmd)
}
