package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aquanqa/aquanqa-cli/internal/export"
	"github.com/aquanqa/aquanqa-cli/internal/roster"
)

const (
	foundFile    = "resultado_encontrados.xlsx"
	notFoundFile = "resultado_no_encontrados.xlsx"
)

var rosterOpts struct {
	global    string
	filter    string
	outputDir string
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Filter the global roster by a list of DNIs",
	Long: `Matches the document column of a DNI list against the global roster and writes
the matched roster rows and the DNIs that were not found as two workbooks.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("roster"); err != nil {
			return err
		}
		global, err := loadTable(rosterOpts.global, noInput)
		if err != nil {
			return err
		}
		filter, err := loadTable(rosterOpts.filter, noInput)
		if err != nil {
			return err
		}

		res, err := roster.Match(global, filter, cfg.Roster)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Registros encontrados: %d\n", len(res.Found))
		_, _ = fmt.Fprintf(out, "DNIs no encontrados: %d\n", len(res.NotFound))

		if err := os.MkdirAll(rosterOpts.outputDir, 0o755); err != nil {
			return eris.Wrap(err, "roster: create output dir")
		}
		if len(res.Found) > 0 {
			path := filepath.Join(rosterOpts.outputDir, foundFile)
			if err := export.SaveWorkbook(path, export.Sheet{Name: "Sheet1", Header: res.FoundHeader, Rows: res.Found}); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", path), zap.Int("rows", len(res.Found)))
		}
		if len(res.NotFound) > 0 {
			path := filepath.Join(rosterOpts.outputDir, notFoundFile)
			if err := export.SaveWorkbook(path, export.Sheet{Name: "Sheet1", Header: res.NotFoundHeader, Rows: res.NotFound}); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", path), zap.Int("rows", len(res.NotFound)))
		}
		return nil
	},
}

func init() {
	rosterCmd.Flags().StringVar(&rosterOpts.global, "global", "", "global roster workbook (required)")
	rosterCmd.Flags().StringVar(&rosterOpts.filter, "filter", "", "workbook with the DNIs to look up (required)")
	rosterCmd.Flags().StringVarP(&rosterOpts.outputDir, "output-dir", "o", ".", "directory for the result workbooks")
	_ = rosterCmd.MarkFlagRequired("global")
	_ = rosterCmd.MarkFlagRequired("filter")
	rootCmd.AddCommand(rosterCmd)
}
