package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aquanqa/aquanqa-cli/internal/fetcher"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

var rolesOpts struct {
	file  string
	input inputFlags
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Show the column suggested for each role and the activity-code candidates",
	Long: `Lists the sheets of a workbook (or the spreadsheets of a .zip), then the column
suggested for each role and the score of every activity-code candidate column.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("roles"); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := describeSource(out, rolesOpts.file); err != nil {
			return err
		}
		tbl, err := loadTable(rolesOpts.file, rolesOpts.input)
		if err != nil {
			return err
		}

		roles := validate.SuggestTableRoles(tbl)
		opts := cfg.Validation.Options()
		ex := validate.NewPatternExtractor(nil)
		excluded := map[string]bool{roles.Person: true, roles.CostCenter: true, roles.Activity: true}

		scores := validate.ScoreCodeColumns(tbl, excluded, ex, opts.Infer)
		inferred, _ := validate.InferCodeColumn(tbl, excluded, ex, opts.Infer)

		formatRoles(out, roles, scores, inferred)
		return nil
	},
}

// describeSource prints the sheets of a workbook or the tabular members of an
// archive. Other inputs print nothing.
func describeSource(out io.Writer, path string) error {
	var label string
	var names []string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		label = "Hojas"
		names, err = fetcher.SheetNames(path)
	case ".zip":
		label = "Archivos en el ZIP"
		names, err = fetcher.TabularMembers(path)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n\n", label, strings.Join(names, ", "))
	return nil
}

func init() {
	rolesCmd.Flags().StringVarP(&rolesOpts.file, "file", "f", "", "input file (required)")
	rolesOpts.input.bind(rolesCmd.Flags())
	_ = rolesCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(rolesCmd)
}
