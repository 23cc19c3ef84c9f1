package main

import (
	"io"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aquanqa/aquanqa-cli/internal/export"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

var validateOpts struct {
	file        string
	input       inputFlags
	roles       validate.RoleMap
	rulesPath   string
	filter      string
	search      string
	ceco        string
	activity    string
	showNeutral bool
	sortBy      string
	desc        bool
	detail      string
	format      string
	output      string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate CECO and activity consistency per person",
	Long: `Groups the rows of an attendance export by person and reports persons with more
than one evaluated CECO, blank CECOs or blank activities. Harvest and hauling
activities are left out of the CECO check.

Role flags override the column suggested from the header.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("validate"); err != nil {
			return err
		}
		format, err := export.ParseFormat(validateOpts.format)
		if err != nil {
			return err
		}
		quick, err := validate.ParseQuickFilter(validateOpts.filter)
		if err != nil {
			return err
		}
		sortCol, err := validate.ParseSortColumn(validateOpts.sortBy)
		if err != nil {
			return err
		}
		if validateOpts.detail != "" && format != export.FormatTable {
			return eris.New("validate: --detail only applies to table output")
		}

		tbl, err := loadTable(validateOpts.file, validateOpts.input)
		if err != nil {
			return err
		}

		roles := validate.SuggestTableRoles(tbl).Override(validateOpts.roles)
		opts := cfg.Validation.Options()
		if validateOpts.rulesPath != "" {
			rules, err := validate.LoadOmissionRules(validateOpts.rulesPath)
			if err != nil {
				return err
			}
			opts.Rules = &rules
		}

		report, err := validate.Validate(tbl, roles, opts)
		if err != nil {
			return err
		}

		hidden := 0
		if cfg.Validation.HideNeutral && !validateOpts.showNeutral {
			report, hidden = validate.FilterNeutral(report)
		}
		dates := validate.DetectDistinctDates(tbl, roles.Date)
		summary := validate.Summarize(report, dates)

		zap.L().Info("validation complete",
			zap.String("file", validateOpts.file),
			zap.Int("rows", tbl.Len()),
			zap.Int("persons", summary.TotalPersons),
			zap.Int("with_issues", summary.WithIssues),
			zap.Int("hidden_neutral", hidden),
			zap.String("code_column", report.CodeColumn),
		)

		view := validate.ApplyQuickFilter(report, quick)
		view = validate.Search(view, validateOpts.search)
		view = validate.ContainsCostCenter(view, validateOpts.ceco)
		view = validate.ContainsActivity(view, validateOpts.activity)
		if sortCol != "" {
			if view, err = validate.SortBy(view, sortCol, !validateOpts.desc); err != nil {
				return err
			}
		}

		if validateOpts.detail != "" {
			formatDetail(cmd.OutOrStdout(), validate.MatchPerson(report, validateOpts.detail))
			return nil
		}

		doc := export.ReportDocument{
			Source:             filepath.Base(validateOpts.file),
			Summary:            summary,
			Dates:              dates,
			CodeColumn:         report.CodeColumn,
			CodeColumnInferred: report.CodeColumnInferred,
			HiddenNeutral:      hidden,
			Persons:            view.Persons,
		}
		return writeValidation(cmd.OutOrStdout(), format, validateOpts.output, doc, view)
	},
}

// writeValidation renders the report in format, to output when set and to stdout
// otherwise. XLSX always needs an output path.
func writeValidation(stdout io.Writer, format export.Format, output string, doc export.ReportDocument, view *validate.Report) error {
	if format == export.FormatXLSX && output == "" {
		return eris.New("validate: --output is required for xlsx")
	}

	w := stdout
	if output != "" {
		f, err := export.Create(output)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	var err error
	switch format {
	case export.FormatJSON:
		err = export.WriteReportJSON(w, doc)
	case export.FormatCSV:
		err = export.WriteReportCSV(w, view)
	case export.FormatXLSX:
		err = export.WriteReportXLSX(w, view)
	default:
		formatSummary(w, doc)
		formatReport(w, view)
	}
	if err != nil {
		return err
	}

	if output != "" {
		zap.L().Info("report written", zap.String("path", output), zap.String("format", string(format)))
	}
	return nil
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateOpts.file, "file", "f", "", "input file: .xlsx, .csv, .tsv or .zip (required)")
	validateOpts.input.bind(f)
	f.StringVar(&validateOpts.roles.Person, "person", "", "person column")
	f.StringVar(&validateOpts.roles.Document, "document", "", "document column")
	f.StringVar(&validateOpts.roles.Date, "date", "", "date column")
	f.StringVar(&validateOpts.roles.CostCenter, "ceco", "", "CECO column")
	f.StringVar(&validateOpts.roles.Activity, "activity", "", "activity column")
	f.StringVar(&validateOpts.roles.ActivityCode, "code", "", "activity code column")
	f.StringVar(&validateOpts.rulesPath, "rules", "", "YAML file with omission keywords and code prefixes")
	f.StringVar(&validateOpts.filter, "filter", "all", "quick filter: all, issues, ceco, empty or omitted")
	f.StringVarP(&validateOpts.search, "search", "s", "", "keep persons matching this text")
	f.StringVar(&validateOpts.ceco, "ceco-contains", "", "keep persons with a CECO containing this text")
	f.StringVar(&validateOpts.activity, "activity-contains", "", "keep persons with an activity containing this text")
	f.BoolVar(&validateOpts.showNeutral, "show-neutral", false, "include persons with no evaluated CECO and no issues")
	f.StringVar(&validateOpts.sortBy, "sort", "", "order rows by person, issues, rows or omitted (default: issues first, then person)")
	f.BoolVar(&validateOpts.desc, "desc", false, "sort descending")
	f.StringVar(&validateOpts.detail, "detail", "", "print the detail of the persons whose name contains this text")
	f.StringVar(&validateOpts.format, "format", "table", "output format: table, json, csv or xlsx")
	f.StringVarP(&validateOpts.output, "output", "o", "", "write to this file instead of stdout")
	_ = validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}
