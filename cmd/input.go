package main

import (
	"strconv"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aquanqa/aquanqa-cli/internal/fetcher"
	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// inputFlags selects what to read from an input file. Zero values fall back to the
// input section of the config.
type inputFlags struct {
	sheet    string
	member   string
	skipRows int
}

func (in *inputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&in.sheet, "sheet", "", "sheet name or zero-based index")
	fs.StringVar(&in.member, "member", "", "file to read from a .zip archive (default: its only spreadsheet)")
	fs.IntVar(&in.skipRows, "skip-rows", -1, "rows above the header row (default: input.skip_rows)")
}

// loadTable reads path with the configured input settings. in.sheet selects a workbook
// sheet by name or zero-based index and overrides input.sheet_index.
func loadTable(path string, in inputFlags) (*table.Table, error) {
	skip := cfg.Input.SkipRows
	if in.skipRows >= 0 {
		skip = in.skipRows
	}
	opts := fetcher.Options{
		XLSX: fetcher.XLSXOptions{SheetIndex: cfg.Input.SheetIndex, SkipRows: skip},
		CSV: fetcher.CSVOptions{
			Charset:    cfg.Input.CSVCharset,
			SkipRows:   skip,
			TrimSpace:  true,
			LazyQuotes: true,
		},
		ZIPMember: in.member,
	}
	if d := cfg.Input.CSVDelimiter; d != "" {
		r, _ := utf8.DecodeRuneInString(d)
		opts.CSV.Delimiter = r
	}
	if c := cfg.Input.CSVComment; c != "" {
		r, _ := utf8.DecodeRuneInString(c)
		opts.CSV.Comment = r
	}
	if in.sheet != "" {
		if i, err := strconv.Atoi(in.sheet); err == nil {
			opts.XLSX.SheetIndex = i
		} else {
			opts.XLSX.SheetName = in.sheet
		}
	}

	tbl, err := fetcher.Load(path, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "load %s", path)
	}
	zap.L().Debug("input loaded",
		zap.String("file", path),
		zap.String("member", in.member),
		zap.Int("skip_rows", skip),
		zap.Int("rows", tbl.Len()),
		zap.Int("columns", len(tbl.Columns)),
	)
	return tbl, nil
}

// noInput reads a file with the config defaults only.
var noInput = inputFlags{skipRows: -1}
