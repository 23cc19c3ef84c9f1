package fetcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// ErrUnsupportedFormat is returned for file extensions no loader understands.
var ErrUnsupportedFormat = eris.New("fetcher: unsupported file format")

// Options selects per-format loader settings.
type Options struct {
	XLSX XLSXOptions
	CSV  CSVOptions
	// ZIPMember names the archive member to load from a .zip; empty means the only
	// spreadsheet in the archive.
	ZIPMember string
}

// Load reads a tabular file, dispatching on its extension.
func Load(path string, opts Options) (*table.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts.XLSX)
	case ".csv", ".txt", ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: open file")
		}
		defer f.Close() //nolint:errcheck
		if ext == ".tsv" && opts.CSV.Delimiter == 0 {
			opts.CSV.Delimiter = '\t'
		}
		return ReadCSV(f, opts.CSV)
	case ".zip":
		return LoadZIP(path, opts.ZIPMember, opts)
	case ".xls":
		return nil, eris.Wrap(ErrUnsupportedFormat, "legacy .xls workbooks must be saved as .xlsx")
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
}
