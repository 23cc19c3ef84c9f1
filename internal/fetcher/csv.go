// Package fetcher loads spreadsheet and CSV exports into in-memory tables.
package fetcher

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// CSVOptions configures the CSV loader.
type CSVOptions struct {
	Delimiter  rune   // default: detected among ',', ';', '\t'
	Charset    string // default: UTF-8 when valid, else windows-1252
	Comment    rune   // comment character (0 = none)
	SkipRows   int    // records above the header record
	LazyQuotes bool
	TrimSpace  bool
}

// ReadCSV loads a delimited text export into a table. The first record is the
// header. Fully empty records are dropped.
func ReadCSV(r io.Reader, opts CSVOptions) (*table.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "csv: read input")
	}

	data, err := decode(raw, opts.Charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = detectDelimiter(data)
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	var header []string
	var rows []table.Row
	for n := 0; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if n < opts.SkipRows {
			continue
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if header == nil {
			header = make([]string, len(record))
			for i, h := range record {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		row := make(table.Row, len(record))
		for i, v := range record {
			row[i] = table.Text(v)
		}
		if table.IsBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	if header == nil {
		return nil, eris.New("csv: input has no header row")
	}
	return table.New(header, rows), nil
}

// decode converts raw bytes to UTF-8. A byte-order mark always wins; otherwise an
// explicit charset is honored, and without one invalid UTF-8 is read as windows-1252,
// which is what spreadsheet tools on Spanish-locale Windows emit.
func decode(raw []byte, charset string) ([]byte, error) {
	var fallback encoding.Encoding = unicode.UTF8
	switch {
	case charset != "":
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "csv: unsupported charset %q", charset)
		}
		fallback = enc
	case !utf8.Valid(raw):
		fallback = charmap.Windows1252
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback.NewDecoder()), raw)
	if err != nil {
		return nil, eris.Wrap(err, "csv: decode input")
	}
	return out, nil
}

// detectDelimiter picks the most frequent candidate delimiter on the first line.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
