package fetcher

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "Persona,CECO,Actividad\nAna,C1,Riego\nLuis,C2,Cosecha\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Persona", "CECO", "Actividad"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "C2", tbl.Get(1, "CECO").String())
}

func TestReadCSV_DetectsSemicolon(t *testing.T) {
	input := "Nombre;Centro de Costo;Labor\nAna;C1;Riego\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Nombre", "Centro de Costo", "Labor"}, tbl.Columns)
	assert.Equal(t, "Riego", tbl.Get(0, "Labor").String())
}

func TestReadCSV_ExplicitDelimiter(t *testing.T) {
	input := "a|b\n1|2\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, "2", tbl.Get(0, "b").String())
}

func TestReadCSV_StripsUTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFPersona,CECO\nAna,C1\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Persona", "CECO"}, tbl.Columns)
}

func TestReadCSV_Windows1252Fallback(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Código Actividad,Año\nPODA-020-L001,2025\n")
	require.NoError(t, err)

	tbl, err := ReadCSV(bytes.NewReader([]byte(encoded)), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Código Actividad", "Año"}, tbl.Columns)
}

func TestReadCSV_ExplicitCharset(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Cédula\n123\n")
	require.NoError(t, err)

	tbl, err := ReadCSV(strings.NewReader(encoded), CSVOptions{Charset: "iso-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cédula"}, tbl.Columns)
}

func TestReadCSV_UnknownCharset(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a\n1\n"), CSVOptions{Charset: "klingon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported charset")
}

func TestReadCSV_TrimSpaceAndBlankRows(t *testing.T) {
	input := "a,b\n  x , y \n,\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "x", tbl.Get(0, "a").String())
}

func TestReadCSV_SkipRowsAndComment(t *testing.T) {
	input := "Reporte semanal;;\nPersona;CECO;Actividad\n# exportado por el sistema\nAna;C1;Riego\n"
	tbl, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: ';', SkipRows: 1, Comment: '#'})
	require.NoError(t, err)
	assert.Equal(t, []string{"Persona", "CECO", "Actividad"}, tbl.Columns)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Ana", tbl.Get(0, "Persona").String())
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644))

	tbl, err := Load(csvPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	xlsxPath := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}, {"1"}}})
	tbl, err = Load(xlsxPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoad_UnsupportedFormats(t *testing.T) {
	_, err := Load("report.xls", Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load("report.pdf", Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
