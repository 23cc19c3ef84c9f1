//go:build !integration

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func resetRosterOpts(t *testing.T) {
	t.Helper()
	old := rosterOpts
	t.Cleanup(func() { rosterOpts = old })
}

func TestRosterCmd(t *testing.T) {
	useConfig(t, testConfig())
	resetRosterOpts(t)
	rosterOpts.global = writeWorkbook(t,
		[]string{"NRO. DOCUMENTO", "APELLIDOS Y NOMBRES"},
		[]string{"111", "Quispe Ana"},
		[]string{"222", "Rojas Luis"},
	)
	rosterOpts.filter = writeWorkbook(t, []string{"DNI"}, []string{"222"}, []string{"999"})
	rosterOpts.outputDir = filepath.Join(t.TempDir(), "salida")

	out, err := runCmd(t, rosterCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Registros encontrados: 1")
	assert.Contains(t, out, "DNIs no encontrados: 1")

	found, err := xlsx.OpenFile(filepath.Join(rosterOpts.outputDir, foundFile))
	require.NoError(t, err)
	rows := found.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Rojas Luis", rows[1].Cells[2].String())

	notFound, err := xlsx.OpenFile(filepath.Join(rosterOpts.outputDir, notFoundFile))
	require.NoError(t, err)
	assert.Equal(t, "999", notFound.Sheets[0].Rows[1].Cells[0].String())
}

func TestRosterCmd_MissingColumn(t *testing.T) {
	useConfig(t, testConfig())
	resetRosterOpts(t)
	rosterOpts.global = writeWorkbook(t, []string{"DOCUMENTO"}, []string{"111"})
	rosterOpts.filter = writeWorkbook(t, []string{"DNI"}, []string{"111"})
	rosterOpts.outputDir = t.TempDir()

	_, err := runCmd(t, rosterCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"NRO. DOCUMENTO" not found in global data`)
}
