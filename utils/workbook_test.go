package utils_test

import (
	"testing"

	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/cobraops/cobra-core/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkbookLowercasesHeadersAndSkipsEmptyRows(t *testing.T) {
	data, err := apptest.BuildWorkbook(
		[]string{"Nombre", "CEDULA", " Celular "},
		[][]string{
			{"Maria", "45781236", "51922222222"},
			{"", "", ""},
			{"Jose", "40112233", "51933333333"},
		},
	)
	require.NoError(t, err)

	headers, rows, err := utils.ParseWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"nombre", "cedula", "celular"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Maria", rows[0]["nombre"])
	assert.Equal(t, "51933333333", rows[1]["celular"])
}

func TestParseWorkbookMissingTrailingCells(t *testing.T) {
	data, err := apptest.BuildWorkbook(
		[]string{"Nombre", "Cedula", "Monto"},
		[][]string{{"Maria", "45781236"}},
	)
	require.NoError(t, err)

	_, rows, err := utils.ParseWorkbook(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["monto"])
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, _, err := utils.ParseWorkbook([]byte("not a spreadsheet"))
	assert.Error(t, err)
}

func TestMatchColumnIsFuzzy(t *testing.T) {
	headers := []string{"nombre completo", "nro de cedula", "celular principal"}

	got, ok := utils.MatchColumn(headers, []string{"cedula", "documento"})
	require.True(t, ok)
	assert.Equal(t, "nro de cedula", got)

	_, ok = utils.MatchColumn(headers, []string{"correo", "email"})
	assert.False(t, ok)
}
