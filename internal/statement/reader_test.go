package statement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-analyzer/internal/logging"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "statement.csv",
		"Date,Description,Credit,Debit\n"+
			"2024-01-02,PAYMENT FROM ACME TRADING SDN BHD,1500.00,\n"+
			"2024-01-03,office rent,,2000\n")

	table, err := ReadCSV(path, ',', &logging.MockLogger{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Description", "Credit", "Debit"}, table.Headers)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "office rent", table.Cell(table.Rows[1], "Description"))
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	path := writeTempCSV(t, "statement.csv",
		"Description;Credit\ncatering order;300\n")

	table, err := ReadCSV(path, ';', &logging.MockLogger{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Description", "Credit"}, table.Headers)
	assert.Equal(t, "300", table.Cell(table.Rows[0], "Credit"))
}

func TestReadCSV_ToleratesRaggedRowsAndBOM(t *testing.T) {
	path := writeTempCSV(t, "statement.csv",
		"\ufeffDescription,Credit,Debit\n"+
			"short row,100\n"+
			"long row,200,,extra\n")

	table, err := ReadCSV(path, ',', &logging.MockLogger{})

	require.NoError(t, err)
	assert.Equal(t, "Description", table.Headers[0])
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Cell(table.Rows[0], "Debit"))
}

func TestReadCSV_SubstitutesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("Description,Credit\ncaf\xe9 order,100\n"), 0644))

	table, err := ReadCSV(path, ',', &logging.MockLogger{})

	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Contains(t, table.Cell(table.Rows[0], "Description"), "caf")
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), ',', &logging.MockLogger{})
	assert.Error(t, err)
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "")
	_, err := ReadCSV(path, ',', &logging.MockLogger{})
	assert.ErrorContains(t, err, "empty")
}

func TestReadTable_DispatchesOnExtension(t *testing.T) {
	path := writeTempCSV(t, "statement.txt", "Description,Credit\nrent,100\n")

	table, err := ReadTable(path, ',', &logging.MockLogger{})

	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestReadTable_RejectsInvalidWorkbook(t *testing.T) {
	path := writeTempCSV(t, "statement.xlsx", "not a workbook")
	_, err := ReadTable(path, ',', &logging.MockLogger{})
	assert.Error(t, err)
}
