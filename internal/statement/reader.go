package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"fjacquet/bank-analyzer/internal/logging"
)

// ReadTable reads one statement export, dispatching on file extension.
// XLSX workbooks are read from their first sheet; everything else is treated
// as delimited text.
func ReadTable(path string, delimiter rune, logger logging.Logger) (*RawTable, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, logger)
	default:
		return ReadCSV(path, delimiter, logger)
	}
}

// ReadCSV reads a delimited text export. The header row is required. Malformed
// byte sequences are substituted rather than failing the read, and ragged rows
// are tolerated; bank exports are rarely well-formed.
func ReadCSV(path string, delimiter rune, logger logging.Logger) (*RawTable, error) {
	logger.Info("Reading statement CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}

	// Substitute invalid byte sequences instead of failing the read.
	content := strings.ToValidUTF8(string(data), string('�'))
	content = strings.TrimPrefix(content, "\ufeff")

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("statement file is empty: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header row: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading statement rows: %w", err)
		}
		rows = append(rows, record)
	}

	logger.Info("Successfully read statement CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldRows, Value: len(rows)})

	return newRawTable(path, headers, rows), nil
}

// ReadXLSX reads the first sheet of an Excel workbook as a table. The first
// row is the header row.
func ReadXLSX(path string, logger logging.Logger) (*RawTable, error) {
	logger.Info("Reading statement workbook",
		logging.Field{Key: logging.FieldFile, Value: path})

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	allRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet '%s': %w", sheet, err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("workbook sheet is empty: %s", path)
	}

	logger.Info("Successfully read statement workbook",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldRows, Value: len(allRows) - 1})

	return newRawTable(path, allRows[0], allRows[1:]), nil
}
