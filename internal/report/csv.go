package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
)

// RankedCSVRow is the fixed-schema CSV projection of one ranked record.
type RankedCSVRow struct {
	Rank        int    `csv:"Rank"`
	Company     string `csv:"Company"`
	TotalCredit string `csv:"Total Credit"`
	SharePct    string `csv:"Share %"`
	Risk        string `csv:"Risk"`
	Reason      string `csv:"Reason"`
	ActionLevel string `csv:"Action Level"`
	Actions     string `csv:"Actions"`
}

// RankedRows projects the report's ranked records into CSV rows.
func RankedRows(rep *models.AssessmentReport) []RankedCSVRow {
	rows := make([]RankedCSVRow, 0, len(rep.Records))
	for _, rec := range rep.Records {
		risk := models.RiskRecord{Flags: rec.Flags}
		rows = append(rows, RankedCSVRow{
			Rank:        rec.Rank,
			Company:     rec.Company,
			TotalCredit: rec.TotalCredit.StringFixed(2),
			SharePct:    rec.SharePct.String(),
			Risk:        string(rec.Risk),
			Reason:      risk.Reason(),
			ActionLevel: rec.ActionLevel,
			Actions:     models.PolicyDecision{Actions: rec.Actions}.ActionsText(),
		})
	}
	return rows
}

// WriteRankedCSV writes the ranked records to a CSV file with the given
// delimiter.
func WriteRankedCSV(rep *models.AssessmentReport, path string, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	rows := RankedRows(rep)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Wrote ranked records CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
