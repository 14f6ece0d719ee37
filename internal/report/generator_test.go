package report

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
)

func sampleReport() *models.AssessmentReport {
	return &models.AssessmentReport{
		ID:          "report-1",
		GeneratedAt: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
		Totals: models.Totals{
			TotalCredit: decimal.RequireFromString("45000.25"),
			TotalDebit:  decimal.RequireFromString("350.75"),
			Net:         decimal.RequireFromString("44649.50"),
		},
		Records: []models.AssessmentRecord{
			{
				Rank:        1,
				Company:     "ACME TRADING SDN BHD",
				TotalCredit: decimal.NewFromInt(20000),
				SharePct:    decimal.RequireFromString("44.4"),
				Risk:        models.RiskHigh,
				RuleIDs:     []models.RuleID{models.RuleIncomeConcentration, models.RuleRoundAmountPattern},
				Flags:       []string{"Income heavily depends on one company (>30%)", "Many inflows are very round numbers (possible manual adjustments)"},
				ActionLevel: "Escalate",
				Actions:     []string{"Apply a haircut.", "Escalate the file."},
			},
			{
				Rank:        2,
				Company:     "KOPI CAFE",
				TotalCredit: decimal.RequireFromString("12000.25"),
				SharePct:    decimal.RequireFromString("26.7"),
				Risk:        models.RiskSafe,
				ActionLevel: "Standard",
				Actions:     []string{"Continue standard monitoring."},
			},
		},
		HighRisk: []models.HighRiskAlert{
			{Company: "ACME TRADING SDN BHD", SharePct: decimal.RequireFromString("44.4"), ActionLevel: "Escalate"},
		},
		Skipped: []models.SkippedTable{
			{FilePath: "broken.csv", Reason: "unreadable table"},
		},
	}
}

func TestGenerate_JSON(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	data, err := g.Generate(sampleReport(), "json")
	require.NoError(t, err)

	var decoded models.AssessmentReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "report-1", decoded.ID)
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, "ACME TRADING SDN BHD", decoded.Records[0].Company)
	assert.Equal(t, models.RiskHigh, decoded.Records[0].Risk)
	assert.True(t, decoded.Totals.TotalCredit.Equal(decimal.RequireFromString("45000.25")))
}

func TestGenerate_XML(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	data, err := g.Generate(sampleReport(), "xml")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), xml.Header))
	assert.Contains(t, string(data), "ACME TRADING SDN BHD")
	assert.Contains(t, string(data), "Escalate")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	_, err := g.Generate(sampleReport(), "pdf")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})
	path := filepath.Join(t.TempDir(), "reports", "out.json")

	require.NoError(t, g.WriteFile(sampleReport(), "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "report-1")
}

func TestRankedRows(t *testing.T) {
	rows := RankedRows(sampleReport())

	require.Len(t, rows, 2)
	assert.Equal(t, RankedCSVRow{
		Rank:        1,
		Company:     "ACME TRADING SDN BHD",
		TotalCredit: "20000.00",
		SharePct:    "44.4",
		Risk:        "High",
		Reason:      "Income heavily depends on one company (>30%); Many inflows are very round numbers (possible manual adjustments)",
		ActionLevel: "Escalate",
		Actions:     "Apply a haircut. Escalate the file.",
	}, rows[0])
	assert.Equal(t, "No unusual patterns detected", rows[1].Reason)
}

func TestWriteRankedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranked.csv")

	require.NoError(t, WriteRankedCSV(sampleReport(), path, ',', &logging.MockLogger{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Rank,Company,Total Credit,Share %,Risk,Reason,Action Level,Actions")
	assert.Contains(t, content, "KOPI CAFE")
	assert.Contains(t, content, "12000.25")
}
