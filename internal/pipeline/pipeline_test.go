package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
	"fjacquet/bank-analyzer/internal/parsererror"
)

func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestAnalyzer(opts Options) *Analyzer {
	return NewAnalyzer(opts, &logging.MockLogger{})
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	fileA := writeStatement(t, dir, "maybank.csv",
		"Date,Description,Credit,Debit\n"+
			"2024-01-02,PAYMENT FROM ACME TRADING SDN BHD,20000,\n"+
			"2024-01-03,KOPI CAFE catering order,9000.25,\n"+
			"2024-01-04,utilities bill,,350.75\n")
	fileB := writeStatement(t, dir, "cimb.csv",
		"Date,Narration,Deposit,Withdrawal\n"+
			"2024-01-05,KOPI CAFE catering order,3000,\n"+
			"2024-01-06,HENG CONSTRUCTION HOLDINGS progress claim,13000,\n")

	report, err := newTestAnalyzer(DefaultOptions()).Run([]string{fileA, fileB})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Empty(t, report.Skipped)

	assert.Equal(t, "45000.25", report.Totals.TotalCredit.String())
	assert.Equal(t, "350.75", report.Totals.TotalDebit.String())
	assert.Equal(t, "44649.5", report.Totals.Net.String())

	require.Len(t, report.Records, 3)

	// Dominant round-amount payer: concentration + round pattern, High risk.
	acme := report.Records[0]
	assert.Equal(t, 1, acme.Rank)
	assert.Equal(t, "ACME TRADING SDN BHD", acme.Company)
	assert.Equal(t, "20000", acme.TotalCredit.String())
	assert.Equal(t, "44.4", acme.SharePct.String())
	assert.Equal(t, models.RiskHigh, acme.Risk)
	assert.Equal(t, []models.RuleID{models.RuleIncomeConcentration, models.RuleRoundAmountPattern}, acme.RuleIDs)
	assert.Equal(t, "Escalate", acme.ActionLevel)
	assert.Len(t, acme.Actions, 3)

	// Construction inflow against a food base: mismatch only, Medium risk.
	heng := report.Records[1]
	assert.Equal(t, "HENG CONSTRUCTION HOLDINGS", heng.Company)
	assert.Equal(t, "28.9", heng.SharePct.String())
	assert.Equal(t, models.RiskMedium, heng.Risk)
	assert.Equal(t, []models.RuleID{models.RuleIndustryMismatch}, heng.RuleIDs)
	assert.Equal(t, "Clarification Required", heng.ActionLevel)

	// Cafe inflows merge across both statements and stay Safe.
	kopi := report.Records[2]
	assert.Equal(t, "KOPI CAFE", kopi.Company)
	assert.Equal(t, "12000.25", kopi.TotalCredit.String())
	assert.Equal(t, models.RiskSafe, kopi.Risk)
	assert.Empty(t, kopi.RuleIDs)
	assert.Equal(t, "No unusual patterns detected", kopi.Reason())

	require.Len(t, report.HighRisk, 1)
	assert.Equal(t, "ACME TRADING SDN BHD", report.HighRisk[0].Company)
	assert.Equal(t, "Escalate", report.HighRisk[0].ActionLevel)
}

func TestRun_TableOrderDoesNotChangeAssessment(t *testing.T) {
	dir := t.TempDir()
	fileA := writeStatement(t, dir, "a.csv",
		"Description,Credit\n"+
			"KOPI CAFE catering order,9000.25\n"+
			"PAYMENT FROM ACME TRADING SDN BHD,20000\n")
	fileB := writeStatement(t, dir, "b.csv",
		"Narration,Deposit\n"+
			"KOPI CAFE catering order,3000\n")

	forward, err := newTestAnalyzer(DefaultOptions()).Run([]string{fileA, fileB})
	require.NoError(t, err)
	reversed, err := newTestAnalyzer(DefaultOptions()).Run([]string{fileB, fileA})
	require.NoError(t, err)

	assert.Equal(t, forward.Records, reversed.Records)
	assert.Equal(t, forward.Totals, reversed.Totals)
}

func TestRun_SkipsBrokenTablesAndContinues(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.csv")
	noSchema := writeStatement(t, dir, "noschema.csv",
		"Date,Amount\n2024-01-02,100\n")
	good := writeStatement(t, dir, "good.csv",
		"Description,Credit\nKOPI CAFE catering order,500\n")

	report, err := newTestAnalyzer(DefaultOptions()).Run([]string{missing, noSchema, good})

	require.NoError(t, err)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, missing, report.Skipped[0].FilePath)
	assert.Equal(t, noSchema, report.Skipped[1].FilePath)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "KOPI CAFE", report.Records[0].Company)
}

func TestRun_NoValidTables(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.csv")
	noSchema := writeStatement(t, dir, "noschema.csv",
		"Date,Amount\n2024-01-02,100\n")

	report, err := newTestAnalyzer(DefaultOptions()).Run([]string{missing, noSchema})

	var noTables *parsererror.NoValidTablesError
	require.True(t, errors.As(err, &noTables))
	assert.Equal(t, 2, noTables.Attempted)
	require.NotNil(t, report)
	assert.Len(t, report.Skipped, 2)
	assert.Empty(t, report.Records)
}

func TestRun_NoInflow(t *testing.T) {
	dir := t.TempDir()
	debitsOnly := writeStatement(t, dir, "debits.csv",
		"Description,Credit,Debit\n"+
			"office rent,,2000\n"+
			"utilities bill,,350.75\n")

	report, err := newTestAnalyzer(DefaultOptions()).Run([]string{debitsOnly})

	var noInflow *parsererror.NoInflowError
	require.True(t, errors.As(err, &noInflow))
	require.NotNil(t, report)
	assert.True(t, report.Totals.TotalCredit.IsZero())
	assert.Equal(t, "2350.75", report.Totals.TotalDebit.String())
	assert.Empty(t, report.Records)
}

func TestRunTransactions_TopNTruncation(t *testing.T) {
	opts := DefaultOptions()
	opts.TopN = 2

	txns := []models.Transaction{
		{Description: "catering order", Credit: decimal.NewFromInt(300), Company: "ALPHA"},
		{Description: "catering order", Credit: decimal.NewFromInt(200), Company: "BETA"},
		{Description: "catering order", Credit: decimal.NewFromInt(100), Company: "GAMMA"},
	}

	report, err := newTestAnalyzer(opts).RunTransactions(txns)

	require.NoError(t, err)
	require.Len(t, report.Records, 2)
	assert.Equal(t, "ALPHA", report.Records[0].Company)
	assert.Equal(t, "BETA", report.Records[1].Company)
}

func TestRunTransactions_EqualTotalsKeepFirstSeenOrder(t *testing.T) {
	txns := []models.Transaction{
		{Description: "catering order", Credit: decimal.NewFromInt(100), Company: "LATER"},
		{Description: "catering order", Credit: decimal.NewFromInt(100), Company: "EARLIER"},
	}
	// Same totals either way; rank order follows first appearance.
	report, err := newTestAnalyzer(DefaultOptions()).RunTransactions(txns)

	require.NoError(t, err)
	require.Len(t, report.Records, 2)
	assert.Equal(t, "LATER", report.Records[0].Company)
	assert.Equal(t, "EARLIER", report.Records[1].Company)
}

func TestRunTransactions_ShareRoundsBeforeThresholdCompare(t *testing.T) {
	txns := []models.Transaction{
		{Description: "catering order", Credit: decimal.RequireFromString("2999"), Company: "NEAR"},
		{Description: "catering order", Credit: decimal.RequireFromString("7001"), Company: "BIG"},
	}

	report, err := newTestAnalyzer(DefaultOptions()).RunTransactions(txns)
	require.NoError(t, err)

	// 2999/10000 is 29.99%, which rounds to 30.0 and meets the threshold.
	for _, rec := range report.Records {
		if rec.Company == "NEAR" {
			assert.Equal(t, "30", rec.SharePct.String())
			assert.Contains(t, rec.RuleIDs, models.RuleIncomeConcentration)
		}
	}
}
