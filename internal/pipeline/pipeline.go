// Package pipeline orchestrates the full assessment run: table ingestion,
// schema resolution, transaction merging, counterparty ranking, and rule
// evaluation. The whole computation is a deterministic batch reduction; the
// same inputs always produce the same report, whatever order the tables
// arrive in.
package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/bank-analyzer/internal/industry"
	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
	"fjacquet/bank-analyzer/internal/parsererror"
	"fjacquet/bank-analyzer/internal/policy"
	"fjacquet/bank-analyzer/internal/rules"
	"fjacquet/bank-analyzer/internal/schema"
	"fjacquet/bank-analyzer/internal/statement"
)

// Options carries the tunable analysis parameters. Zero values are filled in
// from DefaultOptions by NewAnalyzer.
type Options struct {
	// BaseIndustry is the assessed business's own declared sector.
	BaseIndustry string

	// TopN is how many ranked counterparties the report carries.
	TopN int

	// ConcentrationThresholdPct is the inclusive share threshold, in percent.
	ConcentrationThresholdPct decimal.Decimal

	// RoundAmountDivisors are the round-amount rule's divisors.
	RoundAmountDivisors []int64

	// Delimiter is the input CSV delimiter.
	Delimiter rune

	// Taxonomy and Matrix are the static classification tables. They are
	// injected rather than global so tests can substitute alternates.
	Taxonomy industry.Taxonomy
	Matrix   policy.Matrix
}

// DefaultOptions returns the reference deployment's parameters.
func DefaultOptions() Options {
	return Options{
		BaseIndustry:              "food",
		TopN:                      5,
		ConcentrationThresholdPct: decimal.NewFromInt(30),
		RoundAmountDivisors:       []int64{5000, 10000},
		Delimiter:                 ',',
		Taxonomy:                  industry.DefaultTaxonomy(),
		Matrix:                    policy.DefaultMatrix(),
	}
}

// Analyzer runs the assessment pipeline. It holds only read-only state and is
// safe for concurrent runs.
type Analyzer struct {
	opts   Options
	engine *rules.Engine
	logger logging.Logger
}

// NewAnalyzer builds an analyzer from the given options, filling unset fields
// from the defaults.
func NewAnalyzer(opts Options, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	defaults := DefaultOptions()
	if opts.BaseIndustry == "" {
		opts.BaseIndustry = defaults.BaseIndustry
	}
	if opts.TopN <= 0 {
		opts.TopN = defaults.TopN
	}
	if opts.ConcentrationThresholdPct.IsZero() {
		opts.ConcentrationThresholdPct = defaults.ConcentrationThresholdPct
	}
	if len(opts.RoundAmountDivisors) == 0 {
		opts.RoundAmountDivisors = defaults.RoundAmountDivisors
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = defaults.Delimiter
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = defaults.Taxonomy
	}
	if opts.Matrix == nil {
		opts.Matrix = defaults.Matrix
	}

	engine := rules.NewEngine(
		opts.BaseIndustry,
		opts.ConcentrationThresholdPct,
		opts.RoundAmountDivisors,
		industry.NewClassifier(opts.Taxonomy),
		logger,
	)

	return &Analyzer{
		opts:   opts,
		engine: engine,
		logger: logger,
	}
}

// Run loads every input file and produces the assessment report.
//
// Individual table failures are isolated: an unreadable file or an
// unresolvable schema is recorded in the report's skipped list and the run
// continues with the remaining tables. The returned error is non-nil only for
// the run-level conditions: every table failed, or the merged set has no
// inflow. In both cases the report is still returned with whatever could be
// computed.
func (a *Analyzer) Run(paths []string) (*models.AssessmentReport, error) {
	report := &models.AssessmentReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	var merged []models.Transaction
	valid := 0

	for _, path := range paths {
		table, err := statement.ReadTable(path, a.opts.Delimiter, a.logger)
		if err != nil {
			readErr := &parsererror.UnreadableTableError{FilePath: path, Err: err}
			a.logger.WithError(err).Warn("Skipping unreadable table",
				logging.Field{Key: logging.FieldFile, Value: path})
			report.Skipped = append(report.Skipped, models.SkippedTable{
				FilePath: path,
				Reason:   readErr.Error(),
			})
			continue
		}

		mapping, ok := schema.Resolve(table.Headers)
		if !ok {
			schemaErr := &parsererror.SchemaError{
				FilePath: path,
				Role:     schema.RoleDescription,
				Headers:  table.Headers,
			}
			a.logger.Warn("Skipping table with unresolvable schema",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldRole, Value: schema.RoleDescription})
			report.Skipped = append(report.Skipped, models.SkippedTable{
				FilePath: path,
				Reason:   schemaErr.Error(),
			})
			continue
		}

		a.logger.Debug("Resolved table schema",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldColumn, Value: mapping.Description})

		merged = append(merged, table.ToTransactions(mapping)...)
		valid++
	}

	if valid == 0 {
		return report, &parsererror.NoValidTablesError{Attempted: len(paths)}
	}

	return a.assess(report, merged, valid)
}

// RunTransactions assesses an already-materialized transaction set. It exists
// for callers that ingest tables themselves.
func (a *Analyzer) RunTransactions(txns []models.Transaction) (*models.AssessmentReport, error) {
	report := &models.AssessmentReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
	return a.assess(report, txns, 1)
}

// assess performs the merge/group/rank reduction and drives rule evaluation
// for each ranked counterparty.
func (a *Analyzer) assess(report *models.AssessmentReport, merged []models.Transaction, tables int) (*models.AssessmentReport, error) {
	totalCredit := decimal.Zero
	totalDebit := decimal.Zero
	for _, tx := range merged {
		totalCredit = totalCredit.Add(tx.Credit)
		totalDebit = totalDebit.Add(tx.Debit)
	}
	report.Totals = models.Totals{
		TotalCredit: totalCredit,
		TotalDebit:  totalDebit,
		Net:         totalCredit.Sub(totalDebit),
	}

	if !totalCredit.IsPositive() {
		a.logger.Warn("No inflow transactions detected",
			logging.Field{Key: logging.FieldTable, Value: tables})
		return report, &parsererror.NoInflowError{Tables: tables}
	}

	groups := a.rankCompanies(merged)
	if len(groups) > a.opts.TopN {
		groups = groups[:a.opts.TopN]
	}

	hundred := decimal.NewFromInt(100)
	for rank, g := range groups {
		sharePct := g.total.Mul(hundred).Div(totalCredit).Round(1)

		findings := a.engine.Evaluate(sharePct, g.txns)
		ruleIDs := make([]models.RuleID, 0, len(findings))
		flags := make([]string, 0, len(findings))
		for _, f := range findings {
			ruleIDs = append(ruleIDs, f.RuleID)
			flags = append(flags, f.Flag)
		}

		risk := rules.ClassifyRisk(len(flags))
		decision := a.opts.Matrix.Decide(risk, ruleIDs)

		record := models.AssessmentRecord{
			Rank:        rank + 1,
			Company:     g.company,
			TotalCredit: g.total,
			SharePct:    sharePct,
			Risk:        risk,
			RuleIDs:     ruleIDs,
			Flags:       flags,
			ActionLevel: decision.ActionLevel,
			Actions:     decision.Actions,
		}
		report.Records = append(report.Records, record)

		a.logger.Info("Assessed counterparty",
			logging.Field{Key: logging.FieldCompany, Value: g.company},
			logging.Field{Key: logging.FieldShare, Value: sharePct.String()},
			logging.Field{Key: logging.FieldRisk, Value: string(risk)})

		if risk == models.RiskHigh {
			report.HighRisk = append(report.HighRisk, models.HighRiskAlert{
				Company:     g.company,
				SharePct:    sharePct,
				ActionLevel: decision.ActionLevel,
			})
		}
	}

	return report, nil
}

// companyGroup collects one counterparty's credit transactions during the
// grouping reduction.
type companyGroup struct {
	company string
	total   decimal.Decimal
	txns    []models.Transaction
}

// rankCompanies groups credit>0 transactions by counterparty and sorts the
// groups by summed credit, descending. Ties keep first-seen order: grouping
// preserves insertion order and the sort is stable, so equal-inflow
// counterparties rank in the order they first appear in the merged set.
func (a *Analyzer) rankCompanies(merged []models.Transaction) []*companyGroup {
	index := make(map[string]*companyGroup)
	var groups []*companyGroup

	for _, tx := range merged {
		if !tx.Credit.IsPositive() {
			continue
		}
		g, ok := index[tx.Company]
		if !ok {
			g = &companyGroup{company: tx.Company, total: decimal.Zero}
			index[tx.Company] = g
			groups = append(groups, g)
		}
		g.total = g.total.Add(tx.Credit)
		g.txns = append(g.txns, tx)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})
	return groups
}
