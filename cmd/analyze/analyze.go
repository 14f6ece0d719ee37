// Package analyze runs the full assessment pipeline over statement exports.
package analyze

import (
	"errors"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/bank-analyzer/cmd/root"
	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/parsererror"
	"fjacquet/bank-analyzer/internal/pipeline"
	"fjacquet/bank-analyzer/internal/report"
	"fjacquet/bank-analyzer/internal/store"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Assess inbound-fund risk from one or more statement exports",
	Long: `Read the given statement files, merge their transactions, rank the top
inflow counterparties, and print KPI totals, the ranked risk table, per-company
alert blocks, and a high-risk summary. Optionally writes a JSON/XML report
and a CSV of the ranked records.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	inputs := append(root.SharedFlags.Inputs, args...)
	if len(inputs) == 0 {
		root.Log.Fatal("No input files. Pass statement files with --input or as arguments.")
	}

	cfg := root.Cfg

	analysisStore := store.NewAnalysisStore(cfg.Analysis.TaxonomyFile, cfg.Analysis.PolicyFile, logger)
	taxonomy, err := analysisStore.LoadTaxonomy()
	if err != nil {
		root.Log.Fatalf("Error loading industry taxonomy: %v", err)
	}
	matrix, err := analysisStore.LoadPolicyMatrix()
	if err != nil {
		root.Log.Fatalf("Error loading policy matrix: %v", err)
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		BaseIndustry:              cfg.Analysis.BaseIndustry,
		TopN:                      cfg.Analysis.TopN,
		ConcentrationThresholdPct: decimal.NewFromFloat(cfg.Analysis.ConcentrationThresholdPct),
		RoundAmountDivisors:       cfg.Analysis.RoundAmountDivisors,
		Delimiter:                 cfg.Delimiter(),
		Taxonomy:                  taxonomy,
		Matrix:                    matrix,
	}, logger)

	rep, runErr := analyzer.Run(inputs)

	renderer := report.NewRenderer(cfg.Analysis.Currency)
	out := cmd.OutOrStdout()

	renderer.RenderSkipped(out, rep)

	var noTables *parsererror.NoValidTablesError
	if errors.As(runErr, &noTables) {
		root.Log.Error("No valid data loaded. Please check the statement format.")
		os.Exit(1)
	}

	renderer.RenderTotals(out, rep)

	var noInflow *parsererror.NoInflowError
	if errors.As(runErr, &noInflow) {
		root.Log.Warn("No inflow transactions detected (credit = 0).")
		return
	}

	renderer.RenderTable(out, rep)
	renderer.RenderAlerts(out, rep)
	renderer.RenderHighRiskSummary(out, rep)

	if root.SharedFlags.Output != "" {
		generator := report.NewGenerator(logger)
		if err := generator.WriteFile(rep, root.SharedFlags.Format, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing report: %v", err)
		}
	}

	if root.SharedFlags.RankedCSV != "" {
		if err := report.WriteRankedCSV(rep, root.SharedFlags.RankedCSV, cfg.Delimiter(), logger); err != nil {
			root.Log.Fatalf("Error writing ranked CSV: %v", err)
		}
	}

	root.Log.Info("Analysis completed successfully!")
}
