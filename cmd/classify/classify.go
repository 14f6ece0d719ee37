// Package classify provides a one-off helper to inspect how a narrative is
// interpreted: its canonical counterparty and matched industries.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/bank-analyzer/cmd/root"
	"fjacquet/bank-analyzer/internal/counterparty"
	"fjacquet/bank-analyzer/internal/industry"
	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/store"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify [narrative]",
	Short: "Show the counterparty and industries extracted from a narrative",
	Args:  cobra.MinimumNArgs(1),
	Run:   classifyFunc,
}

func classifyFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	narrative := strings.Join(args, " ")

	analysisStore := store.NewAnalysisStore(root.Cfg.Analysis.TaxonomyFile, "", logger)
	taxonomy, err := analysisStore.LoadTaxonomy()
	if err != nil {
		root.Log.Fatalf("Error loading industry taxonomy: %v", err)
	}

	company := counterparty.Extract(narrative)
	matched := industry.NewClassifier(taxonomy).Classify(narrative)

	industries := make([]string, 0, len(matched))
	for name := range matched {
		industries = append(industries, name)
	}
	sort.Strings(industries)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Narrative    : %s\n", narrative)
	fmt.Fprintf(out, "Counterparty : %s\n", company)
	if len(industries) == 0 {
		fmt.Fprintln(out, "Industries   : (none)")
	} else {
		fmt.Fprintf(out, "Industries   : %s\n", strings.Join(industries, ", "))
	}
}
