package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/bank-analyzer/internal/models"
)

// Renderer writes the terminal views of an assessment report: the KPI totals,
// the ranked table, per-company alert blocks, and the high-risk summary.
type Renderer struct {
	// Currency prefixes monetary values, e.g. "RM".
	Currency string
}

// NewRenderer creates a renderer with the given currency label.
func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = "RM"
	}
	return &Renderer{Currency: currency}
}

func (r *Renderer) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", r.Currency, d.StringFixed(2))
}

// RenderTotals writes the grand-total KPI lines.
func (r *Renderer) RenderTotals(w io.Writer, rep *models.AssessmentReport) {
	fmt.Fprintf(w, "Total Inflow  : %s\n", r.money(rep.Totals.TotalCredit))
	fmt.Fprintf(w, "Total Outflow : %s\n", r.money(rep.Totals.TotalDebit))
	fmt.Fprintf(w, "Net Position  : %s\n", r.money(rep.Totals.Net))
}

// RenderTable writes the ranked counterparty table.
func (r *Renderer) RenderTable(w io.Writer, rep *models.AssessmentReport) {
	if len(rep.Records) == 0 {
		fmt.Fprintln(w, "No ranked inflow sources.")
		return
	}
	fmt.Fprintf(w, "Top %d Inflow Companies - Risk Assessment\n", len(rep.Records))
	fmt.Fprintf(w, "%-5s %-36s %16s %7s %-7s %s\n",
		"Rank", "Company", "Inflow", "%", "Risk", "Reason")
	for _, rec := range rep.Records {
		reason := models.RiskRecord{Flags: rec.Flags}.Reason()
		fmt.Fprintf(w, "%-5d %-36s %16s %6s%% %-7s %s\n",
			rec.Rank, rec.Company, r.money(rec.TotalCredit),
			rec.SharePct.String(), rec.Risk, reason)
	}
}

// RenderAlerts writes one alert block per ranked counterparty.
func (r *Renderer) RenderAlerts(w io.Writer, rep *models.AssessmentReport) {
	divider := strings.Repeat("-", 58)
	for _, rec := range rep.Records {
		reason := models.RiskRecord{Flags: rec.Flags}.Reason()
		actions := models.PolicyDecision{Actions: rec.Actions}.ActionsText()

		fmt.Fprintf(w, "%s RISK\n", strings.ToUpper(string(rec.Risk)))
		fmt.Fprintf(w, "Company      : %s\n", rec.Company)
		fmt.Fprintf(w, "Exposure (%%) : %s%%\n", rec.SharePct.String())
		fmt.Fprintf(w, "Reason       : %s\n", reason)
		fmt.Fprintf(w, "Action Level : %s\n", rec.ActionLevel)
		fmt.Fprintf(w, "Actions      : %s\n", actions)
		fmt.Fprintf(w, "%s\n\n", divider)
	}
}

// RenderHighRiskSummary writes the attention-worthy summary for high-risk
// counterparties, if any.
func (r *Renderer) RenderHighRiskSummary(w io.Writer, rep *models.AssessmentReport) {
	if len(rep.HighRisk) == 0 {
		return
	}
	fmt.Fprintln(w, "One or more HIGH RISK inflow sources were detected.")
	fmt.Fprintln(w, "Recommended: Escalate for enhanced due diligence before proceeding.")
	fmt.Fprintln(w, "High Risk Summary:")
	for _, alert := range rep.HighRisk {
		fmt.Fprintf(w, "- %s | Exposure: %s%% | Action Level: %s\n",
			alert.Company, alert.SharePct.String(), alert.ActionLevel)
	}
}

// RenderSkipped writes one line per skipped input table.
func (r *Renderer) RenderSkipped(w io.Writer, rep *models.AssessmentReport) {
	for _, skipped := range rep.Skipped {
		fmt.Fprintf(w, "Skipped: %s (%s)\n", skipped.FilePath, skipped.Reason)
	}
}
