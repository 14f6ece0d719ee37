// Package models defines the canonical data model shared by the ingestion,
// rule-evaluation, and reporting layers.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one statement row after column resolution, amount
// normalization, and counterparty extraction. It is immutable once built.
// Credit and Debit are stored as non-negative magnitudes; the sign of the
// source text is resolved at parse time.
type Transaction struct {
	Description string          `json:"description"`
	Credit      decimal.Decimal `json:"credit"`
	Debit       decimal.Decimal `json:"debit"`
	Company     string          `json:"company"`
	Source      string          `json:"source,omitempty"`
}

// CompanyAggregate is one counterparty's summed inflow over the merged
// transaction set, restricted to credit>0 rows.
type CompanyAggregate struct {
	Company     string          `json:"company"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	// SharePct is the counterparty's share of the grand total inflow,
	// in percent, rounded to one decimal place.
	SharePct decimal.Decimal `json:"share_pct"`
}

// RiskRecord holds the rule-evaluation outcome for one counterparty.
type RiskRecord struct {
	Company string    `json:"company"`
	RuleIDs []RuleID  `json:"rule_ids"`
	Flags   []string  `json:"flags"`
	Risk    RiskLevel `json:"risk"`
}

// Reason joins the flags into the single human-readable explanation shown in
// the ranked table.
func (r RiskRecord) Reason() string {
	if len(r.Flags) == 0 {
		return "No unusual patterns detected"
	}
	return strings.Join(r.Flags, "; ")
}

// PolicyDecision is the prioritized, deduplicated recommendation derived from
// a risk record.
type PolicyDecision struct {
	ActionLevel string   `json:"action_level"`
	Actions     []string `json:"actions"`
}

// ActionsText joins the distinct action texts in first-seen order.
func (d PolicyDecision) ActionsText() string {
	return strings.Join(d.Actions, " ")
}

// Totals carries the grand totals over all merged transactions.
type Totals struct {
	TotalCredit decimal.Decimal `json:"total_credit" xml:"TotalCredit"`
	TotalDebit  decimal.Decimal `json:"total_debit" xml:"TotalDebit"`
	Net         decimal.Decimal `json:"net" xml:"Net"`
}

// AssessmentRecord is one ranked counterparty with its aggregate, risk, and
// policy outcome. Rank 1 is the highest inflow.
type AssessmentRecord struct {
	Rank        int             `json:"rank" xml:"Rank"`
	Company     string          `json:"company" xml:"Company"`
	TotalCredit decimal.Decimal `json:"total_credit" xml:"TotalCredit"`
	SharePct    decimal.Decimal `json:"share_pct" xml:"SharePct"`
	Risk        RiskLevel       `json:"risk" xml:"Risk"`
	RuleIDs     []RuleID        `json:"rule_ids" xml:"RuleIDs>RuleID"`
	Flags       []string        `json:"flags" xml:"Flags>Flag"`
	ActionLevel string          `json:"action_level" xml:"ActionLevel"`
	Actions     []string        `json:"actions" xml:"Actions>Action"`
}

// HighRiskAlert is the attention-worthy subset surfaced for any record with
// risk=High, used to drive external notification.
type HighRiskAlert struct {
	Company     string          `json:"company" xml:"Company"`
	SharePct    decimal.Decimal `json:"share_pct" xml:"SharePct"`
	ActionLevel string          `json:"action_level" xml:"ActionLevel"`
}

// ChartSlice is one wedge of the inflow-share chart handed to the rendering
// layer.
type ChartSlice struct {
	Company     string          `json:"company" xml:"Company"`
	TotalCredit decimal.Decimal `json:"total_credit" xml:"TotalCredit"`
	SharePct    decimal.Decimal `json:"share_pct" xml:"SharePct"`
}

// SkippedTable records one input file that failed to load or resolve.
type SkippedTable struct {
	FilePath string `json:"file_path" xml:"FilePath"`
	Reason   string `json:"reason" xml:"Reason"`
}

// AssessmentReport is the complete output of one pipeline run.
type AssessmentReport struct {
	ID          string             `json:"id" xml:"ID"`
	GeneratedAt time.Time          `json:"generated_at" xml:"GeneratedAt"`
	Totals      Totals             `json:"totals" xml:"Totals"`
	Records     []AssessmentRecord `json:"records" xml:"Records>Record"`
	HighRisk    []HighRiskAlert    `json:"high_risk,omitempty" xml:"HighRisk>Alert,omitempty"`
	Skipped     []SkippedTable     `json:"skipped_tables,omitempty" xml:"SkippedTables>Table,omitempty"`
}

// ChartData returns the ranked set's (company, total_credit, share_pct)
// triples for chart rendering.
func (r *AssessmentReport) ChartData() []ChartSlice {
	slices := make([]ChartSlice, 0, len(r.Records))
	for _, rec := range r.Records {
		slices = append(slices, ChartSlice{
			Company:     rec.Company,
			TotalCredit: rec.TotalCredit,
			SharePct:    rec.SharePct,
		})
	}
	return slices
}
