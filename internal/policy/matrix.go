// Package policy maps fired rule identifiers and an overall risk level to a
// single prioritized action recommendation. The mapping is table-driven so
// underwriting teams can review and override it without touching rule code.
package policy

import "fjacquet/bank-analyzer/internal/models"

// Entry is one policy-matrix row: the action level label and the recommended
// action text for a rule identifier.
type Entry struct {
	ActionLevel string `yaml:"action_level" json:"action_level"`
	Action      string `yaml:"action" json:"action"`
}

// Matrix maps rule identifiers, plus the synthetic risk-escalation keys, to
// policy entries. A Matrix is read-only after construction.
type Matrix map[models.RuleID]Entry

// Action level labels, from most to least severe.
const (
	LevelEscalate      = "Escalate"
	LevelCashFlowNorm  = "Cash Flow Normalization"
	LevelEnhanced      = "Enhanced Review"
	LevelClarification = "Clarification Required"
	LevelMonitor       = "Monitor"
	LevelStandard      = "Standard"
)

// levelPriority is the fixed total order over action levels. Higher wins when
// folding a decision's entries into the single action level. Unknown labels
// rank as Standard.
var levelPriority = map[string]int{
	LevelEscalate:      5,
	LevelCashFlowNorm:  4,
	LevelEnhanced:      3,
	LevelClarification: 2,
	LevelMonitor:       1,
	LevelStandard:      0,
}

// DefaultMatrix returns the built-in policy matrix used when no override file
// is configured.
func DefaultMatrix() Matrix {
	return Matrix{
		models.RuleIncomeConcentration: {
			ActionLevel: LevelEnhanced,
			Action: "Assess income concentration risk and apply a haircut/discount to this income source " +
				"when calculating sustainable income and affordability.",
		},
		models.RuleIndustryMismatch: {
			ActionLevel: LevelClarification,
			Action: "Request clarification and supporting documents (e.g., invoices, contracts, delivery proof) " +
				"to verify whether inflows represent genuine operating revenue. Consider excluding non-core inflows.",
		},
		models.RuleRoundAmountPattern: {
			ActionLevel: LevelCashFlowNorm,
			Action: "Perform cash flow normalization by excluding unusually round or repetitive transactions. " +
				"Review for potential fund cycling or related-party transfers.",
		},
		models.RuleEscalateHigh: {
			ActionLevel: LevelEscalate,
			Action:      "Escalate to Credit Risk / Compliance for enhanced due diligence before proceeding with any lending decision.",
		},
		models.RuleMonitorMedium: {
			ActionLevel: LevelMonitor,
			Action:      "Obtain additional explanation and monitor closely before fully recognizing this income as sustainable.",
		},
		models.RuleStandardSafe: {
			ActionLevel: LevelStandard,
			Action:      "No immediate action required. Continue standard monitoring.",
		},
	}
}

// riskEntryKey returns the synthetic matrix key appended for the overall risk
// level.
func riskEntryKey(risk models.RiskLevel) models.RuleID {
	switch risk {
	case models.RiskHigh:
		return models.RuleEscalateHigh
	case models.RiskMedium:
		return models.RuleMonitorMedium
	default:
		return models.RuleStandardSafe
	}
}

// Decide builds the policy decision for a counterparty from its overall risk
// level and fired rule identifiers (in rule reporting order).
//
// Action texts are collected in first-seen order with duplicates suppressed,
// even when two rules map to identical text. The action level folds to the
// highest-priority level among the collected entries; ties keep the
// first-seen maximal level, and the initial value is Standard. A High-risk,
// multi-flag counterparty therefore always surfaces Escalate regardless of
// which specific rules fired.
func (m Matrix) Decide(risk models.RiskLevel, ruleIDs []models.RuleID) models.PolicyDecision {
	var entries []Entry
	for _, rid := range ruleIDs {
		if entry, ok := m[rid]; ok {
			entries = append(entries, entry)
		}
	}
	if entry, ok := m[riskEntryKey(risk)]; ok {
		entries = append(entries, entry)
	}

	level := LevelStandard
	var actions []string
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if _, dup := seen[entry.Action]; !dup {
			actions = append(actions, entry.Action)
			seen[entry.Action] = struct{}{}
		}
		if levelPriority[entry.ActionLevel] > levelPriority[level] {
			level = entry.ActionLevel
		}
	}

	return models.PolicyDecision{
		ActionLevel: level,
		Actions:     actions,
	}
}
