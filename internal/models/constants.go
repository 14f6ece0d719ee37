package models

// RiskLevel classifies a counterparty's assessment outcome.
type RiskLevel string

// Risk levels, ordered from benign to severe. The level is a pure function of
// the number of fired flags: 0 is Safe, 1 is Medium, 2 or more is High.
const (
	RiskSafe   RiskLevel = "Safe"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RuleID is a stable tag naming which heuristic fired for a counterparty.
// Rule IDs drive the policy matrix in a consistent and explainable way.
type RuleID string

const (
	// RuleIncomeConcentration fires when a single counterparty supplies at
	// least the configured share of total inflow.
	RuleIncomeConcentration RuleID = "INCOME_CONCENTRATION"

	// RuleIndustryMismatch fires when a counterparty's narratives classify
	// into industries that never include the assessed business's own sector.
	RuleIndustryMismatch RuleID = "INDUSTRY_MISMATCH"

	// RuleRoundAmountPattern fires when any credit is an exact multiple of a
	// configured round divisor.
	RuleRoundAmountPattern RuleID = "ROUND_AMOUNT_PATTERN"

	// Synthetic keys for the risk-based policy entry appended to every
	// decision.
	RuleEscalateHigh  RuleID = "ESCALATE_HIGH"
	RuleMonitorMedium RuleID = "MONITOR_MEDIUM"
	RuleStandardSafe  RuleID = "STANDARD_SAFE"
)

// UnknownCounterparty is the sentinel identity for narratives that yield no
// usable tokens. It is never empty so grouping always has a key.
const UnknownCounterparty = "UNKNOWN"
