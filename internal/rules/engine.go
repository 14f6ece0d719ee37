// Package rules evaluates a counterparty's transaction set against the fixed
// risk heuristics and classifies the outcome into a risk level. Evaluation is
// deterministic: the same input always produces the same findings in the same
// reporting order.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/bank-analyzer/internal/industry"
	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
)

// Finding is one fired rule: its stable identifier plus the human-readable
// flag shown in reports.
type Finding struct {
	RuleID models.RuleID
	Flag   string
}

// Engine evaluates the three inflow risk rules for one counterparty at a time.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	baseIndustry string
	threshold    decimal.Decimal
	divisors     []int64
	classifier   *industry.Classifier
	logger       logging.Logger
}

// NewEngine builds a rule engine.
//
//   - baseIndustry is the assessed business's own declared sector, the
//     reference point for the mismatch rule.
//   - thresholdPct is the inclusive concentration threshold in percent.
//   - divisors are the round-amount divisors; a credit divisible by any of
//     them fires the round-amount rule.
func NewEngine(baseIndustry string, thresholdPct decimal.Decimal, divisors []int64, classifier *industry.Classifier, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{
		baseIndustry: baseIndustry,
		threshold:    thresholdPct,
		divisors:     divisors,
		classifier:   classifier,
		logger:       logger,
	}
}

// Evaluate runs all rules over one counterparty's credit transactions and
// returns the findings in the fixed reporting order: concentration, then
// industry mismatch, then round-amount. Rules are independent; the order
// never changes which rules fire.
func (e *Engine) Evaluate(sharePct decimal.Decimal, txns []models.Transaction) []Finding {
	var findings []Finding

	if sharePct.GreaterThanOrEqual(e.threshold) {
		findings = append(findings, Finding{
			RuleID: models.RuleIncomeConcentration,
			Flag:   fmt.Sprintf("Income heavily depends on one company (>%s%%)", e.threshold.String()),
		})
	}

	if e.hasIndustryMismatch(txns) {
		findings = append(findings, Finding{
			RuleID: models.RuleIndustryMismatch,
			Flag:   "Source looks unrelated to your business industry",
		})
	}

	if e.hasRoundAmounts(txns) {
		findings = append(findings, Finding{
			RuleID: models.RuleRoundAmountPattern,
			Flag:   "Many inflows are very round numbers (possible manual adjustments)",
		})
	}

	for _, f := range findings {
		e.logger.Debug("Risk rule fired",
			logging.Field{Key: logging.FieldRule, Value: string(f.RuleID)},
			logging.Field{Key: logging.FieldShare, Value: sharePct.String()})
	}

	return findings
}

// hasIndustryMismatch reports whether any narrative classifies into at least
// one industry that never includes the base industry. A narrative matching no
// industry is indeterminate, not mismatched. Short-circuits on the first
// mismatching narrative.
func (e *Engine) hasIndustryMismatch(txns []models.Transaction) bool {
	for _, tx := range txns {
		matched := e.classifier.Classify(tx.Description)
		if len(matched) == 0 {
			continue
		}
		if _, ok := matched[e.baseIndustry]; !ok {
			return true
		}
	}
	return false
}

// hasRoundAmounts reports whether any positive credit is an exact multiple of
// a configured divisor. The comparison runs on decimals, not floats, so
// fractional amounts never misclassify.
func (e *Engine) hasRoundAmounts(txns []models.Transaction) bool {
	for _, tx := range txns {
		if !tx.Credit.IsPositive() {
			continue
		}
		for _, div := range e.divisors {
			if tx.Credit.Mod(decimal.NewFromInt(div)).IsZero() {
				return true
			}
		}
	}
	return false
}

// ClassifyRisk maps the number of fired flags to a risk level. No other
// classification paths exist: 0 is Safe, 1 is Medium, 2 or more is High.
func ClassifyRisk(flagCount int) models.RiskLevel {
	switch {
	case flagCount == 0:
		return models.RiskSafe
	case flagCount == 1:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
