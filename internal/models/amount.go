package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount converts heterogeneous monetary text into a decimal value.
// It strips thousands-separator commas and surrounding whitespace, and
// interprets a parenthesized value as a negative magnitude. Blank or
// malformed input yields zero. Amount errors are common in bank exports and
// must never abort processing, so this is a total function: it never fails.
func NormalizeAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return decimal.Zero
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		d, err := decimal.NewFromString(inner)
		if err != nil {
			return decimal.Zero
		}
		return d.Neg()
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
