// Package counterparty derives a canonical company identity from a free-text
// transaction narrative, so that repeated payments from the same payer collapse
// to one grouping key.
package counterparty

import (
	"regexp"
	"strings"

	"fjacquet/bank-analyzer/internal/models"
)

// entityPattern matches a token run ending in a business-entity designator.
// Letters, digits, spaces, ampersands, periods, and hyphens are allowed in the
// name itself.
var entityPattern = regexp.MustCompile(
	`(?i)([A-Za-z0-9 &.\-]+(?:SDN BHD|BERHAD|PLT|ENTERPRISE|TRADING|HOLDINGS|CAFE|CENTRE|SENDIRIAN))`)

// nonAlnum replaces everything outside [A-Za-z0-9 ] for the fallback path.
var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// whitespaceRun collapses internal whitespace in matched entity names.
var whitespaceRun = regexp.MustCompile(`\s+`)

// fallbackTokens is how many leading tokens the unstructured fingerprint keeps.
const fallbackTokens = 4

// leadinTokens are transfer-phrase words that precede the actual payer name in
// narratives like "PAYMENT FROM ACME TRADING SDN BHD". They are trimmed from
// the front of an entity-suffix match so the identity is the business name,
// not the phrasing around it.
var leadinTokens = map[string]struct{}{
	"PAYMENT":  {},
	"PAYMENTS": {},
	"FROM":     {},
	"TO":       {},
	"TRANSFER": {},
	"TRF":      {},
	"RECEIVED": {},
	"BY":       {},
	"VIA":      {},
	"INWARD":   {},
}

// Extract returns the canonical counterparty identity for a narrative.
//
// Structured business names (ending in a legal-entity suffix) are preferred
// verbatim, whitespace-collapsed and uppercased, with transfer-phrase lead-in
// words trimmed. Unstructured narratives degrade to a truncated fingerprint:
// the first four alphanumeric tokens, uppercased. A narrative with no tokens
// at all maps to the UNKNOWN sentinel.
func Extract(narrative string) string {
	if m := entityPattern.FindStringSubmatch(narrative); m != nil {
		name := whitespaceRun.ReplaceAllString(m[1], " ")
		name = strings.ToUpper(strings.TrimSpace(name))
		return trimLeadin(name)
	}

	parts := strings.Fields(nonAlnum.ReplaceAllString(narrative, " "))
	if len(parts) == 0 {
		return models.UnknownCounterparty
	}
	if len(parts) > fallbackTokens {
		parts = parts[:fallbackTokens]
	}
	return strings.ToUpper(strings.Join(parts, " "))
}

// trimLeadin drops transfer-phrase tokens from the front of a matched entity
// name. At least one token is always kept.
func trimLeadin(name string) string {
	tokens := strings.Fields(name)
	for len(tokens) > 1 {
		if _, ok := leadinTokens[tokens[0]]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}
