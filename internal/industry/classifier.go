// Package industry tags transaction narratives with industry categories using
// keyword substring matching against a configurable taxonomy.
package industry

import (
	"sort"
	"strings"
)

// Taxonomy maps an industry name to its lowercase keyword substrings.
// A taxonomy is read-only for the lifetime of the process and may be shared
// freely across concurrent pipeline runs.
type Taxonomy map[string][]string

// DefaultTaxonomy returns the built-in industry keyword taxonomy used when no
// override file is configured.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"food":         {"food", "cafe", "restaurant", "eatery", "bakery", "drink", "grocer", "catering"},
		"construction": {"cement", "steel", "hardware", "concrete", "construction", "builder"},
		"healthcare":   {"clinic", "hospital", "medical", "pharma", "health"},
		"logistics":    {"transport", "delivery", "freight", "courier"},
		"education":    {"school", "college", "academy", "training", "tuition"},
	}
}

// Industries returns the taxonomy's industry names in sorted order.
func (t Taxonomy) Industries() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classifier matches narratives against a taxonomy.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier builds a classifier over the given taxonomy. Keywords are
// folded to lowercase once here so per-narrative matching is a plain
// substring scan.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	folded := make(Taxonomy, len(taxonomy))
	for name, keywords := range taxonomy {
		lowered := make([]string, len(keywords))
		for i, kw := range keywords {
			lowered[i] = strings.ToLower(kw)
		}
		folded[name] = lowered
	}
	return &Classifier{taxonomy: folded}
}

// Classify returns the set of industries whose keyword set has at least one
// substring match in the narrative. A narrative may belong to zero, one, or
// several industries simultaneously; no match yields an empty set.
func (c *Classifier) Classify(narrative string) map[string]struct{} {
	matched := make(map[string]struct{})
	if narrative == "" {
		return matched
	}
	s := strings.ToLower(narrative)
	for name, keywords := range c.taxonomy {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				matched[name] = struct{}{}
				break
			}
		}
	}
	return matched
}
