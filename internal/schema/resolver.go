// Package schema resolves the arbitrary column names of a statement export
// into the canonical roles the pipeline needs: description, credit, and debit.
// Bank exports carry no fixed schema, so resolution is a priority-ordered walk
// over keyword criteria rather than exact header matching.
package schema

import "strings"

// Canonical column roles.
const (
	RoleDescription = "description"
	RoleCredit      = "credit"
	RoleDebit       = "debit"
)

// Criteria is one keyword rule for matching a header to a role. Matching is
// case-insensitive substring containment over the trimmed header name.
// ExcludeAny removes otherwise-matching candidates; it stops a generic "in"
// or "out" from capturing a date or narration column.
type Criteria struct {
	IncludeAny []string
	IncludeAll []string
	ExcludeAny []string
}

// Matches reports whether a single lowercased header satisfies the criteria.
func (c Criteria) Matches(header string) bool {
	for _, kw := range c.ExcludeAny {
		if strings.Contains(header, kw) {
			return false
		}
	}
	for _, kw := range c.IncludeAll {
		if !strings.Contains(header, kw) {
			return false
		}
	}
	if len(c.IncludeAny) == 0 {
		return len(c.IncludeAll) > 0
	}
	for _, kw := range c.IncludeAny {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// FindColumn returns the first header satisfying the criteria, preserving the
// original (untrimmed, unfolded) header name for row lookup.
func FindColumn(headers []string, c Criteria) (string, bool) {
	for _, orig := range headers {
		if c.Matches(strings.ToLower(strings.TrimSpace(orig))) {
			return orig, true
		}
	}
	return "", false
}

// FindFirst walks a priority-ordered list of criteria and returns the first
// column matched by the highest-priority criterion that matches anything.
func FindFirst(headers []string, chain []Criteria) (string, bool) {
	for _, c := range chain {
		if col, ok := FindColumn(headers, c); ok {
			return col, true
		}
	}
	return "", false
}

// Priority-ordered resolution chains per role. Order matters: a header named
// "Transaction Date" must not win over "Description", and the bare "cr"/"dr"
// and "in"/"out" fallbacks only apply once the specific names have failed.
var (
	descriptionChain = []Criteria{
		{IncludeAny: []string{"description"}},
		{IncludeAny: []string{"desc"}},
		{IncludeAny: []string{"transaction", "details"}},
		{IncludeAny: []string{"narration"}},
		{IncludeAny: []string{"particular"}},
	}

	creditChain = []Criteria{
		{IncludeAny: []string{"credit"}},
		{IncludeAny: []string{"deposit"}},
		{IncludeAny: []string{"cr"}, ExcludeAny: []string{"description", "desc"}},
		{IncludeAny: []string{"inflow"}},
		{IncludeAny: []string{"in"}, ExcludeAny: []string{"date", "desc", "description", "transaction"}},
	}

	debitChain = []Criteria{
		{IncludeAny: []string{"debit"}},
		{IncludeAny: []string{"withdraw"}},
		{IncludeAny: []string{"dr"}, ExcludeAny: []string{"description", "desc"}},
		{IncludeAny: []string{"outflow"}},
		{IncludeAny: []string{"out"}, ExcludeAny: []string{"date", "desc", "description", "transaction"}},
	}
)

// Mapping names the resolved column per role. Credit or Debit may be empty,
// in which case that side defaults to an all-zero column. An empty
// Description means the table cannot be processed.
type Mapping struct {
	Description string
	Credit      string
	Debit       string
}

// Resolve maps a table's headers onto the canonical roles. The returned bool
// is false when no description column could be found; credit and debit are
// best-effort and may remain empty.
func Resolve(headers []string) (Mapping, bool) {
	var m Mapping
	desc, ok := FindFirst(headers, descriptionChain)
	if !ok {
		return m, false
	}
	m.Description = desc
	m.Credit, _ = FindFirst(headers, creditChain)
	m.Debit, _ = FindFirst(headers, debitChain)
	return m, true
}
