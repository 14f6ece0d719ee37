// Package statement reads bank-statement exports into raw tables and turns
// resolved rows into canonical transactions. CSV and XLSX exports are
// supported; neither format carries a fixed schema, so column meaning is
// resolved separately by the schema package.
package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/bank-analyzer/internal/counterparty"
	"fjacquet/bank-analyzer/internal/models"
	"fjacquet/bank-analyzer/internal/schema"
)

// RawTable is one input table: a header row plus data rows, all as text.
// Rows are never mutated after the read; they are discarded once transformed
// into transactions.
type RawTable struct {
	Source  string
	Headers []string
	Rows    [][]string

	index map[string]int
}

// newRawTable builds the table and its header index. Header names are
// trimmed, matching how exports pad column titles.
func newRawTable(source string, headers []string, rows [][]string) *RawTable {
	trimmed := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
		if _, exists := index[trimmed[i]]; !exists {
			index[trimmed[i]] = i
		}
	}
	return &RawTable{
		Source:  source,
		Headers: trimmed,
		Rows:    rows,
		index:   index,
	}
}

// Cell returns the value of the named column in the given row, or "" when the
// column is unknown or the row is short. Exports routinely emit ragged rows;
// a missing cell is treated as blank, not an error.
func (t *RawTable) Cell(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ToTransactions applies amount normalization and counterparty extraction to
// every row of a column-resolved table. A missing credit or debit column
// defaults that side to zero rather than failing the table.
//
// Stored credit and debit are never negative: a parenthesized (negative)
// value in one column is booked as a positive magnitude in the opposite
// bucket, so sign is fully resolved at parse time.
func (t *RawTable) ToTransactions(mapping schema.Mapping) []models.Transaction {
	txns := make([]models.Transaction, 0, len(t.Rows))
	for _, row := range t.Rows {
		desc := strings.TrimSpace(t.Cell(row, mapping.Description))

		var rawCredit, rawDebit decimal.Decimal
		if mapping.Credit != "" {
			rawCredit = models.NormalizeAmount(t.Cell(row, mapping.Credit))
		}
		if mapping.Debit != "" {
			rawDebit = models.NormalizeAmount(t.Cell(row, mapping.Debit))
		}

		if desc == "" && rawCredit.IsZero() && rawDebit.IsZero() {
			continue
		}

		credit := positivePart(rawCredit).Add(negativePart(rawDebit))
		debit := positivePart(rawDebit).Add(negativePart(rawCredit))

		txns = append(txns, models.Transaction{
			Description: desc,
			Credit:      credit,
			Debit:       debit,
			Company:     counterparty.Extract(desc),
			Source:      t.Source,
		})
	}
	return txns
}

func positivePart(d decimal.Decimal) decimal.Decimal {
	if d.IsPositive() {
		return d
	}
	return decimal.Zero
}

func negativePart(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return d.Neg()
	}
	return decimal.Zero
}
