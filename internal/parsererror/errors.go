// Package parsererror defines the typed errors surfaced by statement ingestion
// and aggregation. Every condition here is reportable, not fatal: the pipeline
// keeps running on the remaining data.
package parsererror

import "fmt"

// UnreadableTableError represents a file that could not be parsed as tabular
// data at all.
type UnreadableTableError struct {
	FilePath string
	Err      error
}

func (e *UnreadableTableError) Error() string {
	return fmt.Sprintf("unreadable table '%s': %v", e.FilePath, e.Err)
}

func (e *UnreadableTableError) Unwrap() error {
	return e.Err
}

// SchemaError represents a table whose columns could not be resolved into the
// canonical roles. Tables without a recognizable description column are
// skipped with this error.
type SchemaError struct {
	FilePath string
	Role     string
	Headers  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unresolvable schema in '%s': no column matches role '%s' among %v",
		e.FilePath, e.Role, e.Headers)
}

// NoInflowError reports that the merged transaction set contains no positive
// credit amounts, so no ranking can be produced.
type NoInflowError struct {
	Tables int
}

func (e *NoInflowError) Error() string {
	return fmt.Sprintf("no inflow transactions detected across %d table(s)", e.Tables)
}

// NoValidTablesError reports that every input table failed to load or resolve.
type NoValidTablesError struct {
	Attempted int
}

func (e *NoValidTablesError) Error() string {
	return fmt.Sprintf("no valid data loaded from %d input file(s)", e.Attempted)
}
