package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file_path"
	FieldTable     = "table"
	FieldCompany   = "company"
	FieldIndustry  = "industry"
	FieldRule      = "rule"
	FieldRisk      = "risk"
	FieldShare     = "share_pct"
	FieldCount     = "count"
	FieldRows      = "rows"
	FieldColumn    = "column"
	FieldRole      = "role"
	FieldError     = "error"
	FieldDelimiter = "delimiter"
	FieldReportID  = "report_id"
	FieldFormat    = "format"
)
