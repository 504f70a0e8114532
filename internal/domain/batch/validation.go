package batch

import "fmt"

// CodeFile is the file-level error code for an unreadable or empty upload.
const CodeFile = "ERR-FILE-001"

// ValidationError is a single finding raised while parsing an upload. It is used
// for both blocking errors and non-blocking warnings.
type ValidationError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RowNumber int    `json:"rowNumber"`
	Field     string `json:"field,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s: %s", e.RowNumber, e.Code, e.Message)
	}
	return fmt.Sprintf("row %d: %s: %s: %s", e.RowNumber, e.Code, e.Field, e.Message)
}

// FileEmpty is the file-level error for a sheet without a header or data rows.
func FileEmpty() ValidationError {
	return ValidationError{Code: CodeFile, Message: "the uploaded sheet contains no data rows"}
}

// FileUnreadable is the file-level error for bytes that are not a readable workbook.
func FileUnreadable(err error) ValidationError {
	return ValidationError{Code: CodeFile, Message: fmt.Sprintf("the uploaded file could not be read: %v", err)}
}

// Report is the outcome of validating an upload. It never depends on the store.
type Report struct {
	FileError *ValidationError  `json:"fileError,omitempty"`
	TotalRows int               `json:"totalRows"`
	ValidRows int               `json:"validRows"`
	Errors    []ValidationError `json:"errors"`
	Warnings  []ValidationError `json:"warnings"`
}

// OK reports whether every non-blank row can be imported.
func (r Report) OK() bool {
	return r.FileError == nil && len(r.Errors) == 0
}

// Issues collects the errors and warnings raised against one row.
type Issues struct {
	row      int
	errors   []ValidationError
	warnings []ValidationError
}

// Error records a blocking finding for field.
func (is *Issues) Error(code, field, format string, args ...any) {
	is.errors = append(is.errors, ValidationError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		RowNumber: is.row,
		Field:     field,
	})
}

// Warn records a non-blocking finding for field.
func (is *Issues) Warn(code, field, format string, args ...any) {
	is.warnings = append(is.warnings, ValidationError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		RowNumber: is.row,
		Field:     field,
	})
}
