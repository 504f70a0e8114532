package batch

import "fmt"

// Required declares a column that must be non-empty, with the code raised when it is not.
type Required struct {
	Column string
	Code   string
}

// Check is a format or cross-field rule. Checks run whether or not the
// required fields are present and report through issues.
type Check func(row Row, issues *Issues)

// DuplicatePolicy decides how a repeated natural key inside one file is reported.
// The first occurrence is never flagged.
type DuplicatePolicy struct {
	Code     string
	Label    string
	Blocking bool
}

// Schema is the declarative parsing configuration of one entity type.
type Schema[T any] struct {
	Entity    string
	Columns   []string
	Required  []Required
	Checks    []Check
	Key       func(row Row) string
	Duplicate DuplicatePolicy
	Build     func(row Row) T
}

// Record is a validated, typed projection of one row.
type Record[T any] struct {
	RowNumber int
	Key       string
	Value     T
}

// Parsed holds the records that passed validation and the report for the whole sheet.
type Parsed[T any] struct {
	Records []Record[T]
	Report  Report
}

// Parse validates every row of sheet against s. Rows that raise no blocking
// error become records, in input order. Parse has no side effects.
func Parse[T any](s Schema[T], sheet Sheet) Parsed[T] {
	out := Parsed[T]{Report: Report{Errors: []ValidationError{}, Warnings: []ValidationError{}}}
	if len(sheet.Header) == 0 {
		return FileFailure[T](FileEmpty())
	}

	firstSeen := make(map[string]int)
	for _, row := range sheet.rows() {
		if row.blank() {
			continue
		}
		out.Report.TotalRows++

		issues := Issues{row: row.Number}
		for _, req := range s.Required {
			if row.Get(req.Column) == "" {
				issues.Error(req.Code, req.Column, "%s is required", req.Column)
			}
		}
		for _, check := range s.Checks {
			check(row, &issues)
		}

		var key string
		if s.Key != nil {
			key = s.Key(row)
		}
		if key != "" {
			if first, seen := firstSeen[key]; seen {
				message := fmt.Sprintf("duplicate %s %q, first seen on row %d", s.Duplicate.Label, key, first)
				if s.Duplicate.Blocking {
					issues.Error(s.Duplicate.Code, s.Duplicate.Label, "%s", message)
				} else {
					issues.Warn(s.Duplicate.Code, s.Duplicate.Label, "%s", message)
				}
			} else {
				firstSeen[key] = row.Number
			}
		}

		out.Report.Errors = append(out.Report.Errors, issues.errors...)
		out.Report.Warnings = append(out.Report.Warnings, issues.warnings...)
		if len(issues.errors) > 0 {
			continue
		}

		out.Records = append(out.Records, Record[T]{RowNumber: row.Number, Key: key, Value: s.Build(row)})
		out.Report.ValidRows++
	}

	if out.Report.TotalRows == 0 {
		return FileFailure[T](FileEmpty())
	}
	return out
}

// FileFailure builds the parse outcome for an upload that never reached row validation.
func FileFailure[T any](err ValidationError) Parsed[T] {
	return Parsed[T]{Report: Report{
		FileError: &err,
		Errors:    []ValidationError{},
		Warnings:  []ValidationError{},
	}}
}
