package batch

import (
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("import run not found")

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunRejected  RunStatus = "rejected"
	RunFailed    RunStatus = "failed"
)

// Run is the audit record of one committed import.
type Run struct {
	ID           string
	Entity       string
	EnterpriseID int64
	ActorID      int64
	FileName     string
	Status       RunStatus
	Report       Report
	Result       Result
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RunError is one persisted finding of a run, either a validation error,
// a validation warning or a persistence error.
type RunError struct {
	Kind       string
	RowNumber  int
	Code       string
	Field      string
	NaturalKey string
	Message    string
}

const (
	RunErrorValidation  = "validation"
	RunErrorWarning     = "warning"
	RunErrorPersistence = "persistence"
)

// Findings flattens the report and result of a run into persisted findings.
func (r Run) Findings() []RunError {
	out := make([]RunError, 0, len(r.Report.Errors)+len(r.Report.Warnings)+len(r.Result.Errors)+1)
	if r.Report.FileError != nil {
		out = append(out, RunError{Kind: RunErrorValidation, Code: r.Report.FileError.Code, Message: r.Report.FileError.Message})
	}
	for _, e := range r.Report.Errors {
		out = append(out, RunError{Kind: RunErrorValidation, RowNumber: e.RowNumber, Code: e.Code, Field: e.Field, Message: e.Message})
	}
	for _, w := range r.Report.Warnings {
		out = append(out, RunError{Kind: RunErrorWarning, RowNumber: w.RowNumber, Code: w.Code, Field: w.Field, Message: w.Message})
	}
	for _, e := range r.Result.Errors {
		out = append(out, RunError{Kind: RunErrorPersistence, RowNumber: e.RowNumber, NaturalKey: e.NaturalKey, Message: e.Error})
	}
	return out
}
