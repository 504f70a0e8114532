package imports

import "errors"

var (
	ErrUnknownEntity     = errors.New("unknown import entity")
	ErrInvalidEnterprise = errors.New("invalid enterprise id")
	ErrImportInProgress  = errors.New("an import for this entity and enterprise is already running")
	ErrRunImport         = errors.New("failed to run import")
	ErrBuildSpreadsheet  = errors.New("failed to build spreadsheet")
	ErrInvalidRunID      = errors.New("invalid import run id")
	ErrImportRunNotFound = errors.New("import run not found")
	ErrGetImportRun      = errors.New("failed to get import run")
)
