package imports

import (
	"context"
	"fmt"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

type ValidateImportInput struct {
	Entity  string
	Content []byte
	// AsSpreadsheet also renders the report as a workbook.
	AsSpreadsheet bool
}

type ValidateImportOutput struct {
	Entity      string       `json:"entity"`
	Report      batch.Report `json:"report"`
	Spreadsheet []byte       `json:"-"`
}

// ValidateImport runs the parse phase only. It is side-effect free and can be
// repeated before the caller commits to an import.
type ValidateImport interface {
	Execute(ctx context.Context, in ValidateImportInput) (ValidateImportOutput, error)
}

type validateImport struct {
	registry *Registry
	writer   SpreadsheetWriter
}

func NewValidateImport(registry *Registry, writer SpreadsheetWriter) ValidateImport {
	return &validateImport{registry: registry, writer: writer}
}

func (uc *validateImport) Execute(ctx context.Context, in ValidateImportInput) (ValidateImportOutput, error) {
	importer, err := uc.registry.Lookup(in.Entity)
	if err != nil {
		return ValidateImportOutput{}, err
	}

	out := ValidateImportOutput{Entity: importer.Entity(), Report: importer.Validate(in.Content)}
	if !in.AsSpreadsheet {
		return out, nil
	}

	out.Spreadsheet, err = uc.writer.Report(out.Entity, out.Report)
	if err != nil {
		return ValidateImportOutput{}, fmt.Errorf("%w: %v", ErrBuildSpreadsheet, err)
	}
	return out, nil
}
