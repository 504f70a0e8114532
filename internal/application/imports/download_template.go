package imports

import (
	"context"
	"fmt"
)

type DownloadTemplateInput struct {
	Entity string
}

type DownloadTemplateOutput struct {
	FileName string
	Content  []byte
}

type DownloadTemplate interface {
	Execute(ctx context.Context, in DownloadTemplateInput) (DownloadTemplateOutput, error)
}

type downloadTemplate struct {
	registry *Registry
	writer   SpreadsheetWriter
}

func NewDownloadTemplate(registry *Registry, writer SpreadsheetWriter) DownloadTemplate {
	return &downloadTemplate{registry: registry, writer: writer}
}

func (uc *downloadTemplate) Execute(ctx context.Context, in DownloadTemplateInput) (DownloadTemplateOutput, error) {
	importer, err := uc.registry.Lookup(in.Entity)
	if err != nil {
		return DownloadTemplateOutput{}, err
	}

	content, err := uc.writer.Template(importer.Entity(), importer.Columns())
	if err != nil {
		return DownloadTemplateOutput{}, fmt.Errorf("%w: %v", ErrBuildSpreadsheet, err)
	}

	return DownloadTemplateOutput{
		FileName: importer.Entity() + "_template.xlsx",
		Content:  content,
	}, nil
}
