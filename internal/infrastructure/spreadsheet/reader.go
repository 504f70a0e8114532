package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// Reader reads the first worksheet of an xlsx workbook. The first row is the
// header; cell values are returned unformatted so dates arrive as serials or
// text exactly as typed.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Read(raw []byte) (batch.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return batch.Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return batch.Sheet{}, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return batch.Sheet{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return batch.Sheet{}, nil
	}

	return batch.Sheet{Header: rows[0], Rows: rows[1:]}, nil
}
