package batch

import "strings"

// HeaderRow is the spreadsheet row number of the column header.
const HeaderRow = 1

// Sheet is the header and the data rows of the sheet of interest in an upload.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Row is one data row of a Sheet, addressed by its spreadsheet row number.
type Row struct {
	Number int
	cells  map[string]string
}

// NewRow builds a row from column/value pairs. Column names are matched
// case-insensitively and values are trimmed.
func NewRow(number int, cells map[string]string) Row {
	normalized := make(map[string]string, len(cells))
	for column, value := range cells {
		normalized[normalizeColumn(column)] = strings.TrimSpace(value)
	}
	return Row{Number: number, cells: normalized}
}

// Get returns the trimmed value of column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return r.cells[normalizeColumn(column)]
}

func (r Row) blank() bool {
	for _, value := range r.cells {
		if value != "" {
			return false
		}
	}
	return true
}

// rows projects the sheet into addressed rows; data rows start right below the header.
// When a column name repeats in the header, the first non-empty cell wins.
func (s Sheet) rows() []Row {
	type column struct {
		pos  int
		name string
	}
	columns := make([]column, 0, len(s.Header))
	for i, header := range s.Header {
		if name := normalizeColumn(header); name != "" {
			columns = append(columns, column{pos: i, name: name})
		}
	}

	out := make([]Row, 0, len(s.Rows))
	for i, cells := range s.Rows {
		values := make(map[string]string, len(columns))
		for _, c := range columns {
			if c.pos >= len(cells) {
				continue
			}
			if strings.TrimSpace(values[c.name]) == "" {
				values[c.name] = cells[c.pos]
			}
		}
		out = append(out, NewRow(HeaderRow+1+i, values))
	}
	return out
}

// JoinKey builds a composite natural key from parts, joined by "/". A
// slash or backslash inside a part is escaped so distinct part lists never
// produce the same key. The key is empty when any part is empty.
func JoinKey(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, part := range parts {
		if part == "" {
			return ""
		}
		escaped[i] = keyEscaper.Replace(part)
	}
	return strings.Join(escaped, "/")
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, "/", `\/`)

func normalizeColumn(column string) string {
	return strings.ToUpper(strings.TrimSpace(column))
}
