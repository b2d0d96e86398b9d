package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookRow is one spreadsheet row keyed by lower-cased column header
type WorkbookRow map[string]string

// ParseWorkbook reads the first sheet of an xlsx document into ordered rows.
// Headers are lower-cased and trimmed; cells beyond the header width are
// dropped, missing trailing cells come back as empty strings.
func ParseWorkbook(data []byte) ([]string, []WorkbookRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rawRows) == 0 {
		return nil, nil, fmt.Errorf("workbook is empty")
	}

	headers := make([]string, 0, len(rawRows[0]))
	for _, h := range rawRows[0] {
		headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
	}

	rows := make([]WorkbookRow, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		row := make(WorkbookRow, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			var cell string
			if i < len(raw) {
				cell = strings.TrimSpace(raw[i])
			}
			if cell != "" {
				empty = false
			}
			row[header] = cell
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// MatchColumn returns the first header that contains any of the aliases as a
// substring. Workbooks come from many agencies with slightly different
// column naming, so matching is fuzzy on purpose.
func MatchColumn(headers []string, aliases []string) (string, bool) {
	for _, h := range headers {
		for _, alias := range aliases {
			if strings.Contains(h, alias) {
				return h, true
			}
		}
	}
	return "", false
}
