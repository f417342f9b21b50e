package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX serializes each sheet to a comma-separated rendering,
// prefixed with a sheet-name marker. Row and column order are preserved
// as stored. Sheets without any cell text are skipped.
func extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ErrExtraction{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	var sections []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", &ErrExtraction{Format: FormatXLSX, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
		}

		rendered, hasText := renderCSV(rows)
		if !hasText {
			continue
		}
		sections = append(sections, fmt.Sprintf("\n## Sheet: %s\n%s", sheet, rendered))
	}

	return strings.Join(sections, "\n"), nil
}

// renderCSV serializes rows as CSV and reports whether any cell held text.
func renderCSV(rows [][]string) (string, bool) {
	hasText := false
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				hasText = true
			}
		}
	}
	if !hasText {
		return "", false
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		// Writer errors only surface on flush for strings.Builder targets.
		_ = w.Write(row)
	}
	w.Flush()

	return strings.TrimRight(buf.String(), "\n"), true
}
