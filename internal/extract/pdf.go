package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates per-page text, prefixing each non-empty page
// with a page-number marker. Pages without extractable text are skipped.
func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ErrExtraction{Format: FormatPDF, Err: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrExtraction{Format: FormatPDF, Err: err}
	}

	var sections []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page degrades to empty, not a failure.
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}

		sections = append(sections, fmt.Sprintf("[Page %d]\n%s", i, pageText))
	}

	return strings.Join(sections, "\n\n"), nil
}
