// Package extract converts uploaded study documents into a single
// normalized text blob with lightweight structural markers.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document container format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
	FormatPPTX Format = "pptx"
)

// Formats lists every supported format, in display order.
var Formats = []Format{FormatPDF, FormatDOCX, FormatXLSX, FormatPPTX}

// Document is one uploaded file: raw bytes plus a declared format.
// It exists only for the duration of a single Extract call.
type Document struct {
	Data   []byte
	Format Format
}

// ErrUnsupportedFormat indicates the declared format matches none of the
// recognized set. This is a caller error, not a corrupt file.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported document format: %q (supported: pdf, docx, xlsx, pptx)", e.Ext)
}

// ErrExtraction indicates the container itself was unreadable or corrupt.
// Retrying with the same file will not help.
type ErrExtraction struct {
	Format Format
	Err    error
}

func (e *ErrExtraction) Error() string {
	return fmt.Sprintf("extract %s document: %v", e.Format, e.Err)
}

func (e *ErrExtraction) Unwrap() error { return e.Err }

// ParseFormat maps a filename (or bare extension) to a Format.
func ParseFormat(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(name)
	}

	switch Format(ext) {
	case FormatPDF, FormatDOCX, FormatXLSX, FormatPPTX:
		return Format(ext), nil
	}
	return "", &ErrUnsupportedFormat{Ext: ext}
}

// Extract converts a Document into normalized text.
//
// Units (pages, slides, sheets) that yield no machine-readable text are
// skipped silently; when no unit across the whole document yields text,
// the result is the empty string and the caller should decline to proceed
// to generation. A corrupt container is reported as *ErrExtraction.
func Extract(doc Document) (string, error) {
	switch doc.Format {
	case FormatPDF:
		return extractPDF(doc.Data)
	case FormatDOCX:
		return extractDOCX(doc.Data)
	case FormatXLSX:
		return extractXLSX(doc.Data)
	case FormatPPTX:
		return extractPPTX(doc.Data)
	}
	return "", &ErrUnsupportedFormat{Ext: string(doc.Format)}
}
