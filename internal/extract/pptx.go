package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// extractPPTX emits a slide-number marker followed by the text of every
// shape paragraph, in document order. Slides without text are skipped.
func extractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrExtraction{Format: FormatPPTX, Err: err}
	}

	slides := slideFiles(zr)
	if len(slides) == 0 {
		return "", &ErrExtraction{Format: FormatPPTX, Err: fmt.Errorf("no ppt/slides entries found")}
	}

	var sections []string
	for _, slide := range slides {
		rc, err := slide.file.Open()
		if err != nil {
			return "", &ErrExtraction{Format: FormatPPTX, Err: err}
		}
		lines, err := slideText(rc)
		rc.Close()
		if err != nil {
			// A single unreadable slide degrades to empty.
			continue
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, fmt.Sprintf("\n## Slide %d\n%s", slide.number, strings.Join(lines, "\n")))
	}

	return strings.Join(sections, "\n"), nil
}

type slideEntry struct {
	number int
	file   *zip.File
}

// slideFiles collects ppt/slides/slideN.xml entries, sorted by slide number.
// Zip entry order is not guaranteed to match presentation order.
func slideFiles(zr *zip.Reader) []slideEntry {
	var slides []slideEntry
	for _, f := range zr.File {
		name := f.Name
		if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		numStr := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
		num, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		slides = append(slides, slideEntry{number: num, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })
	return slides
}

// slideText collects the text of each DrawingML paragraph (<a:p>),
// concatenating its runs (<a:t>) into one line.
func slideText(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines   []string
		current strings.Builder
		inPara  bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse slide xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				var v string
				if err := dec.DecodeElement(&v, &el); err == nil {
					current.WriteString(v)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inPara {
				if line := strings.TrimSpace(current.String()); line != "" {
					lines = append(lines, line)
				}
				inPara = false
			}
		}
	}

	return lines, nil
}
