package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX reads word/document.xml from the OOXML container and emits
// one line per paragraph. Paragraphs styled as headings become Markdown
// heading lines; everything else is emitted verbatim.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrExtraction{Format: FormatDOCX, Err: err}
	}

	f := findZipFile(zr, "word/document.xml")
	if f == nil {
		return "", &ErrExtraction{Format: FormatDOCX, Err: fmt.Errorf("word/document.xml not found")}
	}

	rc, err := f.Open()
	if err != nil {
		return "", &ErrExtraction{Format: FormatDOCX, Err: err}
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", &ErrExtraction{Format: FormatDOCX, Err: err}
	}

	var lines []string
	hasText := false
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.text)
		if text != "" {
			hasText = true
		}
		if p.heading && text != "" {
			lines = append(lines, "\n## "+text+"\n")
		} else {
			lines = append(lines, p.text)
		}
	}

	if !hasText {
		return "", nil
	}
	return strings.Join(lines, "\n"), nil
}

type docxParagraph struct {
	text    string
	heading bool
}

// docxParagraphs walks the WordprocessingML stream collecting paragraph
// text (<w:t> runs) and heading style flags (<w:pStyle w:val="Heading*">).
func docxParagraphs(r io.Reader) ([]docxParagraph, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []docxParagraph
		current    strings.Builder
		inPara     bool
		heading    bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				heading = false
				current.Reset()
			case "pStyle":
				for _, attr := range el.Attr {
					if attr.Name.Local == "val" && strings.HasPrefix(attr.Value, "Heading") {
						heading = true
					}
				}
			case "t":
				if inPara {
					var v string
					if err := dec.DecodeElement(&v, &el); err == nil {
						current.WriteString(v)
					}
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inPara {
				paragraphs = append(paragraphs, docxParagraph{
					text:    current.String(),
					heading: heading,
				})
				inPara = false
			}
		}
	}

	return paragraphs, nil
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
