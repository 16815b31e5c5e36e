// Package pdftext pulls the plain text layer out of PDF documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText means the document parsed but carried no extractable text,
// usually a scanned PDF without a text layer.
var ErrNoText = errors.New("pdf has no extractable text")

// Page holds the text of a single page. Number starts at 1.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Extract reads every page of the PDF in r.
func Extract(r io.ReaderAt, size int64) ([]Page, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF reader: %w", err)
	}

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("could not read page %d: %w", i, err)
		}
		pages = append(pages, Page{Number: i, Text: strings.TrimSpace(text)})
	}
	if strings.TrimSpace(Join(pages)) == "" {
		return nil, ErrNoText
	}
	return pages, nil
}

// ExtractBytes is Extract over an in-memory document.
func ExtractBytes(data []byte) ([]Page, error) {
	return Extract(bytes.NewReader(data), int64(len(data)))
}

// Join concatenates page texts separated by blank lines.
func Join(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// IsPDF checks the %PDF- magic at the start of data.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
