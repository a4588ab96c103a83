package service

import (
	"context"
	"fmt"

	"github.com/rsmmonaem/voter-talika/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PlainPDFReader reads page text with the pure-Go ledongthuc/pdf decoder.
// It needs no cgo, but its text layer matches the pdfjs glyph table rather
// than the MuPDF one.
type PlainPDFReader struct {
	logger domain.Logger
}

func NewPlainPDFReader(logger domain.Logger) *PlainPDFReader {
	return &PlainPDFReader{logger: logger}
}

// ReadPages returns one string per page; unreadable pages are empty.
func (r *PlainPDFReader) ReadPages(ctx context.Context, path string) ([]string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDocumentOpen, path, err)
	}
	defer f.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		page := doc.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			r.logger.Warn("Failed to extract text from page", "file", path, "page", i, "error", err)
			text = ""
		}
		pages = append(pages, sanitizeText(text))
	}

	return pages, nil
}
