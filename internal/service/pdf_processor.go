package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/domain"

	"github.com/gen2brain/go-fitz"
)

const defaultPageTimeout = 90 * time.Second

// PDFProcessor reads the MuPDF text layer of a roll, one string per page.
type PDFProcessor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewPDFProcessor creates a new PDF processor. A non-positive timeout falls
// back to 90 seconds per page.
func NewPDFProcessor(logger domain.Logger, pageTimeout time.Duration) *PDFProcessor {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	return &PDFProcessor{
		logger:      logger,
		pageTimeout: pageTimeout,
	}
}

// ReadPages returns the raw text of every page in order. A page that fails
// or times out yields an empty string so page numbering is preserved; only
// failing to open the document is an error.
func (p *PDFProcessor) ReadPages(ctx context.Context, path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDocumentOpen, path, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		p.logger.Debug("PDF processing page", "file", path, "page", pageNum+1, "total", numPages)
		idx := pageNum
		text, err := pageText(ctx, p.pageTimeout, func() (string, error) { return doc.Text(idx) })
		if ctx.Err() != nil {
			return pages, ctx.Err()
		}
		switch {
		case errors.Is(err, errPageTimeout):
			p.logger.Warn("PDF page extraction timeout; using empty page", "file", path, "page", pageNum+1, "timeout_sec", int(p.pageTimeout.Seconds()))
			text = ""
		case err != nil:
			p.logger.Warn("Failed to extract text from page", "file", path, "page", pageNum+1, "error", err)
			text = ""
		}

		pages = append(pages, sanitizeText(text))
	}

	return pages, nil
}

var errPageTimeout = errors.New("page extraction timed out")

// pageText runs extract in its own goroutine and gives up after timeout or
// when ctx ends. The result channel is buffered, so an abandoned extraction
// still completes its send and exits.
func pageText(ctx context.Context, timeout time.Duration, extract func() (string, error)) (string, error) {
	type pageResult struct {
		text string
		err  error
	}

	resultCh := make(chan pageResult, 1)
	go func() {
		t, e := extract()
		resultCh <- pageResult{text: t, err: e}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res.text, res.err
	case <-timer.C:
		return "", fmt.Errorf("%w after %v", errPageTimeout, timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// sanitizeText drops NUL, control characters other than tab and line breaks,
// and stray surrogates. Neither store accepts NUL in a text column.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
			result.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			result.WriteRune(r)
		case r >= 0x7F && r <= 0x9F:
			// C1 controls
		case r >= 0xD800 && r <= 0xDFFF:
		case r > 0x9F && r <= 0x10FFFF && r != 0xFFFD:
			result.WriteRune(r)
		}
	}

	return result.String()
}
