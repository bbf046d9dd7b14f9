// Package pdftext extracts per-page plain text from PDF documents.
package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// ErrUnreadable is returned when the upload is not a parseable PDF.
var ErrUnreadable = domain.NewDomainError(domain.ErrCodeValidation, "unreadable PDF")

// ExtractPages returns one page per PDF page, numbered from 1. Pages without
// extractable text are kept with empty text.
func ExtractPages(data []byte) (pages []domain.Page, err error) {
	if len(data) == 0 {
		return nil, ErrUnreadable
	}
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = domain.NewDomainErrorWithCause(ErrUnreadable.Code, ErrUnreadable.Message, fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(ErrUnreadable.Code, ErrUnreadable.Message, err)
	}

	n := reader.NumPage()
	pages = make([]domain.Page, 0, n)
	for i := 1; i <= n; i++ {
		page := domain.Page{ID: domain.PageNumber(i)}
		p := reader.Page(i)
		if !p.V.IsNull() {
			text, err := p.GetPlainText(nil)
			if err != nil {
				return nil, domain.NewDomainErrorWithCause(ErrUnreadable.Code,
					fmt.Sprintf("unreadable PDF page %d", i), err)
			}
			page.Text = text
		}
		pages = append(pages, page)
	}
	return pages, nil
}
