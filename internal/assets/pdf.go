package assets

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFPages разбирает документ и возвращает число страниц.
// Паника разборщика на повреждённом файле возвращается как ErrUnsupportedDocument.
func PDFPages(data []byte) (pages int, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, ErrUnsupportedDocument
	}
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: %v", ErrUnsupportedDocument, r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
	}
	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrUnsupportedDocument)
	}
	return n, nil
}
