package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfReaders returns the PDF readers in fallback order
func pdfReaders() []reader {
	chain := []reader{{name: "pdf", read: readPDF}}
	if fitzAvailable {
		chain = append(chain, reader{name: "mupdf", read: readPDFWithFitz})
	}
	return chain
}

// readPDF extracts text page by page. Pages that cannot be decoded are skipped.
func readPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ReadError{Reader: "pdf", Message: fmt.Sprintf("panic while decoding: %v", r)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Reader: "pdf", Message: "failed to open document", Cause: err}
	}

	var sb strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
