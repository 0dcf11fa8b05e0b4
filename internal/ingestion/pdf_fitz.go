//go:build cgo

package ingestion

import (
	"strings"

	"github.com/gen2brain/go-fitz"
)

const fitzAvailable = true

// readPDFWithFitz extracts text with MuPDF
func readPDFWithFitz(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", &ReadError{Reader: "mupdf", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
