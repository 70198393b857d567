package extract

import (
	"bytes"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps how many pages are read from a single PDF. A resume or
// cover letter never comes close; the cap guards against pathological input.
const maxPDFPages = 100

// extractPDF extracts text from every page of a PDF. Pages that fail text
// extraction are skipped rather than failing the whole document.
func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}
	if err := checkMagic(path, data, pdfMagic); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", &CorruptDocumentError{Path: path}
	}
	if totalPages > maxPDFPages {
		totalPages = maxPDFPages
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
