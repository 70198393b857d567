// Package extract turns career documents (PDF, DOCX, TXT) into plain text.
package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Magic prefixes used to verify that a file's content matches its extension.
var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04") // DOCX is a zip container
)

// Result holds the extracted text of a document.
type Result struct {
	Text      string
	CharCount int
}

// Extractor dispatches extraction by file type and enforces the size ceiling.
type Extractor struct {
	maxFileSize int64
}

// New creates an Extractor with the given size ceiling in bytes.
func New(maxFileSize int64) *Extractor {
	return &Extractor{maxFileSize: maxFileSize}
}

// Extract reads the document at path and returns its cleaned plain text.
// The size ceiling is checked via Stat before any content is read. Errors are
// always one of UnsupportedFormatError, FileTooLargeError or
// CorruptDocumentError so callers can classify the outcome.
func (e *Extractor) Extract(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, &CorruptDocumentError{Path: path, Cause: err}
	}
	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		return nil, &FileTooLargeError{Path: path, Size: info.Size(), Limit: e.maxFileSize}
	}

	var text string
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt":
		text, err = extractTXT(path)
	default:
		return nil, &UnsupportedFormatError{Path: path, Ext: ext}
	}
	if err != nil {
		return nil, err
	}

	cleaned := CleanText(text)
	return &Result{Text: cleaned, CharCount: len(cleaned)}, nil
}

// checkMagic verifies that data begins with the expected prefix for the
// declared type. A mismatch means the extension lies about the content.
func checkMagic(path string, data, magic []byte) error {
	if !bytes.HasPrefix(data, magic) {
		return &CorruptDocumentError{Path: path}
	}
	return nil
}
