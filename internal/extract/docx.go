package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// extractDOCX pulls text out of a DOCX file by reading word/document.xml from
// the zip container. Paragraph and table-cell text both survive; formatting
// does not.
func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}
	if err := checkMagic(path, data, zipMagic); err != nil {
		return "", err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &CorruptDocumentError{Path: path, Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", &CorruptDocumentError{Path: path, Cause: err}
			}
			break
		}
	}
	if docXML == nil {
		return "", &CorruptDocumentError{Path: path}
	}

	text, err := wordMLText(docXML)
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}
	return text, nil
}

// wordMLText walks the WordprocessingML token stream collecting the content
// of w:t runs, inserting newlines at paragraph (w:p) and row (w:tr)
// boundaries and spaces between table cells (w:tc).
func wordMLText(docXML []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	var sb strings.Builder
	var inText bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "tr":
				sb.WriteString("\n")
			case "tc":
				sb.WriteString(" ")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
