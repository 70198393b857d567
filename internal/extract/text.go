package extract

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// extractTXT reads a plain text file. Content that is not valid UTF-8 is
// reinterpreted as Latin-1 so legacy exports still yield usable text.
func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &CorruptDocumentError{Path: path, Cause: err}
	}

	if utf8.Valid(data) {
		return string(data), nil
	}
	return latin1ToString(data), nil
}

// latin1ToString decodes bytes as ISO 8859-1, which maps every byte to the
// codepoint of the same value.
func latin1ToString(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// CleanText normalizes extracted text: line endings become LF, runs of
// spaces/tabs collapse to one space, trailing whitespace is stripped per
// line, and at most two consecutive newlines survive.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = multiSpaceRe.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")

	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
