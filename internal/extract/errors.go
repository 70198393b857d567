package extract

import "fmt"

// UnsupportedFormatError indicates a file whose type is outside the
// pdf/docx/txt set. Terminal for the file; the pipeline records it as skipped.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: %s", e.Ext, e.Path)
}

// FileTooLargeError indicates a file over the configured size ceiling.
// Raised from a Stat check, before any content is read.
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size %.2fMB exceeds maximum %.2fMB: %s",
		float64(e.Size)/(1024*1024), float64(e.Limit)/(1024*1024), e.Path)
}

// CorruptDocumentError indicates a file that matched a supported type but
// could not be decoded. Terminal for the file, recorded as failed.
type CorruptDocumentError struct {
	Path  string
	Cause error
}

func (e *CorruptDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("corrupt document %s", e.Path)
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Cause
}
