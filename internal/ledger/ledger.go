// Package ledger tracks which documents have already been ingested, keyed by
// path + content hash. It is the pipeline's idempotence guarantee: consulted
// before any extraction work is spent.
package ledger

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/atomicfile"
)

// Status values for processed-document entries.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Entry records one document's processing outcome. Identity is FilePath:
// a re-arrival of the same path with a changed hash replaces the entry.
type Entry struct {
	FilePath         string         `json:"file_path"`
	ContentHash      string         `json:"content_hash"`
	ProcessedAt      string         `json:"processed_at"`
	Status           string         `json:"status"`
	DocumentCategory string         `json:"document_category,omitempty"`
	ErrorDetail      string         `json:"error_detail,omitempty"`
	ItemsExtracted   map[string]int `json:"items_extracted,omitempty"`
}

type ledgerFile struct {
	Documents []Entry `json:"documents"`
}

// Ledger owns the processed-documents file with the same exclusive-section
// and atomic-write discipline as the profile store.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// New creates a ledger backed by the file at path.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// IsProcessed reports whether the document at path was already successfully
// ingested with exactly this content hash. A changed hash means "not
// processed" even if the path was seen before, and failed or skipped entries
// never block a retry.
func (l *Ledger) IsProcessed(path, hash string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return false, err
	}
	for _, doc := range data.Documents {
		if doc.FilePath == path {
			return doc.ContentHash == hash && doc.Status == StatusSuccess, nil
		}
	}
	return false, nil
}

// Record upserts the entry for e.FilePath and persists atomically.
// ProcessedAt is stamped here.
func (l *Ledger) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return err
	}

	e.ProcessedAt = time.Now().Format(time.RFC3339)

	replaced := false
	for i := range data.Documents {
		if data.Documents[i].FilePath == e.FilePath {
			data.Documents[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		data.Documents = append(data.Documents, e)
	}

	if err := atomicfile.WriteJSON(l.path, data); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file_path": e.FilePath,
		"status":    e.Status,
	}).Info("ledger updated")
	return nil
}

// Entries returns a copy of all ledger entries, for diagnostics.
func (l *Ledger) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(data.Documents))
	copy(out, data.Documents)
	return out, nil
}

func (l *Ledger) load() (*ledgerFile, error) {
	var data ledgerFile
	if err := atomicfile.ReadJSON(l.path, &data); err != nil {
		if os.IsNotExist(err) {
			return &ledgerFile{}, nil
		}
		return nil, err
	}
	return &data, nil
}
