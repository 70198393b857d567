package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "documents_processed.json"))
}

func TestIsProcessedUnknownPath(t *testing.T) {
	l := newTestLedger(t)

	done, err := l.IsProcessed("/docs/resume.pdf", "abc123")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRecordSuccessGatesReprocessing(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Record(Entry{
		FilePath:         "/docs/resume.pdf",
		ContentHash:      "abc123",
		Status:           StatusSuccess,
		DocumentCategory: "resume",
	}))

	done, err := l.IsProcessed("/docs/resume.pdf", "abc123")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestChangedHashMeansNotProcessed(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Record(Entry{
		FilePath:    "/docs/resume.pdf",
		ContentHash: "abc123",
		Status:      StatusSuccess,
	}))

	done, err := l.IsProcessed("/docs/resume.pdf", "def456")
	require.NoError(t, err)
	assert.False(t, done, "edited content must be reprocessed")
}

func TestFailedEntryDoesNotBlockRetry(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Record(Entry{
		FilePath:    "/docs/resume.pdf",
		ContentHash: "abc123",
		Status:      StatusFailed,
		ErrorDetail: "malformed model reply",
	}))

	done, err := l.IsProcessed("/docs/resume.pdf", "abc123")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRecordUpsertsByPath(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Record(Entry{FilePath: "/docs/a.txt", ContentHash: "h1", Status: StatusFailed}))
	require.NoError(t, l.Record(Entry{FilePath: "/docs/a.txt", ContentHash: "h2", Status: StatusSuccess}))
	require.NoError(t, l.Record(Entry{FilePath: "/docs/b.txt", ContentHash: "h3", Status: StatusSkipped}))

	entries, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2, "same path replaces its entry")

	assert.Equal(t, "h2", entries[0].ContentHash)
	assert.Equal(t, StatusSuccess, entries[0].Status)
	assert.NotEmpty(t, entries[0].ProcessedAt)
	assert.Equal(t, "/docs/b.txt", entries[1].FilePath)
}

func TestLedgerPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents_processed.json")

	require.NoError(t, New(path).Record(Entry{
		FilePath:       "/docs/resume.pdf",
		ContentHash:    "abc123",
		Status:         StatusSuccess,
		ItemsExtracted: map[string]int{"work_experience": 2},
	}))

	done, err := New(path).IsProcessed("/docs/resume.pdf", "abc123")
	require.NoError(t, err)
	assert.True(t, done)
}
