package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chays/careerscan/internal/extract"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"Jane_Doe_Resume.pdf", "resume"},
		{"cv-2026.docx", "resume"},
		{"curriculum_vitae.txt", "resume"},
		{"cover_letter_acme.pdf", "cover_letter"},
		{"acme-application.txt", "application"},
		{"job_notes.txt", "application"},
		{"portfolio.pdf", "project"},
		{"notes.txt", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.fileName))
		})
	}
}

func TestScanFindsSupportedFilesRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "archive")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "cover_letter.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.png"), []byte{1, 2, 3}, 0o644))

	docs := Scan(dir)
	require.Len(t, docs, 2)

	byName := map[string]DocumentMeta{}
	for _, d := range docs {
		byName[d.FileName] = d
	}

	resume := byName["resume.pdf"]
	assert.Equal(t, "pdf", resume.FileType)
	assert.Equal(t, "resume", resume.DocumentCategory)
	assert.Equal(t, int64(8), resume.FileSize)
	assert.False(t, resume.LastModified.IsZero())

	letter := byName["cover_letter.txt"]
	assert.Equal(t, "cover_letter", letter.DocumentCategory)
}

func TestScanMissingDirectory(t *testing.T) {
	docs := Scan(filepath.Join(t.TempDir(), "absent"))
	assert.Empty(t, docs)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	assert.NoError(t, ValidateFile(path, 1024))

	t.Run("too large", func(t *testing.T) {
		err := ValidateFile(path, 3)
		var tooLarge *extract.FileTooLargeError
		assert.ErrorAs(t, err, &tooLarge)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		other := filepath.Join(dir, "image.png")
		require.NoError(t, os.WriteFile(other, []byte{1}, 0o644))
		err := ValidateFile(other, 1024)
		var unsupported *extract.UnsupportedFormatError
		assert.ErrorAs(t, err, &unsupported)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, ValidateFile(filepath.Join(dir, "absent.txt"), 1024))
	})

	t.Run("directory is not a document", func(t *testing.T) {
		assert.Error(t, ValidateFile(dir, 1024))
	})
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := []byte("Jane Doe\nSoftware Engineer")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := HashFile(path)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)

	// Same content hashes identically, changed content does not.
	again, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	require.NoError(t, os.WriteFile(path, []byte("edited"), 0o644))
	changed, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, got, changed)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
