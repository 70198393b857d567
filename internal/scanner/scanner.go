// Package scanner discovers career documents on disk: recursive directory
// walks, filename-based categorization, validation, and content hashing.
package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/config"
	"github.com/chays/careerscan/internal/extract"
)

// DocumentMeta describes a discovered document before processing.
type DocumentMeta struct {
	FilePath         string    `json:"file_path"`
	FileName         string    `json:"file_name"`
	FileType         string    `json:"file_type"`
	DocumentCategory string    `json:"document_category"`
	LastModified     time.Time `json:"last_modified"`
	FileSize         int64     `json:"file_size"`
}

// Scan walks dir recursively and returns metadata for every file with a
// supported extension. A missing or non-directory path returns an empty
// slice rather than an error so a fresh install starts quietly.
func Scan(dir string) []DocumentMeta {
	info, err := os.Stat(dir)
	if err != nil {
		logrus.WithField("path", dir).Warn("documents directory does not exist")
		return nil
	}
	if !info.IsDir() {
		logrus.WithField("path", dir).Warn("documents path is not a directory")
		return nil
	}

	var documents []DocumentMeta
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !config.IsSupportedExtension(ext) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("skipping unstatable file")
			return nil
		}
		documents = append(documents, DocumentMeta{
			FilePath:         path,
			FileName:         d.Name(),
			FileType:         strings.TrimPrefix(ext, "."),
			DocumentCategory: Classify(d.Name()),
			LastModified:     fi.ModTime(),
			FileSize:         fi.Size(),
		})
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("path", dir).Error("directory scan aborted")
	}

	logrus.WithFields(logrus.Fields{"path": dir, "count": len(documents)}).Info("directory scan complete")
	return documents
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"resume", []string{"resume", "cv", "curriculum", "vitae"}},
	{"cover_letter", []string{"cover", "letter", "coverletter"}},
	{"application", []string{"application", "job", "apply", "applied"}},
	{"project", []string{"project", "portfolio", "work"}},
}

// Classify guesses a document category from its filename. Categories are
// checked in priority order; a filename matching none is "general".
func Classify(fileName string) string {
	lower := strings.ToLower(fileName)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.category
			}
		}
	}
	return "general"
}

// ValidateFile checks that a path points at a regular, readable, supported
// document no larger than maxSize bytes. Size and format violations return
// the extract package's typed errors so callers can map them to a skip
// rather than a failure.
func ValidateFile(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !config.IsSupportedExtension(ext) {
		return &extract.UnsupportedFormatError{Path: path, Ext: ext}
	}
	if info.Size() > maxSize {
		return &extract.FileTooLargeError{Path: path, Size: info.Size(), Limit: maxSize}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	return f.Close()
}

// HashFile computes the SHA-256 of a file's contents, streamed so large
// documents never land in memory whole.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("cannot hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
