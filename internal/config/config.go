// Package config provides environment-driven configuration for the scanner and API server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for file processing. MaxFileSizeMB bounds what the extractor will
// even open; DebounceSeconds is how long the watcher waits after the last
// write event before processing a path.
const (
	DefaultMaxFileSizeMB   = 50
	DefaultDebounceSeconds = 2
	DefaultScanWorkers     = 2
	DefaultPort            = 5000
)

// SupportedExtensions is the extension allow-list for ingestable documents.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// Config holds all runtime configuration. Values come from environment
// variables (a .env file is loaded by main before Load runs).
type Config struct {
	// Paths
	DocumentsPath string // watched directory
	DataPath      string // directory holding profile.json and documents_processed.json

	// API
	GeminiAPIKey string
	Port         int

	// File processing
	MaxFileSizeMB    int
	DebounceInterval time.Duration
	ScanWorkers      int

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DocumentsPath:    getEnv("DOCUMENTS_PATH", filepath.Join(home, "Documents")),
		DataPath:         getEnv("DATA_PATH", filepath.Join(home, ".careerscan", "data")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		Port:             getEnvInt("PORT", DefaultPort),
		MaxFileSizeMB:    getEnvInt("MAX_FILE_SIZE_MB", DefaultMaxFileSizeMB),
		DebounceInterval: time.Duration(getEnvInt("DEBOUNCE_SECONDS", DefaultDebounceSeconds)) * time.Second,
		ScanWorkers:      getEnvInt("SCAN_WORKERS", DefaultScanWorkers),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks that the configuration is usable for pipeline runs.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is not set")
	}
	if c.DocumentsPath == "" {
		return fmt.Errorf("config error: DOCUMENTS_PATH is empty")
	}
	if c.DataPath == "" {
		return fmt.Errorf("config error: DATA_PATH is empty")
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("config error: MAX_FILE_SIZE_MB must be positive")
	}
	if c.ScanWorkers <= 0 {
		return fmt.Errorf("config error: SCAN_WORKERS must be positive")
	}
	return nil
}

// MaxFileSizeBytes returns the size ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// ProfilePath returns the path of the canonical profile file.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.DataPath, "profile.json")
}

// LedgerPath returns the path of the processed-documents ledger file.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataPath, "documents_processed.json")
}

// IsSupportedExtension reports whether ext (with leading dot) is on the
// allow-list. Comparison is case-insensitive.
func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
