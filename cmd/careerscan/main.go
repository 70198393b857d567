// Package main provides the entry point for the careerscan CLI: document
// scanning, directory watching, and the interview API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chays/careerscan/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "careerscan",
	Short: "Career document scanner and interview prep assistant",
	Long:  "careerscan watches a documents folder, extracts structured career history from resumes and related files into a canonical profile, and serves an interview answer API grounded in that profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration from the environment and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
