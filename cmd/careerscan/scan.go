package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chays/careerscan/internal/ledger"
	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/pipeline"
	"github.com/chays/careerscan/internal/profile"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Process the document backlog once and exit",
	Long:  "Scan the documents directory, extract career information from every unprocessed file, merge it into the profile, and exit.",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	store := profile.NewStore(cfg.ProfilePath())
	ldg := ledger.New(cfg.LedgerPath())

	p := pipeline.New(cfg, client, store, ldg)
	return p.ProcessBacklog(ctx)
}
