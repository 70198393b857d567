package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chays/careerscan/internal/ledger"
	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/pipeline"
	"github.com/chays/careerscan/internal/profile"
	"github.com/chays/careerscan/internal/watcher"
)

var watchSkipBacklog bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the documents directory and process files as they appear",
	Long:  "Process the existing backlog, then keep watching the documents directory and ingest new or changed files until interrupted.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSkipBacklog, "skip-backlog", false, "Do not process existing files before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	store := profile.NewStore(cfg.ProfilePath())
	ldg := ledger.New(cfg.LedgerPath())
	p := pipeline.New(cfg, client, store, ldg)

	if !watchSkipBacklog {
		if err := p.ProcessBacklog(ctx); err != nil {
			return fmt.Errorf("backlog processing failed: %w", err)
		}
	}

	w, err := watcher.New(cfg.DocumentsPath, cfg.DebounceInterval, func(path string) {
		p.Submit(ctx, path)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logrus.Info("watcher stopped, draining in-flight documents")
	p.Wait()
	return nil
}
