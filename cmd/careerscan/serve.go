package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/profile"
	"github.com/chays/careerscan/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview prep API server",
	Long:  "Start an HTTP server exposing the profile and the interview answer generation endpoint.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env or 5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
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

	srv := server.New(server.Config{Port: cfg.Port}, client, store)
	return srv.Start()
}
