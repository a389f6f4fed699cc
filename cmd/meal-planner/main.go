package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/llm"
	"daily-meal-planner/internal/metrics"
	"daily-meal-planner/internal/plan"
	"daily-meal-planner/internal/server"
	"daily-meal-planner/internal/storage"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metricsStore, err := metrics.NewStore(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}
	defer metricsStore.Close()

	if len(os.Args) > 1 {
		runCommand(os.Args[1], os.Args[2:], metricsStore)
		return
	}

	openAIClient := llm.NewOpenAIClient(cfg)

	var textGen llm.TextGenerator = openAIClient
	if cfg.LLMProvider == config.ProviderGemini {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		if closer, ok := geminiClient.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = geminiClient
	}

	store, err := storage.NewAssetStore(cfg.StaticDir)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	planner := plan.NewPlanner(textGen, openAIClient, openAIClient, store, metricsStore, logger)
	srv := server.NewHTTPServer(cfg, server.New(planner, store, logger))

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("meal planner API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info().Msg("server exiting")
}

func runCommand(name string, args []string, metricsStore *metrics.Store) {
	switch name {
	case "metrics":
		summaryCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := summaryCmd.Int("days", 7, "Summarize the last N days")
		summaryCmd.Parse(args)

		sums, err := metricsStore.Summaries(*days)
		if err != nil {
			log.Fatalf("Failed to summarize metrics: %v", err)
		}
		for _, s := range sums {
			fmt.Printf("%-16s runs=%-5d failures=%-4d avg=%.0fms\n", s.Stage, s.Count, s.Failures, s.AvgLatencyMS)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(args)

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", name)
		fmt.Println("Usage: meal-planner [metrics|metrics-cleanup]")
		os.Exit(1)
	}
}
