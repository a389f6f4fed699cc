package main

import (
	"context"
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
	"daily-meal-planner/internal/storage"
	"daily-meal-planner/internal/telegram"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	openAIClient := llm.NewOpenAIClient(cfg)

	var textGen llm.TextGenerator = openAIClient
	if cfg.LLMProvider == config.ProviderGemini {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
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

	metricsStore, err := metrics.NewStore(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}
	defer metricsStore.Close()

	planner := plan.NewPlanner(textGen, openAIClient, openAIClient, store, metricsStore, logger)

	bot, err := telegram.NewBot(cfg, planner, store, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}
	bot.RegisterHandlers()

	// Generated assets must be reachable at the public webhook origin.
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(store.Root()))))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("telegram bot server listening")
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
