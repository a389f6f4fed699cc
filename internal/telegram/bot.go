// Package telegram exposes the meal-plan pipeline through a webhook bot:
// a text message is treated as the ingredient list for a one-day plan.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/plan"
	"daily-meal-planner/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const defaultKcal = 2000

// Telegram rejects messages longer than 4096 characters.
const maxMessageLen = 4000

// Bot wraps the Telegram API and the meal planner.
type Bot struct {
	api     *tgbotapi.BotAPI
	planner *plan.Planner
	store   *storage.AssetStore
	cfg     *config.Config
	log     zerolog.Logger
	baseURL string
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, planner *plan.Planner, store *storage.AssetStore, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info().Str("response", resp.Description).Msg("webhook set")

	baseURL, err := publicBaseURL(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		planner: planner,
		store:   store,
		cfg:     cfg,
		log:     logger,
		baseURL: baseURL,
	}, nil
}

// publicBaseURL derives the public origin the generated meal URLs should
// be resolved against from the webhook URL.
func publicBaseURL(webhookURL string) (string, error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse webhook URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("webhook URL %q has no scheme or host", webhookURL)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.log.Error().Err(err).Msg("error parsing update")
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		b.log.Warn().
			Int64("user_id", update.Message.From.ID).
			Str("username", update.Message.From.UserName).
			Msg("unauthorized access attempt")
		return
	}

	go b.processMessage(update.Message)
}

// processMessage runs the full plan pipeline for one chat message. The
// message text is the ingredient list.
func (b *Bot) processMessage(msg *tgbotapi.Message) {
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "🍳 Cooking up your daily plan, this can take a few minutes..."))

	req := plan.Request{Ingredients: msg.Text, Kcal: defaultKcal}
	result, err := b.planner.GeneratePlan(context.Background(), req, b.baseURL)
	if err != nil {
		b.log.Error().Err(err).Msg("plan generation failed")
		b.send(tgbotapi.NewMessage(msg.Chat.ID, failureText(err)))
		return
	}

	for _, meal := range result.Meals {
		name := string(meal.Slot)

		photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(b.store.ImagePath(name)))
		photo.Caption = fmt.Sprintf("%s: %s", strings.ToUpper(name[:1])+name[1:], meal.Title)
		b.send(photo)

		b.send(tgbotapi.NewMessage(msg.Chat.ID, truncate(meal.Text, maxMessageLen)))

		audio := tgbotapi.NewAudio(msg.Chat.ID, tgbotapi.FilePath(b.store.AudioPath(name)))
		audio.Title = meal.Title
		b.send(audio)
	}
}

func failureText(err error) string {
	switch {
	case errors.Is(err, plan.ErrGenerationFailed):
		return "⚠️ The model could not produce a plan. Try again in a bit."
	case errors.Is(err, plan.ErrEmptyPlan):
		return "⚠️ The plan came back badly formatted. Try rewording your ingredients."
	case errors.Is(err, plan.ErrAssetGeneration):
		return "⚠️ The plan was created but an image or audio failed. Try again."
	}
	return "⚠️ Something went wrong. Try again."
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error().Err(err).Msg("failed to send telegram message")
	}
}
