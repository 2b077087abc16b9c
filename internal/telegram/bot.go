// Package telegram serves optimized meal plans over a Telegram webhook.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"menu-optimizer/internal/app"
	"menu-optimizer/internal/config"
	"menu-optimizer/internal/metrics"
)

const planTimeout = 2 * time.Minute

// Bot wraps the Telegram API and the optimizer use-cases.
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *app.App
	cfg    *config.Config
	logger *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, logger *zap.Logger) (*Bot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("telegram")

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized", zap.String("account", bot.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("response", resp.Description))

	return &Bot{api: bot, app: application, cfg: cfg, logger: logger}, nil
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("failed to parse update", zap.Error(err))
		return
	}
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !b.cfg.IsUserAllowed(msg.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", msg.From.ID),
			zap.String("username", msg.From.UserName))
		return
	}

	go b.processMessage(msg)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "metrics":
		b.handleMetricsRequest(msg)
	case "plan":
		b.handlePlanRequest(msg)
	default:
		b.sendMarkdown(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendMarkdown(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	days, err := b.app.Metrics().GetDailySummary(ctx, 7)
	if err != nil {
		b.logger.Error("failed to fetch metrics", zap.Error(err))
		b.sendMarkdown(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}
	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))
	b.sendMarkdown(msg.Chat.ID, formatMetrics(days, health))
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	profile, err := parsePlanCommand(msg.CommandArguments(), nextMonday(time.Now()), b.cfg.BodyWeightKg)
	if err != nil {
		b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("❌ %s\n\n%s", markdownEscaper.Replace(err.Error()), helpText))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, "🧑‍🍳 *Optimizing...* \n(Evolving your meal plan)")
	reply.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.api.Send(reply)
	if err != nil {
		b.logger.Error("failed to send initial reply", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
	defer cancel()

	b.logger.Info("plan requested",
		zap.Int64("user_id", msg.From.ID),
		zap.Int("days", profile.Days),
		zap.String("budget", string(profile.Budget)))

	res, err := b.app.Optimize(ctx, profile, metrics.SourceTelegram)
	if err != nil {
		b.logger.Error("failed to generate plan", zap.Error(err))
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.edit(msg.Chat.ID, sent.MessageID, fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", safeErr))
		return
	}
	if res.Report.Fallback {
		b.sendAdminAlert(fmt.Sprintf("⚠️ *Fallback Plan Served*\nRun: `%s`\nReason: %s",
			res.Report.RunID, markdownEscaper.Replace(res.Report.FallbackReason)))
	}

	planText, shoppingText := formatPlanMarkdownParts(res)
	b.edit(msg.Chat.ID, sent.MessageID, planText)
	b.sendMarkdown(msg.Chat.ID, shoppingText)
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("failed to edit message", zap.Error(err))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) sendAdminAlert(text string) {
	if b.cfg.AdminTelegramID == 0 {
		return
	}
	b.sendMarkdown(b.cfg.AdminTelegramID, text)
}
