// Package telegram связывает диспетчер бота с Telegram Bot API.
package telegram

import (
	"CatalogBot/internal/bot"
	"context"
	"fmt"
	"net/http"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler: потребитель входящих событий.
type Handler interface {
	HandleMessage(ctx context.Context, m bot.Message)
	HandleCallback(ctx context.Context, c bot.Callback)
}

// Bot получает обновления через long polling или webhook.
type Bot struct {
	api        *tgbot.Bot
	logger     *zap.SugaredLogger
	webhookURL string
	secret     string
	handler    Handler
}

// Options: параметры подключения.
type Options struct {
	Token         string
	WebhookURL    string // пусто: long polling
	WebhookSecret string
}

// NewBot создаёт клиента Bot API. Обработчик назначается позже через SetHandler,
// так как диспетчеру нужен Sender этого же клиента.
func NewBot(opts Options, logger *zap.SugaredLogger) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	b := &Bot{
		logger:     logger,
		webhookURL: opts.WebhookURL,
		secret:     opts.WebhookSecret,
	}

	tgOpts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.route),
		tgbot.WithErrorsHandler(func(err error) {
			logger.Warnw("telegram api error", "error", err)
		}),
	}
	if opts.WebhookSecret != "" {
		tgOpts = append(tgOpts, tgbot.WithWebhookSecretToken(opts.WebhookSecret))
	}

	api, err := tgbot.New(opts.Token, tgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.api = api
	return b, nil
}

// Sender возвращает отправителя ответов на этом клиенте.
func (b *Bot) Sender() *Sender {
	return NewSender(b.api)
}

func (b *Bot) SetHandler(h Handler) {
	b.handler = h
}

// WebhookEnabled сообщает, что обновления приходят на HTTP-обработчик.
func (b *Bot) WebhookEnabled() bool {
	return b.webhookURL != ""
}

// WebhookHandler принимает POST с обновлениями; подключается к HTTP-роутеру.
func (b *Bot) WebhookHandler() http.Handler {
	return b.api.WebhookHandler()
}

// Start блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) error {
	if b.handler == nil {
		return fmt.Errorf("telegram handler is not set")
	}

	if !b.WebhookEnabled() {
		// снимаем webhook, иначе getUpdates вернёт конфликт
		if _, err := b.api.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{}); err != nil {
			b.logger.Warnw("delete webhook failed", "error", err)
		}
		b.logger.Infow("telegram bot started", "mode", "polling")
		b.api.Start(ctx)
		b.logger.Infow("telegram bot stopped")
		return nil
	}

	url := b.webhookURL + WebhookPath
	if _, err := b.api.SetWebhook(ctx, &tgbot.SetWebhookParams{URL: url, SecretToken: b.secret}); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	b.logger.Infow("telegram bot started", "mode", "webhook", "url", url)
	b.api.StartWebhook(ctx)
	b.logger.Infow("telegram bot stopped")
	return nil
}

// WebhookPath: путь, на который Telegram присылает обновления.
const WebhookPath = "/webhook"

func (b *Bot) route(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	switch {
	case update.CallbackQuery != nil:
		c, ok := toCallback(update.CallbackQuery)
		if !ok {
			b.logger.Debugw("callback without message skipped", "update_id", update.ID)
			return
		}
		b.handler.HandleCallback(ctx, c)
	case update.Message != nil:
		m, ok := toMessage(update.Message)
		if !ok {
			return
		}
		b.handler.HandleMessage(ctx, m)
	}
}
