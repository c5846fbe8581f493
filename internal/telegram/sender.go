package telegram

import (
	"CatalogBot/internal/bot"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	requestTimeout  = 15 * time.Second
	downloadTimeout = 60 * time.Second
	// MaxDownloadSize: предел скачивания файлов через Bot API.
	MaxDownloadSize = 20 << 20
)

// Sender отправляет ответы через Bot API.
type Sender struct {
	api  *tgbot.Bot
	http *http.Client
}

func NewSender(api *tgbot.Bot) *Sender {
	return &Sender{api: api, http: &http.Client{Timeout: downloadTimeout}}
}

func (s *Sender) SendText(ctx context.Context, chatID int64, text string, kb bot.Keyboard) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	msg, err := s.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: inlineMarkup(kb),
	})
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return msg.ID, nil
}

func (s *Sender) SendMenu(ctx context.Context, chatID int64, text string, menu bot.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := s.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: replyMarkup(menu),
	})
	if err != nil {
		return fmt.Errorf("send menu: %w", err)
	}
	return nil
}

func (s *Sender) SendPhoto(ctx context.Context, chatID int64, photo bot.File, caption string, kb bot.Keyboard) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	_, err := s.api.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: photo.Name, Data: bytes.NewReader(photo.Data)},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: inlineMarkup(kb),
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (s *Sender) SendDocument(ctx context.Context, chatID int64, doc bot.File, caption string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	_, err := s.api.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID:    chatID,
		Document:  &models.InputFileUpload{Filename: doc.Name, Data: bytes.NewReader(doc.Data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (s *Sender) EditText(ctx context.Context, chatID int64, messageID int, text string, kb bot.Keyboard) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := s.api.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: inlineMarkup(kb),
	})
	if err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (s *Sender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if _, err := s.api.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: chatID, MessageID: messageID}); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (s *Sender) AnswerCallback(ctx context.Context, callbackID, text string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := s.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// Download получает содержимое файла, присланного в чат.
func (s *Sender) Download(ctx context.Context, fileID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	f, err := s.api.GetFile(ctx, &tgbot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if f.FileSize > MaxDownloadSize {
		return nil, fmt.Errorf("file %s is too large: %d bytes", fileID, f.FileSize)
	}
	return s.fetch(ctx, s.api.FileDownloadLink(f))
}

func (s *Sender) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("download file: exceeds %d bytes", MaxDownloadSize)
	}
	return data, nil
}
