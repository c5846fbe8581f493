package telegram

import (
	"CatalogBot/internal/bot"
	"CatalogBot/internal/dialog"

	"github.com/go-telegram/bot/models"
)

func toUser(u *models.User) bot.User {
	if u == nil {
		return bot.User{}
	}
	return bot.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// toMessage переводит сообщение платформы во внутреннее. Подпись к вложению считается текстом.
func toMessage(m *models.Message) (bot.Message, bool) {
	if m == nil || m.From == nil {
		return bot.Message{}, false
	}
	out := bot.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.ID,
		From:      toUser(m.From),
		Text:      m.Text,
	}
	if out.Text == "" {
		out.Text = m.Caption
	}
	if n := len(m.Photo); n > 0 {
		// размеры идут по возрастанию, последний является оригиналом
		p := m.Photo[n-1]
		out.Photo = &dialog.Attachment{FileID: p.FileID, Size: int64(p.FileSize)}
	}
	if d := m.Document; d != nil {
		out.Document = &dialog.Attachment{
			FileID:   d.FileID,
			FileName: d.FileName,
			MimeType: d.MimeType,
			Size:     int64(d.FileSize),
		}
	}
	return out, true
}

// toCallback возвращает false для нажатий без доступного сообщения.
func toCallback(q *models.CallbackQuery) (bot.Callback, bool) {
	if q == nil || q.Message.Message == nil {
		return bot.Callback{}, false
	}
	return bot.Callback{
		ID:        q.ID,
		From:      toUser(&q.From),
		ChatID:    q.Message.Message.Chat.ID,
		MessageID: q.Message.Message.ID,
		Data:      q.Data,
	}, true
}

func inlineMarkup(kb bot.Keyboard) models.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]models.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func replyMarkup(menu bot.Menu) models.ReplyMarkup {
	rows := make([][]models.KeyboardButton, 0, len(menu))
	for _, row := range menu {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, models.KeyboardButton{Text: label})
		}
		rows = append(rows, buttons)
	}
	return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}
