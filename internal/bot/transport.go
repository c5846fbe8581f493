package bot

import (
	"CatalogBot/internal/dialog"
	"context"
)

// Button: кнопка inline-клавиатуры.
type Button struct {
	Text string
	Data string
}

// Keyboard: inline-клавиатура, по строкам.
type Keyboard [][]Button

// Menu: постоянная клавиатура с текстовыми кнопками.
type Menu [][]string

// File: содержимое отправляемого файла.
type File struct {
	Name string
	Data []byte
}

// User: отправитель события.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Message: входящее сообщение.
type Message struct {
	ChatID    int64
	MessageID int
	From      User
	Text      string
	Photo     *dialog.Attachment
	Document  *dialog.Attachment
}

// Callback: нажатие inline-кнопки.
type Callback struct {
	ID        string
	From      User
	ChatID    int64
	MessageID int
	Data      string
}

// Sender отправляет ответы в чат. Тексты размечены HTML.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb Keyboard) (int, error)
	SendMenu(ctx context.Context, chatID int64, text string, menu Menu) error
	SendPhoto(ctx context.Context, chatID int64, photo File, caption string, kb Keyboard) error
	SendDocument(ctx context.Context, chatID int64, doc File, caption string) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	// Download скачивает присланный пользователем файл.
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Linker выдаёт HTTP-ссылку на файл записи.
type Linker interface {
	Link(ref string) (string, error)
}
