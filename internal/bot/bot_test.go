package bot

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/dialog"
	"CatalogBot/internal/model"
	"CatalogBot/internal/repo"
	"CatalogBot/internal/service"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sentMessage — одно исходящее действие фейкового транспорта
type sentMessage struct {
	Kind      string // text|menu|photo|document|edit|delete
	ChatID    int64
	MessageID int
	Text      string
	Keyboard  Keyboard
	Menu      Menu
	File      File
}

type fakeSender struct {
	mu      sync.Mutex
	nextID  int
	sent    []sentMessage
	answers []string
	files   map[string][]byte
}

func newFakeSender() *fakeSender {
	return &fakeSender{nextID: 100, files: map[string][]byte{}}
}

func (f *fakeSender) record(m sentMessage) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if m.MessageID == 0 {
		m.MessageID = f.nextID
	}
	f.sent = append(f.sent, m)
	return m.MessageID
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string, kb Keyboard) (int, error) {
	return f.record(sentMessage{Kind: "text", ChatID: chatID, Text: text, Keyboard: kb}), nil
}

func (f *fakeSender) SendMenu(_ context.Context, chatID int64, text string, menu Menu) error {
	f.record(sentMessage{Kind: "menu", ChatID: chatID, Text: text, Menu: menu})
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, chatID int64, photo File, caption string, kb Keyboard) error {
	f.record(sentMessage{Kind: "photo", ChatID: chatID, Text: caption, Keyboard: kb, File: photo})
	return nil
}

func (f *fakeSender) SendDocument(_ context.Context, chatID int64, doc File, caption string) error {
	f.record(sentMessage{Kind: "document", ChatID: chatID, Text: caption, File: doc})
	return nil
}

func (f *fakeSender) EditText(_ context.Context, chatID int64, messageID int, text string, kb Keyboard) error {
	f.record(sentMessage{Kind: "edit", ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeSender) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	f.record(sentMessage{Kind: "delete", ChatID: chatID, MessageID: messageID})
	return nil
}

func (f *fakeSender) AnswerCallback(_ context.Context, _ string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeSender) Download(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func (f *fakeSender) upload(fileID string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[fileID] = data
}

// last возвращает последнее исходящее действие
func (f *fakeSender) last() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeSender) lastAnswer() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.answers) == 0 {
		return ""
	}
	return f.answers[len(f.answers)-1]
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// since возвращает действия, начиная с позиции n
func (f *fakeSender) since(n int) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent[n:]...)
}

type staticLinker struct{}

func (staticLinker) Link(ref string) (string, error) {
	return "https://files.example.com/" + filepath.Base(ref), nil
}

type testBot struct {
	disp    *Dispatcher
	sender  *fakeSender
	catalog *service.CatalogService
	assets  *assets.Manager
	engine  *dialog.Engine
	dialogs *dialog.MemoryRegistry
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop().Sugar()
	store, err := assets.NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	mgr := assets.NewManager(store, logger)
	repos := service.NewRepos(db)
	catalog := service.NewCatalogService(repos, mgr, logger)
	dialogs := dialog.NewMemoryRegistry(0)
	engine := dialog.NewEngine(dialogs, logger)
	sender := newFakeSender()

	disp := NewDispatcher(Deps{
		Catalog: catalog,
		Access:  service.NewAccessService(repos.Users, logger),
		Assets:  mgr,
		Engine:  engine,
		Sender:  sender,
		Logger:  logger,
	})
	return &testBot{disp: disp, sender: sender, catalog: catalog, assets: mgr, engine: engine, dialogs: dialogs}
}

// withRole регистрирует пользователя с нужной ролью
func (b *testBot) withRole(t *testing.T, id int64, role model.Role) User {
	t.Helper()
	u := User{ID: id, Username: fmt.Sprintf("user%d", id), FirstName: "Test"}
	require.True(t, b.catalog.UpsertUser(context.Background(), model.User{ID: u.ID, Username: u.Username, FirstName: u.FirstName}))
	if role != model.RoleUser {
		require.True(t, b.catalog.SetRole(context.Background(), id, role))
	}
	return u
}

func (b *testBot) say(u User, text string) {
	b.disp.HandleMessage(context.Background(), Message{ChatID: u.ID, From: u, Text: text})
}

func (b *testBot) press(u User, data string) {
	b.disp.HandleCallback(context.Background(), Callback{ID: "cb", ChatID: u.ID, MessageID: 55, From: u, Data: data})
}

func (b *testBot) addItem(t *testing.T, title, author, category string) int64 {
	t.Helper()
	id, ok := b.catalog.AddItem(context.Background(), service.NewItem{Title: title, Author: author, Category: category})
	require.True(t, ok)
	return id
}

func hasButton(kb Keyboard, data string) bool {
	for _, row := range kb {
		for _, btn := range row {
			if btn.Data == data {
				return true
			}
		}
	}
	return false
}

func textsOf(msgs []sentMessage) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n---\n")
}

// minimalPDF собирает одностраничный PDF с корректной таблицей xref
func minimalPDF() []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>",
	}
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}
