// Package bot разбирает входящие события чата, проверяет права и отвечает.
package bot

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/dialog"
	"CatalogBot/internal/model"
	"CatalogBot/internal/service"
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type messageHandler func(ctx context.Context, m Message) error

// callbackHandler возвращает текст всплывающего уведомления (может быть пустым).
type callbackHandler func(ctx context.Context, c Callback, cmd Command) (string, error)

type messageRoute struct {
	minRole model.Role
	handle  messageHandler
}

type callbackRoute struct {
	minRole model.Role
	handle  callbackHandler
}

// Deps: зависимости диспетчера.
type Deps struct {
	Catalog *service.CatalogService
	Access  *service.AccessService
	Assets  *assets.Manager
	Engine  *dialog.Engine
	Sender  Sender
	Links   Linker // nil: ссылки на скачивание не выдаются
	Logger  *zap.SugaredLogger
}

// Dispatcher сопоставляет события командам.
type Dispatcher struct {
	catalog *service.CatalogService
	access  *service.AccessService
	assets  *assets.Manager
	engine  *dialog.Engine
	sender  Sender
	links   Linker
	logger  *zap.SugaredLogger

	menu      map[string]messageRoute
	callbacks map[Action]callbackRoute

	// события одного чата обрабатываются строго по очереди
	locks sync.Map // chatID -> *sync.Mutex
}

func NewDispatcher(d Deps) *Dispatcher {
	disp := &Dispatcher{
		catalog: d.Catalog,
		access:  d.Access,
		assets:  d.Assets,
		engine:  d.Engine,
		sender:  d.Sender,
		links:   d.Links,
		logger:  d.Logger,
	}
	disp.menu = map[string]messageRoute{
		LabelSearch:     {model.RoleUser, disp.onSearch},
		LabelCategories: {model.RoleUser, disp.onCategories},
		LabelFavorites:  {model.RoleUser, disp.onFavorites},
		LabelAddItem:    {model.RoleAdmin, disp.onAddItem},
		LabelStatistics: {model.RoleAdmin, disp.onStatistics},
		LabelUsers:      {model.RoleSuperadmin, disp.onUsers},
		LabelAdmins:     {model.RoleSuperadmin, disp.onManageAdmins},
	}
	disp.callbacks = map[Action]callbackRoute{
		ActItem:       {model.RoleUser, disp.cbItem},
		ActDownload:   {model.RoleUser, disp.cbDownload},
		ActFavorite:   {model.RoleUser, disp.cbFavorite},
		ActUnfavorite: {model.RoleUser, disp.cbUnfavorite},
		ActRate:       {model.RoleUser, disp.cbRate},
		ActScore:      {model.RoleUser, disp.cbScore},
		ActCategory:   {model.RoleUser, disp.cbCategory},
		ActEdit:       {model.RoleAdmin, disp.cbEdit},
		ActEditField:  {model.RoleAdmin, disp.cbEditField},
		ActDelete:     {model.RoleAdmin, disp.cbDelete},
		ActDeleteOK:   {model.RoleAdmin, disp.cbDeleteConfirm},
		ActDeleteNo:   {model.RoleAdmin, disp.cbDeleteCancel},
		ActPromote:    {model.RoleSuperadmin, disp.cbPromote},
		ActAdmins:     {model.RoleSuperadmin, disp.cbAdmins},
		ActDemote:     {model.RoleSuperadmin, disp.cbDemote},
	}
	disp.registerFlows()
	return disp
}

func (d *Dispatcher) lock(chatID int64) func() {
	v, _ := d.locks.LoadOrStore(chatID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// gate проверяет роль перед запуском обработчика.
func (d *Dispatcher) gate(ctx context.Context, userID int64, min model.Role) bool {
	return d.access.Allowed(ctx, userID, min)
}

func deniedText(min model.Role) string {
	if min == model.RoleSuperadmin {
		return textSuperadminOnly
	}
	return textAdminsOnly
}

func (d *Dispatcher) register(ctx context.Context, u User) {
	d.catalog.UpsertUser(ctx, model.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

func (d *Dispatcher) recoverPanic(chatID int64, event string) {
	if r := recover(); r != nil {
		d.logger.Errorw("panic while handling event",
			"chat_id", chatID, "event", event, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		d.reply(context.Background(), chatID, textGenericError)
	}
}

// HandleMessage обрабатывает входящее сообщение.
func (d *Dispatcher) HandleMessage(ctx context.Context, m Message) {
	unlock := d.lock(m.ChatID)
	defer unlock()
	defer d.recoverPanic(m.ChatID, "message")

	d.register(ctx, m.From)
	text := strings.TrimSpace(m.Text)

	switch text {
	case "/start":
		d.cancelDialog(ctx, m.ChatID)
		d.onStart(ctx, m)
		return
	case "/cancel":
		if d.cancelDialog(ctx, m.ChatID) {
			d.reply(ctx, m.ChatID, textCancelled)
		} else {
			d.reply(ctx, m.ChatID, textNothingToCancel)
		}
		return
	}

	handled, err := d.engine.Dispatch(ctx, dialog.Input{
		ChatID:    m.ChatID,
		UserID:    m.From.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
		Photo:     m.Photo,
		Document:  m.Document,
	})
	if err != nil {
		d.logger.Errorw("dialog failed", "chat_id", m.ChatID, "user_id", m.From.ID, "error", err)
		d.reply(ctx, m.ChatID, textGenericError)
		return
	}
	if handled {
		return
	}

	if route, ok := d.menu[text]; ok {
		if !d.gate(ctx, m.From.ID, route.minRole) {
			d.logger.Infow("access denied", "user_id", m.From.ID, "command", text)
			d.reply(ctx, m.ChatID, deniedText(route.minRole))
			return
		}
		if err := route.handle(ctx, m); err != nil {
			d.logger.Errorw("command failed", "chat_id", m.ChatID, "command", text, "error", err)
			d.reply(ctx, m.ChatID, textGenericError)
		}
		return
	}

	switch {
	case text == "":
		// вложение вне диалога
		return
	case strings.HasPrefix(text, "/"):
		d.reply(ctx, m.ChatID, textUnknownCommand)
	default:
		if err := d.search(ctx, m.ChatID, text); err != nil {
			d.logger.Errorw("search failed", "chat_id", m.ChatID, "error", err)
			d.reply(ctx, m.ChatID, textGenericError)
		}
	}
}

// HandleCallback обрабатывает нажатие inline-кнопки. На каждое нажатие отправляется ответ.
func (d *Dispatcher) HandleCallback(ctx context.Context, c Callback) {
	unlock := d.lock(c.ChatID)
	defer unlock()
	defer d.recoverPanic(c.ChatID, "callback")

	d.register(ctx, c.From)
	notice := d.routeCallback(ctx, c)
	if err := d.sender.AnswerCallback(ctx, c.ID, notice); err != nil {
		d.logger.Warnw("answer callback failed", "chat_id", c.ChatID, "error", err)
	}
}

func (d *Dispatcher) routeCallback(ctx context.Context, c Callback) string {
	cmd, err := ParseCallback(c.Data)
	if err != nil {
		d.logger.Warnw("bad callback", "chat_id", c.ChatID, "user_id", c.From.ID, "error", err)
		return textActionFailed
	}
	route, ok := d.callbacks[cmd.Action]
	if !ok {
		return textActionFailed
	}
	if !d.gate(ctx, c.From.ID, route.minRole) {
		d.logger.Infow("access denied", "user_id", c.From.ID, "action", cmd.Action)
		return deniedText(route.minRole)
	}
	notice, err := route.handle(ctx, c, cmd)
	if err != nil {
		d.logger.Errorw("callback failed", "chat_id", c.ChatID, "action", cmd.Action, "error", err)
		d.reply(ctx, c.ChatID, textGenericError)
		return ""
	}
	return notice
}

// cancelDialog сбрасывает ожидающий шаг чата.
func (d *Dispatcher) cancelDialog(ctx context.Context, chatID int64) bool {
	cancelled, err := d.engine.Cancel(ctx, chatID)
	if err != nil {
		d.logger.Warnw("cancel dialog failed", "chat_id", chatID, "error", err)
	}
	return cancelled
}

// begin назначает шаг и отправляет приглашение к вводу.
func (d *Dispatcher) begin(ctx context.Context, chatID int64, step string, fields map[string]string, prompt string) error {
	if err := d.engine.Begin(ctx, chatID, step, fields); err != nil {
		return err
	}
	d.reply(ctx, chatID, prompt)
	return nil
}

// reply отправляет текст без клавиатуры; ошибка только логируется.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	d.send(ctx, chatID, text, nil)
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string, kb Keyboard) {
	if _, err := d.sender.SendText(ctx, chatID, text, kb); err != nil {
		d.logger.Warnw("send failed", "chat_id", chatID, "error", err)
	}
}

// sendCard отправляет карточку: с обложкой, если файл доступен, иначе текстом.
func (d *Dispatcher) sendCard(ctx context.Context, chatID int64, it model.Item, caption string, kb Keyboard) {
	if d.assets.Exists(ctx, it.ImagePath) {
		data, err := d.assets.Read(ctx, *it.ImagePath)
		if err == nil {
			err = d.sender.SendPhoto(ctx, chatID, File{Name: "cover.jpg", Data: data}, caption, kb)
		}
		if err == nil {
			return
		}
		d.logger.Warnw("send photo failed, falling back to text", "chat_id", chatID, "item_id", it.ID, "error", err)
	}
	d.send(ctx, chatID, caption, kb)
}
