package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Done: имя «следующего шага», завершающего диалог.
const Done = ""

// ErrUnknownStep: шаг не зарегистрирован в движке.
var ErrUnknownStep = errors.New("unknown dialog step")

// Attachment: файл во входящем сообщении.
type Attachment struct {
	FileID   string
	FileName string
	MimeType string
	Size     int64
}

// Input: одно входящее сообщение чата.
type Input struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Photo     *Attachment
	Document  *Attachment
}

// StepFunc обрабатывает ответ на текущий шаг. fields можно менять: они сохраняются вместе
// со следующим шагом. Вернуть то же имя шага: переспросить, Done: завершить диалог.
// Ошибка завершает диалог.
type StepFunc func(ctx context.Context, in Input, fields map[string]string) (next string, err error)

// DiscardFunc получает состояние диалога, брошенного до завершения: отменённого
// или вытесненного новым Begin.
type DiscardFunc func(ctx context.Context, chatID int64, st *State)

// Engine связывает чат с единственным ожидающим шагом.
type Engine struct {
	registry Registry
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	steps   map[string]StepFunc
	discard DiscardFunc
}

func NewEngine(registry Registry, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger,
		steps:    make(map[string]StepFunc),
	}
}

// Handle регистрирует обработчик шага.
func (e *Engine) Handle(step string, fn StepFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps[step] = fn
}

// OnDiscard задаёт обработчик брошенных диалогов.
func (e *Engine) OnDiscard(fn DiscardFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discard = fn
}

func (e *Engine) dropped(ctx context.Context, chatID int64, st *State) {
	e.mu.RLock()
	fn := e.discard
	e.mu.RUnlock()
	if fn != nil && st != nil {
		fn(ctx, chatID, st)
	}
}

func (e *Engine) step(name string) (StepFunc, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn, ok := e.steps[name]
	return fn, ok
}

// Begin назначает шаг следующим обработчиком сообщений чата.
// Ранее ожидавший шаг этого чата отбрасывается вместе с собранными ответами.
func (e *Engine) Begin(ctx context.Context, chatID int64, step string, fields map[string]string) error {
	if _, ok := e.step(step); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	if fields == nil {
		fields = map[string]string{}
	}
	prev, err := e.registry.Load(ctx, chatID)
	if err != nil {
		e.logger.Warnw("dialog: load previous state failed", "chat_id", chatID, "error", err)
	}
	st := &State{Step: step, Fields: fields, UpdatedAt: time.Now().UTC()}
	if err := e.registry.Save(ctx, chatID, st); err != nil {
		return err
	}
	e.dropped(ctx, chatID, prev)
	e.logger.Debugw("dialog step armed", "chat_id", chatID, "step", step)
	return nil
}

// Dispatch передаёт сообщение ожидающему шагу. handled == false, если диалога нет.
func (e *Engine) Dispatch(ctx context.Context, in Input) (handled bool, err error) {
	st, err := e.registry.Load(ctx, in.ChatID)
	if err != nil {
		return false, err
	}
	if st == nil {
		return false, nil
	}
	fn, ok := e.step(st.Step)
	if !ok {
		e.logger.Warnw("dialog: dropping unknown step", "chat_id", in.ChatID, "step", st.Step)
		return false, e.registry.Clear(ctx, in.ChatID)
	}
	if st.Fields == nil {
		st.Fields = map[string]string{}
	}

	next, stepErr := fn(ctx, in, st.Fields)
	if stepErr != nil {
		e.logger.Errorw("dialog step failed", "chat_id", in.ChatID, "step", st.Step, "error", stepErr)
		if err := e.registry.Clear(ctx, in.ChatID); err != nil {
			e.logger.Warnw("dialog: clear failed", "chat_id", in.ChatID, "error", err)
		}
		return true, stepErr
	}
	if next == Done {
		return true, e.registry.Clear(ctx, in.ChatID)
	}
	if _, ok := e.step(next); !ok {
		_ = e.registry.Clear(ctx, in.ChatID)
		return true, fmt.Errorf("%w: %s", ErrUnknownStep, next)
	}
	st.Step = next
	st.UpdatedAt = time.Now().UTC()
	return true, e.registry.Save(ctx, in.ChatID, st)
}

// Cancel сбрасывает ожидающий шаг. Возвращает true, если он был.
func (e *Engine) Cancel(ctx context.Context, chatID int64) (bool, error) {
	st, err := e.registry.Load(ctx, chatID)
	if err != nil {
		return false, err
	}
	if st == nil {
		return false, nil
	}
	if err := e.registry.Clear(ctx, chatID); err != nil {
		return true, err
	}
	e.dropped(ctx, chatID, st)
	return true, nil
}

// Active возвращает имя ожидающего шага чата.
func (e *Engine) Active(ctx context.Context, chatID int64) (string, bool) {
	st, err := e.registry.Load(ctx, chatID)
	if err != nil || st == nil {
		return "", false
	}
	return st.Step, true
}
