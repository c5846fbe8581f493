// Package dialog ведёт пошаговые диалоги: у каждого чата не больше одного ожидающего шага,
// а собранные ответы копятся в State до завершающего шага.
package dialog

import (
	"context"
	"time"
)

// State: текущий шаг диалога чата и уже собранные ответы.
type State struct {
	Step      string            `json:"step"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *State) clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		cp.Fields[k] = v
	}
	return &cp
}

// Registry хранит состояния диалогов по идентификатору чата.
type Registry interface {
	// Load возвращает nil, nil, если диалога нет или он истёк.
	Load(ctx context.Context, chatID int64) (*State, error)
	// Save заменяет состояние чата целиком.
	Save(ctx context.Context, chatID int64, st *State) error
	Clear(ctx context.Context, chatID int64) error
}
