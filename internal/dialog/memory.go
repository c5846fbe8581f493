package dialog

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry держит состояния в памяти процесса. ttl == 0: без истечения.
type MemoryRegistry struct {
	mu     sync.Mutex
	states map[int64]*State
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		states: make(map[int64]*State),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *MemoryRegistry) Load(_ context.Context, chatID int64) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[chatID]
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && r.now().Sub(st.UpdatedAt) > r.ttl {
		delete(r.states, chatID)
		return nil, nil
	}
	return st.clone(), nil
}

func (r *MemoryRegistry) Save(_ context.Context, chatID int64, st *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[chatID] = st.clone()
	return nil
}

func (r *MemoryRegistry) Clear(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, chatID)
	return nil
}
