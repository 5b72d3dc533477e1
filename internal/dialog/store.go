package dialog

import (
	"context"
	"sync"
	"time"
)

// Store keeps one conversation state per chat.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Item, error)
	Set(ctx context.Context, chatID int64, state State, payload Payload) error
	Reset(ctx context.Context, chatID int64) error
}

type memEntry struct {
	state     State
	payload   Payload
	updatedAt time.Time
}

// MemoryStore is a mutex-guarded map. With a positive ttl, a state untouched
// for longer than ttl reads back as idle.
type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]memEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[int64]memEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, chatID int64) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[chatID]
	if !ok {
		return idle(chatID), nil
	}
	if s.ttl > 0 && s.now().Sub(e.updatedAt) > s.ttl {
		delete(s.items, chatID)
		return idle(chatID), nil
	}
	return &Item{ChatID: chatID, State: e.state, Payload: e.payload.Clone()}, nil
}

func (s *MemoryStore) Set(_ context.Context, chatID int64, state State, payload Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[chatID] = memEntry{state: state, payload: payload.Clone(), updatedAt: s.now()}
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, chatID)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.items {
		if s.now().Sub(e.updatedAt) > s.ttl {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
