package audit

import (
	"context"
	"sync"
)

// Storage persists audit events. Implementations must be safe for concurrent
// use; the logger calls Store from request goroutines.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// NewMemoryStorage returns a Storage that keeps events in memory.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// MemoryStorage keeps events in memory. Useful in tests and as a default
// until a persistent backend is wired in by the embedding application.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

// Store appends the event.
func (s *MemoryStorage) Store(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of stored events.
func (s *MemoryStorage) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
