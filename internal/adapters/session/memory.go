package session

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryStore is a bounded in-process Store with TTL expiry.
// When full, the least recently written session is evicted.
type MemoryStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	order      *list.List // front = oldest write
	entries    map[string]*list.Element
	closed     bool
}

type memEntry struct {
	id      string
	noc     string
	expires time.Time
}

// MemoryOption applies a configuration option to a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL sets the selection lifetime.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries bounds the number of tracked sessions.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		ttl:        DefaultTTL,
		maxEntries: 100_000,
		now:        time.Now,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}

	el, ok := s.entries[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	e := el.Value.(*memEntry) //nolint:forcetypeassert // list only holds *memEntry
	if !s.now().Before(e.expires) {
		s.remove(el)
		return "", ErrNotFound
	}
	return e.noc, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, sessionID, noc string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	now := s.now()
	if el, ok := s.entries[sessionID]; ok {
		e := el.Value.(*memEntry) //nolint:forcetypeassert // list only holds *memEntry
		e.noc, e.expires = noc, now.Add(s.ttl)
		s.order.MoveToBack(el)
	} else {
		s.entries[sessionID] = s.order.PushBack(&memEntry{id: sessionID, noc: noc, expires: now.Add(s.ttl)})
	}

	for s.order.Len() > s.maxEntries {
		s.remove(s.order.Front())
	}
	// oldest writes expire first
	for el := s.order.Front(); el != nil; el = s.order.Front() {
		if now.Before(el.Value.(*memEntry).expires) { //nolint:forcetypeassert // list only holds *memEntry
			break
		}
		s.remove(el)
	}
	return nil
}

// Len returns the number of tracked sessions, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Close drops every session.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.order.Init()
	s.entries = make(map[string]*list.Element)
	return nil
}

func (s *MemoryStore) remove(el *list.Element) {
	s.order.Remove(el)
	delete(s.entries, el.Value.(*memEntry).id) //nolint:forcetypeassert // list only holds *memEntry
}
