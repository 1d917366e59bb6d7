package session

import (
	"context"
	"sync"
)

// InMemoryTokenStore keeps the token in process memory for tests/dev.
// Watchers registered through Watch receive a signal on every write or
// removal, mirroring the cross-context change notification a shared storage
// medium would emit.
type InMemoryTokenStore struct {
	mu       sync.Mutex
	token    string
	present  bool
	watchers map[chan struct{}]struct{}
}

// NewInMemoryTokenStore constructs an empty in-memory token store.
func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{watchers: make(map[chan struct{}]struct{})}
}

func (s *InMemoryTokenStore) Persist(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.present = true
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

func (s *InMemoryTokenStore) Retrieve(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *InMemoryTokenStore) Remove(_ context.Context) error {
	s.mu.Lock()
	wasPresent := s.present
	s.token = ""
	s.present = false
	if wasPresent {
		s.notifyLocked()
	}
	s.mu.Unlock()
	return nil
}

func (s *InMemoryTokenStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// notifyLocked signals every watcher without blocking. A watcher whose buffer
// already holds a pending signal coalesces the burst into one recheck.
func (s *InMemoryTokenStore) notifyLocked() {
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
