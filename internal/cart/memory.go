package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a Store backed by a plain map, used in tests and
// single-process setups.
type InMemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{carts: map[string]Cart{}}
}

func (s *InMemoryStore) Create() (Cart, error) {
	now := time.Now().UTC()
	c := Cart{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.carts[c.ID] = c
	s.mu.Unlock()
	return c, nil
}

func (s *InMemoryStore) Get(id string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	return c, nil
}

func (s *InMemoryStore) Save(c Cart) error {
	c.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[c.ID]; !ok {
		return ErrCartNotFound
	}
	s.carts[c.ID] = c
	return nil
}

func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(s.carts, id)
	return nil
}

// Clear removes all carts. Intended for tests.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	s.carts = map[string]Cart{}
	s.mu.Unlock()
}
