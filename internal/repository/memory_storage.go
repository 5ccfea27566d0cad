package repository

import (
	"context"
	"sync"

	"github.com/nikolayk812/foliage-shop/internal/port"
)

type memoryStorage struct {
	mu     sync.Mutex
	owners map[string]map[string]string
}

// NewMemoryStorage is a process-local storage, lost on restart.
func NewMemoryStorage() port.Storage {
	return &memoryStorage{
		owners: make(map[string]map[string]string),
	}
}

func (s *memoryStorage) GetItem(_ context.Context, ownerID, key string) (string, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.owners[ownerID][key]
	return value, ok, nil
}

func (s *memoryStorage) SetItem(_ context.Context, ownerID, key, value string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(ownerID, key, value)
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, ownerID, key string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.owners[ownerID], key)
	return nil
}

func (s *memoryStorage) UpdateItem(_ context.Context, ownerID, key string, fn port.UpdateFunc) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.owners[ownerID][key]

	next, write, err := fn(current, found)
	if err != nil {
		return err
	}
	if write {
		s.set(ownerID, key, next)
	}

	return nil
}

func (s *memoryStorage) Ping(context.Context) error {
	return nil
}

func (s *memoryStorage) set(ownerID, key, value string) {
	items, ok := s.owners[ownerID]
	if !ok {
		items = make(map[string]string)
		s.owners[ownerID] = items
	}
	items[key] = value
}
