package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
)

// Store implements ports.SchemaStore in memory.
// Contracts are kept in their encoded form, so callers never share
// definition values with the store. Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save stores the contract in memory.
func (s *Store) Save(ctx context.Context, name string, def schema.Definition) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}
	data, err := ports.EncodeSchema(def)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = data
	return nil
}

// Load retrieves the contract from memory.
func (s *Store) Load(ctx context.Context, name string) (schema.Definition, error) {
	if err := ports.CheckName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.data[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ports.ErrSchemaNotFound
	}
	return ports.DecodeSchema(data)
}

// Delete removes the contract.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
