package store

import (
	"context"
	"sync"

	"github.com/safenest-labs/safenest/model"
)

// MemoryStore is the session-only ledger used when durable storage is
// unavailable. History held here does not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	ledgers map[string][]*model.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledgers: make(map[string][]*model.Transaction)}
}

func (s *MemoryStore) Load(_ context.Context, accountID string) ([]*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sequence := s.ledgers[accountID]
	out := make([]*model.Transaction, len(sequence))
	copy(out, sequence)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, accountID string, transaction *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledgers[accountID] = append(s.ledgers[accountID], transaction)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledgers, accountID)
	return nil
}
