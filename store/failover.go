package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/safenest-labs/safenest/model"
)

// FailoverStore wraps a durable primary and degrades to a session-only
// in-memory ledger the first time the primary reports its medium is down.
// Degradation is one-way for the lifetime of the store: flip-flopping between
// media would split the ledger across two stores.
type FailoverStore struct {
	primary  LedgerStore
	fallback *MemoryStore

	mu       sync.Mutex
	degraded bool

	// onDegrade surfaces the non-fatal warning that history will no longer
	// survive a restart. Optional.
	onDegrade func(error)
}

func NewFailoverStore(primary LedgerStore, onDegrade func(error)) *FailoverStore {
	return &FailoverStore{
		primary:   primary,
		fallback:  NewMemoryStore(),
		onDegrade: onDegrade,
	}
}

// Degraded reports whether the store has fallen back to session-only memory.
func (s *FailoverStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *FailoverStore) active() LedgerStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return s.fallback
	}
	return s.primary
}

func (s *FailoverStore) degrade(err error) {
	s.mu.Lock()
	if s.degraded {
		s.mu.Unlock()
		return
	}
	s.degraded = true
	s.mu.Unlock()

	logrus.WithError(err).Warn("ledger storage unavailable, degrading to session-only memory ledger")
	if s.onDegrade != nil {
		s.onDegrade(err)
	}
}

func (s *FailoverStore) Load(ctx context.Context, accountID string) ([]*model.Transaction, error) {
	transactions, err := s.active().Load(ctx, accountID)
	if errors.Is(err, ErrStorageUnavailable) {
		s.degrade(err)
		return s.fallback.Load(ctx, accountID)
	}
	return transactions, err
}

func (s *FailoverStore) Append(ctx context.Context, accountID string, transaction *model.Transaction) error {
	err := s.active().Append(ctx, accountID, transaction)
	if errors.Is(err, ErrStorageUnavailable) {
		s.degrade(err)
		return s.fallback.Append(ctx, accountID, transaction)
	}
	return err
}

func (s *FailoverStore) Clear(ctx context.Context, accountID string) error {
	err := s.active().Clear(ctx, accountID)
	if errors.Is(err, ErrStorageUnavailable) {
		s.degrade(err)
		return s.fallback.Clear(ctx, accountID)
	}
	return err
}
