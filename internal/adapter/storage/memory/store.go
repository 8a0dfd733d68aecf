// Package memory is a process-local storage backend implementing the same
// ports as the postgres adapter. State is lost on restart.
package memory

import (
	"context"
	"errors"
	"sync"

	"wallet-ledger/internal/core/domain"
)

var errWalletNotFound = errors.New("wallet not found")

// Store holds every table of the in-memory backend behind one lock.
type Store struct {
	mu           sync.RWMutex
	wallets      map[int64]domain.Wallet
	transactions []domain.Transaction
	users        map[string]domain.User
	logins       []domain.LoginHistory
	audit        []domain.AuditLog

	walletSeq int64
	txSeq     int64
	userSeq   int64
	loginSeq  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets: make(map[int64]domain.Wallet),
		users:   make(map[string]domain.User),
	}
}

func (s *Store) nextTransactionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txSeq++
	return s.txSeq
}

func (s *Store) wallet(id int64) (domain.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	return w, ok
}

// HealthCheck implements ports.HealthChecker for the in-memory backend.
type HealthCheck struct{}

// NewHealthCheck creates a health checker that always reports ready.
func NewHealthCheck() *HealthCheck {
	return &HealthCheck{}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (h *HealthCheck) Name() string {
	return "memory"
}
