package memory

import (
	"context"
	"sort"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	store *Store
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(store *Store) *WalletRepo {
	return &WalletRepo{store: store}
}

// GetAll returns every wallet ordered by id.
func (r *WalletRepo) GetAll(ctx context.Context) ([]domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wallets := make([]domain.Wallet, 0, len(r.store.wallets))
	for _, w := range r.store.wallets {
		wallets = append(wallets, w)
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

func (r *WalletRepo) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	w, ok := r.store.wallet(id)
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// GetByIDForUpdate reads the wallet as seen by tx. Mutual exclusion between
// writers is provided by the service's wallet locks.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Wallet, error) {
	mt, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	w, ok, err := mt.lookup(id)
	if err != nil || !ok {
		return nil, err
	}
	return &w, nil
}

// Create stores the wallet immediately and assigns its ID.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.walletSeq++
	w.ID = r.store.walletSeq
	r.store.wallets[w.ID] = *w
	return nil
}

func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	if _, ok, err := mt.lookup(w.ID); err != nil {
		return err
	} else if !ok {
		return errWalletNotFound
	}
	return mt.stageUpdate(*w)
}

func (r *WalletRepo) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	return mt.stageDelete(id)
}

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create assigns the entry's ID right away; the entry itself is only
// visible after tx commits.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	t.ID = r.store.nextTransactionID()
	return mt.stageEntry(*t)
}

func (r *TransactionRepo) GetByWalletID(ctx context.Context, walletID int64) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []domain.Transaction
	for _, t := range r.store.transactions {
		if t.WalletID == walletID {
			result = append(result, t)
		}
	}
	return result, nil
}

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.users[u.Username]; taken {
		return domain.ErrUserExists
	}
	r.store.userSeq++
	u.ID = r.store.userSeq
	r.store.users[u.Username] = *u
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// LoginHistoryRepo implements ports.LoginHistoryRepository.
type LoginHistoryRepo struct {
	store *Store
}

func NewLoginHistoryRepo(store *Store) *LoginHistoryRepo {
	return &LoginHistoryRepo{store: store}
}

func (r *LoginHistoryRepo) Create(ctx context.Context, h *domain.LoginHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.loginSeq++
	h.ID = r.store.loginSeq
	r.store.logins = append(r.store.logins, *h)
	return nil
}

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	store *Store
}

func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audit = append(r.store.audit, *log)
	return nil
}

// LoginHistory returns a snapshot of recorded login attempts.
func (s *Store) LoginHistory() []domain.LoginHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LoginHistory(nil), s.logins...)
}

// AuditLogs returns a snapshot of recorded audit entries.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AuditLog(nil), s.audit...)
}
