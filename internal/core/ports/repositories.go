package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
// Lookups return (nil, nil) when the wallet does not exist.
type WalletRepository interface {
	GetAll(ctx context.Context) ([]domain.Wallet, error)
	GetByID(ctx context.Context, id int64) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Wallet, error)
	// Create persists the wallet and assigns its ID.
	Create(ctx context.Context, wallet *domain.Wallet) error
	// Update writes name, balance and updated_at of an existing wallet.
	Update(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	// Delete removes the wallet if present. Missing ids are a no-op.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error
}

// TransactionRepository defines persistence operations for ledger entries.
type TransactionRepository interface {
	// Create appends the entry and assigns its ID.
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	// GetByWalletID returns every entry of the wallet, unsorted and unfiltered.
	GetByWalletID(ctx context.Context, walletID int64) ([]domain.Transaction, error)
}

// UserRepository defines persistence operations for API accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// LoginHistoryRepository appends login attempts.
type LoginHistoryRepository interface {
	Create(ctx context.Context, entry *domain.LoginHistory) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
