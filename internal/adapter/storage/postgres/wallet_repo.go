package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Balances are read as text and parsed by shopspring/decimal to keep full precision.
const walletSelect = `SELECT id, document_id, name, balance::text, created_at, updated_at FROM wallets`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// GetAll returns every wallet ordered by id.
func (r *WalletRepo) GetAll(ctx context.Context) ([]domain.Wallet, error) {
	rows, err := r.pool.Query(ctx, walletSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}
	return wallets, nil
}

// GetByID fetches a wallet by id (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	w, err := scanWallet(r.pool.QueryRow(ctx, walletSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet by id with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Wallet, error) {
	w, err := scanWallet(tx.QueryRow(ctx, walletSelect+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update by id: %w", err)
	}
	return w, nil
}

// Create inserts a new wallet and assigns its generated id.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (document_id, name, balance, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, w.DocumentID, w.Name, w.Balance, w.CreatedAt).Scan(&w.ID); err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// Update writes name, balance and updated_at within a transaction.
func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `UPDATE wallets SET name = $1, balance = $2, updated_at = $3 WHERE id = $4`

	tag, err := tx.Exec(ctx, query, w.Name, w.Balance, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %d", w.ID)
	}
	return nil
}

// Delete removes a wallet within a transaction. Ledger entries are kept.
func (r *WalletRepo) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		w       domain.Wallet
		balance string
	)
	if err := row.Scan(&w.ID, &w.DocumentID, &w.Name, &balance, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	w.Balance = parsed
	return &w, nil
}
