package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction and assigns its id.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (wallet_id, amount, type, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	if err := tx.QueryRow(ctx, query, t.WalletID, t.Amount, string(t.Type), t.CreatedAt).Scan(&t.ID); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByWalletID returns every ledger entry of a wallet.
// Ordering and filtering are left to the caller.
func (r *TransactionRepo) GetByWalletID(ctx context.Context, walletID int64) ([]domain.Transaction, error) {
	query := `SELECT id, wallet_id, amount::text, type, created_at
		FROM transactions WHERE wallet_id = $1`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var (
			t      domain.Transaction
			amount string
			txType string
		)
		if err := rows.Scan(&t.ID, &t.WalletID, &amount, &txType, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		t.Amount = parsed
		t.Type = domain.TransactionType(txType)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}
