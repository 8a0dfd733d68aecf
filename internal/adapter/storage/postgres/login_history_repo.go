package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"
)

// LoginHistoryRepo implements ports.LoginHistoryRepository.
type LoginHistoryRepo struct {
	pool Pool
}

// NewLoginHistoryRepo creates a new LoginHistoryRepo.
func NewLoginHistoryRepo(pool Pool) *LoginHistoryRepo {
	return &LoginHistoryRepo{pool: pool}
}

// Create appends a login attempt.
func (r *LoginHistoryRepo) Create(ctx context.Context, h *domain.LoginHistory) error {
	query := `INSERT INTO login_history (username, success, ip_address, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, h.Username, h.Success, h.IPAddress, h.CreatedAt).Scan(&h.ID); err != nil {
		return fmt.Errorf("insert login history: %w", err)
	}
	return nil
}
