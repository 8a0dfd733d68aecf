package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128" sanitize:"-"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// LoginResponse carries an issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// CreateWalletRequest is the request body for wallet creation.
// Emptiness and sign rules are enforced by the wallet service.
type CreateWalletRequest struct {
	DocumentID     string          `json:"document_id" binding:"max=50"`
	Name           string          `json:"name" binding:"max=100"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// UpdateWalletRequest is the request body for renaming a wallet.
type UpdateWalletRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// TransferRequest is the request body for a wallet to wallet transfer.
type TransferRequest struct {
	SourceWalletID int64           `json:"source_wallet_id" binding:"required,gt=0"`
	TargetWalletID int64           `json:"target_wallet_id" binding:"required,gt=0"`
	Amount         decimal.Decimal `json:"amount"`
}

// TransactionListQuery binds the history query string.
type TransactionListQuery struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10" binding:"max=100"`
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID         int64   `json:"id"`
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name"`
	Balance    string  `json:"balance"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

// TransferResponse describes a completed transfer.
type TransferResponse struct {
	SourceWalletID      int64  `json:"source_wallet_id"`
	TargetWalletID      int64  `json:"target_wallet_id"`
	Amount              string `json:"amount"`
	DebitTransactionID  int64  `json:"debit_transaction_id"`
	CreditTransactionID int64  `json:"credit_transaction_id"`
	CompletedAt         string `json:"completed_at"`
}

// TransactionResponse is the public view of a ledger entry.
type TransactionResponse struct {
	ID        int64  `json:"id"`
	WalletID  int64  `json:"wallet_id"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// TransactionListResponse wraps a page of history.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// FormatTime renders timestamps in responses.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatMoney renders amounts with two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
