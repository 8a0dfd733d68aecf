package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HashService handles password hashing (bcrypt).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(user *domain.User) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	TokenID  string
	Username string
	Email    string
	Role     string
}

// IdempotencyStore remembers transfer responses per Idempotency-Key.
type IdempotencyStore interface {
	// Reserve marks the key as in progress. Returns false if the key is already taken.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Get returns the stored response, or nil when the key is unknown or still in progress.
	Get(ctx context.Context, key string) (*domain.IdempotentResponse, error)
	Save(ctx context.Context, key string, resp *domain.IdempotentResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// EventPublisher ships domain events to downstream consumers.
type EventPublisher interface {
	PublishTransferCompleted(ctx context.Context, event *domain.TransferCompleted) error
}

// --- Service Ports (Business Logic) ---

// WalletService defines wallet lifecycle, transfer and history operations.
// Expected business failures come back as *apperror.AppError values
// (InvalidArgument, NotFound, InsufficientFunds); store faults as StoreUnavailable.
type WalletService interface {
	ListWallets(ctx context.Context) ([]WalletView, error)
	GetWallet(ctx context.Context, id int64) (*WalletView, error)
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*WalletView, error)
	UpdateWallet(ctx context.Context, req UpdateWalletRequest) (*WalletView, error)
	DeleteWallet(ctx context.Context, id int64) error
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	GetTransactions(ctx context.Context, query TransactionQuery) (*TransactionPage, error)
}

// WalletView is the public projection of a wallet.
type WalletView struct {
	ID         int64
	DocumentID string
	Name       string
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// CreateWalletRequest holds input for wallet creation.
type CreateWalletRequest struct {
	DocumentID     string
	Name           string
	InitialBalance decimal.Decimal
}

// UpdateWalletRequest holds input for renaming a wallet.
type UpdateWalletRequest struct {
	ID   int64
	Name string
}

// TransferRequest holds input for a wallet to wallet transfer.
type TransferRequest struct {
	SourceWalletID int64
	TargetWalletID int64
	Amount         decimal.Decimal
}

// TransferResult describes a committed transfer.
type TransferResult struct {
	SourceWalletID      int64
	TargetWalletID      int64
	Amount              decimal.Decimal
	DebitTransactionID  int64
	CreditTransactionID int64
	CompletedAt         time.Time
}

// TransactionQuery holds filter + pagination for a wallet's history.
// From and To are inclusive. Page is 1-based.
type TransactionQuery struct {
	WalletID int64
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// TransactionView is the public projection of a ledger entry.
type TransactionView struct {
	ID        int64
	WalletID  int64
	Amount    decimal.Decimal
	Type      string
	CreatedAt time.Time
}

// TransactionPage is one page of a wallet's history, most recent first.
type TransactionPage struct {
	Items      []TransactionView
	Page       int
	PageSize   int
	TotalCount int // matching entries before pagination
}

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// LoginRequest holds credentials plus the caller address for login history.
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResult holds an issued token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Role      string
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
