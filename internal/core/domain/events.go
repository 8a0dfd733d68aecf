package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted after a transfer has been committed.
type TransferCompleted struct {
	SourceWalletID int64           `json:"source_wallet_id"`
	TargetWalletID int64           `json:"target_wallet_id"`
	Amount         decimal.Decimal `json:"amount"`
	CompletedAt    time.Time       `json:"completed_at"`
}
