package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells which side of a movement a ledger entry is on.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "Debit"
	TransactionTypeCredit TransactionType = "Credit"
)

// IsValid returns true for the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// Transaction is an append-only ledger entry against one wallet.
// Amount is always positive; the direction is carried by Type.
type Transaction struct {
	ID        int64           `json:"id"`
	WalletID  int64           `json:"wallet_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// SignedAmount returns the amount with the sign of its effect on the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewTransferPair builds the debit and credit entries of a single transfer.
// Both entries share the same timestamp.
func NewTransferPair(sourceID, targetID int64, amount decimal.Decimal, at time.Time) (debit, credit *Transaction) {
	debit = &Transaction{WalletID: sourceID, Amount: amount, Type: TransactionTypeDebit, CreatedAt: at}
	credit = &Transaction{WalletID: targetID, Amount: amount, Type: TransactionTypeCredit, CreatedAt: at}
	return debit, credit
}
