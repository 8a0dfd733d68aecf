package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is an account holding a monetary balance for an external owner.
type Wallet struct {
	ID         int64           `json:"id"`
	DocumentID string          `json:"document_id"` // external owner reference
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Debit subtracts amount from the balance and stamps the mutation time.
func (w *Wallet) Debit(amount decimal.Decimal, at time.Time) {
	w.Balance = w.Balance.Sub(amount)
	w.touch(at)
}

// Credit adds amount to the balance and stamps the mutation time.
func (w *Wallet) Credit(amount decimal.Decimal, at time.Time) {
	w.Balance = w.Balance.Add(amount)
	w.touch(at)
}

// Rename replaces the wallet name. The balance is left alone.
func (w *Wallet) Rename(name string, at time.Time) {
	w.Name = name
	w.touch(at)
}

func (w *Wallet) touch(at time.Time) {
	t := at
	w.UpdatedAt = &t
}
