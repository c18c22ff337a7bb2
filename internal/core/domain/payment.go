package domain

import "github.com/shopspring/decimal"

// PaymentTransaction is one recorded payment against a receipt's ledger.
// The ledger is append-only: a transaction is never edited or deleted
// once recorded.
type PaymentTransaction struct {
	PaymentID   string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`      // Positive, capped by the remaining balance at recording time
	PaymentDate string          `json:"paymentDate"` // Calendar date chosen by the user; may be back- or future-dated
	Notes       string          `json:"notes,omitempty"`
}
