package dto

import (
	"github.com/codify-lk/receipts_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddPaymentRequest defines the data for recording a payment against a
// receipt. The amount bounds (positive, within remaining balance) are
// enforced by the ledger service against current ledger state.
type AddPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Notes       string          `json:"notes"`
}

// PaymentResponse defines the data returned for one recorded payment.
type PaymentResponse struct {
	PaymentID   string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate"`
	Notes       string          `json:"notes,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentTransaction to its DTO.
func ToPaymentResponse(p *domain.PaymentTransaction) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
	}
}

// AddPaymentResponse returns the recorded payment together with the
// updated receipt so the caller sees the new status in one round trip.
type AddPaymentResponse struct {
	Receipt ReceiptResponse `json:"receipt"`
	Payment PaymentResponse `json:"payment"`
}
