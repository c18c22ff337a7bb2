package services

import (
	"context"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	"github.com/codify-lk/receipts_backend/internal/dto"
)

// ReceiptSvcFacade exposes the receipt lifecycle: create, load, edit,
// delete and the read-side projections over the stored collection.
type ReceiptSvcFacade interface {
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error)
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, filter dto.ListReceiptsFilter) ([]domain.Receipt, error)
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error)
	// DeleteReceipt removes a receipt. Only Pending receipts may be
	// deleted; anything else returns apperrors.ErrConflict.
	DeleteReceipt(ctx context.Context, receiptID string) error
	Summarize(ctx context.Context) (*dto.ReceiptSummaryResponse, error)
}

// LedgerSvcFacade exposes the append-only payment ledger.
type LedgerSvcFacade interface {
	// AddPayment records a payment against a receipt, updating its paid
	// amount, status and (when fully paid) paid date atomically with the
	// ledger append.
	AddPayment(ctx context.Context, receiptID string, req dto.AddPaymentRequest) (*domain.Receipt, *domain.PaymentTransaction, error)
}
