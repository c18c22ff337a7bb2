package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
	"github.com/codify-lk/receipts_backend/internal/middleware"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

var (
	ErrPaymentNotPositive    = fmt.Errorf("%w: payment amount is required and must be positive", apperrors.ErrValidation)
	ErrPaymentExceedsBalance = fmt.Errorf("%w: payment amount exceeds remaining balance", apperrors.ErrValidation)
	ErrReceiptAlreadyPaid    = fmt.Errorf("%w: receipt is already fully paid", apperrors.ErrValidation)
)

// ledgerService records incremental payments against receipts. The
// ledger is append-only; paid amount and status are re-derived wholly
// on every add so they can never drift from the transaction list.
type ledgerService struct {
	receiptRepo portsrepo.ReceiptRepository
}

// NewLedgerService creates a new payment ledger service.
func NewLedgerService(receiptRepo portsrepo.ReceiptRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{receiptRepo: receiptRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AddPayment validates the amount against current ledger state, appends
// the transaction and persists the updated receipt. On any validation
// failure the receipt is returned untouched.
func (s *ledgerService) AddPayment(ctx context.Context, receiptID string, req dto.AddPaymentRequest) (*domain.Receipt, *domain.PaymentTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, nil, err
	}

	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, nil, ErrPaymentNotPositive
	}
	if receipt.PaymentStatus == domain.StatusPaid {
		return nil, nil, ErrReceiptAlreadyPaid
	}
	// No sequence of adds may overdraw the grand total.
	remaining := receipt.RemainingAmount()
	if req.Amount.GreaterThan(remaining) {
		return nil, nil, fmt.Errorf("%w of %s", ErrPaymentExceedsBalance, utils.FormatAmount(remaining))
	}

	txn := domain.PaymentTransaction{
		PaymentID:   uuid.NewString(),
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
	}

	updated := *receipt
	updated.Payments = append(append([]domain.PaymentTransaction{}, receipt.Payments...), txn)
	updated.PaidAmount = receipt.PaidAmount.Add(req.Amount)
	updated.PaymentStatus = domain.DeriveStatus(updated.PaidAmount, updated.GrandTotal)
	if updated.PaymentStatus == domain.StatusPaid {
		updated.PaidDate = txn.PaymentDate
	}

	if err := s.receiptRepo.Upsert(ctx, updated); err != nil {
		return nil, nil, err
	}

	logger.Info("Payment recorded",
		slog.String("receipt_id", updated.ReceiptID),
		slog.String("payment_id", txn.PaymentID),
		slog.String("amount", txn.Amount.String()),
		slog.String("status", string(updated.PaymentStatus)))
	return &updated, &txn, nil
}
