package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

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
	ErrSubtotalNotPositive = fmt.Errorf("%w: subtotal must be greater than zero", apperrors.ErrValidation)
	ErrNegativeAdjustment  = fmt.Errorf("%w: discount and tax must not be negative", apperrors.ErrValidation)
	ErrItemsRequired       = fmt.Errorf("%w: at least one item with a description is required", apperrors.ErrValidation)
	ErrFieldRequired       = fmt.Errorf("%w: client name, client email and project title are required", apperrors.ErrValidation)
	ErrReceiptNotPending   = fmt.Errorf("%w: only pending receipts can be deleted", apperrors.ErrConflict)
)

// receiptService owns the receipt lifecycle around the store adapter:
// totals are recomputed on every mutation so the grand total invariant
// can never drift.
type receiptService struct {
	receiptRepo portsrepo.ReceiptRepository
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepository) portssvc.ReceiptSvcFacade {
	return &receiptService{receiptRepo: receiptRepo}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// validateAmounts re-checks the money invariants beyond what binding
// tags can express on decimals.
func validateAmounts(subtotal, discount, tax decimal.Decimal) error {
	if !subtotal.GreaterThan(decimal.Zero) {
		return ErrSubtotalNotPositive
	}
	if discount.IsNegative() || tax.IsNegative() {
		return ErrNegativeAdjustment
	}
	return nil
}

func buildItems(reqItems []dto.ReceiptItemRequest) ([]domain.ReceiptItem, error) {
	items := make([]domain.ReceiptItem, 0, len(reqItems))
	for _, it := range reqItems {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, ErrItemsRequired
		}
		id := it.ItemID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, domain.ReceiptItem{ItemID: id, Description: desc})
	}
	if len(items) == 0 {
		return nil, ErrItemsRequired
	}
	return items, nil
}

// CreateReceipt builds a receipt from the request, derives its grand
// total and persists it. Implements portssvc.ReceiptSvcFacade.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.ClientEmail) == "" || strings.TrimSpace(req.ProjectTitle) == "" {
		return nil, ErrFieldRequired
	}
	if err := validateAmounts(req.Subtotal, req.Discount, req.Tax); err != nil {
		return nil, err
	}
	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	number := strings.TrimSpace(req.ReceiptNumber)
	if number == "" {
		number = utils.GenerateReceiptNumber(now)
	}
	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = now.Format(domain.DateLayout)
	}
	// The status field is form-settable only while no payment exists;
	// a new receipt never has one.
	status := domain.StatusPending
	if req.PaymentStatus != "" {
		status = domain.PaymentStatus(req.PaymentStatus)
	}

	receipt := domain.Receipt{
		ReceiptID:     uuid.NewString(),
		ReceiptNumber: number,
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientEmail:   strings.TrimSpace(req.ClientEmail),
		ProjectTitle:  strings.TrimSpace(req.ProjectTitle),
		IssueDate:     issueDate,
		PaymentStatus: status,
		Items:         items,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Tax:           req.Tax,
		GrandTotal:    domain.ComputeGrandTotal(req.Subtotal, req.Discount, req.Tax),
		Notes:         req.Notes,
		CreatedAt:     now,
		Payments:      []domain.PaymentTransaction{},
		PaidAmount:    decimal.Zero,
	}

	if err := s.receiptRepo.Upsert(ctx, receipt); err != nil {
		return nil, err
	}

	logger.Info("Receipt created",
		slog.String("receipt_id", receipt.ReceiptID),
		slog.String("receipt_number", receipt.ReceiptNumber))
	return &receipt, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	return s.receiptRepo.FindByID(ctx, receiptID)
}

// ListReceipts projects the stored collection through the status and
// free-text filters. Computed fresh on every call; at the scale of a
// single register nothing needs indexing.
func (s *receiptService) ListReceipts(ctx context.Context, filter dto.ListReceiptsFilter) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if filter.Status != "" && filter.Status != "All" && string(r.PaymentStatus) != filter.Status {
			continue
		}
		if !r.MatchesQuery(filter.Query) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// UpdateReceipt applies the editable fields and re-derives the grand
// total. When payments already exist the status is likewise re-derived
// from the new total, never taken from the request.
func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.ClientEmail) == "" || strings.TrimSpace(req.ProjectTitle) == "" {
		return nil, ErrFieldRequired
	}
	if err := validateAmounts(req.Subtotal, req.Discount, req.Tax); err != nil {
		return nil, err
	}
	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.ReceiptNumber = strings.TrimSpace(req.ReceiptNumber)
	updated.ClientName = strings.TrimSpace(req.ClientName)
	updated.ClientEmail = strings.TrimSpace(req.ClientEmail)
	updated.ProjectTitle = strings.TrimSpace(req.ProjectTitle)
	updated.IssueDate = req.IssueDate
	updated.Items = items
	updated.Subtotal = req.Subtotal
	updated.Discount = req.Discount
	updated.Tax = req.Tax
	updated.GrandTotal = domain.ComputeGrandTotal(req.Subtotal, req.Discount, req.Tax)
	updated.Notes = req.Notes

	if updated.HasPayments() {
		// Status follows the ledger once any payment exists. A paid
		// receipt whose total was raised drops back to Partial here;
		// PaidDate stays put (sticky).
		updated.PaymentStatus = domain.DeriveStatus(updated.PaidAmount, updated.GrandTotal)
	} else if req.PaymentStatus != "" {
		updated.PaymentStatus = domain.PaymentStatus(req.PaymentStatus)
	}

	if err := s.receiptRepo.Upsert(ctx, updated); err != nil {
		return nil, err
	}

	logger.Info("Receipt updated", slog.String("receipt_id", updated.ReceiptID))
	return &updated, nil
}

// DeleteReceipt removes a receipt from the register. The Pending-only
// rule lives here, in one place, rather than in each caller.
func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt.PaymentStatus != domain.StatusPending {
		return ErrReceiptNotPending
	}
	if err := s.receiptRepo.Delete(ctx, receiptID); err != nil {
		return err
	}

	logger.Info("Receipt deleted", slog.String("receipt_id", receiptID))
	return nil
}

// Summarize aggregates the register for the dashboard.
func (s *receiptService) Summarize(ctx context.Context) (*dto.ReceiptSummaryResponse, error) {
	receipts, err := s.receiptRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := dto.ReceiptSummaryResponse{
		TotalReceipts:    len(receipts),
		TotalBilled:      decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, r := range receipts {
		switch r.PaymentStatus {
		case domain.StatusPaid:
			summary.PaidCount++
		case domain.StatusPartial:
			summary.PartialCount++
		default:
			summary.PendingCount++
		}
		summary.TotalBilled = summary.TotalBilled.Add(r.GrandTotal)
		summary.TotalCollected = summary.TotalCollected.Add(r.PaidAmount)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(r.RemainingAmount())
	}
	return &summary, nil
}
