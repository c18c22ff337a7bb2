package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
	"github.com/codify-lk/receipts_backend/internal/middleware"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

const exportSheet = "Receipts"

// exportService produces the document views of receipts. PDF rendering
// and email delivery are delegated to collaborator boundaries; XLSX is
// built here.
type exportService struct {
	receiptSvc portssvc.ReceiptSvcFacade
	renderer   portssvc.ReceiptRenderer
	mailer     portssvc.ReceiptMailer
}

// NewExportService creates a new export service.
func NewExportService(receiptSvc portssvc.ReceiptSvcFacade, renderer portssvc.ReceiptRenderer, mailer portssvc.ReceiptMailer) portssvc.ExportSvcFacade {
	return &exportService{receiptSvc: receiptSvc, renderer: renderer, mailer: mailer}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

func (s *exportService) ReceiptPDF(ctx context.Context, receiptID string) ([]byte, string, error) {
	receipt, err := s.receiptSvc.GetReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.Render(*receipt)
	if err != nil {
		return nil, "", fmt.Errorf("rendering receipt %s: %w", receiptID, err)
	}
	filename := fmt.Sprintf("receipt-%s.pdf", receipt.ReceiptNumber)
	return data, filename, nil
}

// ReceiptsXLSX writes the filtered register to a workbook, one receipt
// per row, amounts at display precision.
func (s *exportService) ReceiptsXLSX(ctx context.Context, filter dto.ListReceiptsFilter) ([]byte, string, error) {
	receipts, err := s.receiptSvc.ListReceipts(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", err
	}

	headers := []string{"Receipt #", "Client", "Email", "Project", "Issue Date", "Status", "Subtotal", "Discount", "Tax", "Grand Total", "Paid", "Remaining", "Paid Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for row, r := range receipts {
		values := []interface{}{
			r.ReceiptNumber,
			r.ClientName,
			r.ClientEmail,
			r.ProjectTitle,
			r.IssueDate,
			string(r.PaymentStatus),
			r.Subtotal.InexactFloat64(),
			r.Discount.InexactFloat64(),
			r.Tax.InexactFloat64(),
			r.GrandTotal.InexactFloat64(),
			r.PaidAmount.InexactFloat64(),
			r.RemainingAmount().InexactFloat64(),
			r.PaidDate,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("receipts-%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// EmailReceipt hands the receipt to the mailer boundary. Failures come
// back as delivery errors; the receipt itself is never mutated here, so
// the user can simply retry.
func (s *exportService) EmailReceipt(ctx context.Context, receiptID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptSvc.GetReceiptByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt.ClientEmail == "" {
		return fmt.Errorf("%w: receipt has no client email", apperrors.ErrValidation)
	}

	if err := s.mailer.SendReceipt(ctx, *receipt); err != nil {
		logger.Error("Receipt email failed",
			slog.String("receipt_id", receiptID),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", apperrors.ErrDelivery, err)
	}

	logger.Info("Receipt emailed",
		slog.String("receipt_id", receiptID),
		slog.String("to", utils.MaskEmail(receipt.ClientEmail)))
	return nil
}
