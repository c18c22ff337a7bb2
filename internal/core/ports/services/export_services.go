package services

import (
	"context"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	"github.com/codify-lk/receipts_backend/internal/dto"
)

// ExportSvcFacade produces the document-shaped views of receipts: PDF,
// XLSX and outbound email. The core never waits on these for payment
// bookkeeping; they are fire-and-forget from its perspective.
type ExportSvcFacade interface {
	// ReceiptPDF renders one receipt to PDF bytes plus a download filename.
	ReceiptPDF(ctx context.Context, receiptID string) ([]byte, string, error)
	// ReceiptsXLSX renders the (filtered) register to an XLSX workbook.
	ReceiptsXLSX(ctx context.Context, filter dto.ListReceiptsFilter) ([]byte, string, error)
	// EmailReceipt sends a receipt to its client email address. Failures
	// surface as apperrors.ErrDelivery; receipt state is unchanged.
	EmailReceipt(ctx context.Context, receiptID string) error
}

// ReceiptMailer is the email collaborator boundary. The core only
// supplies a fully populated receipt.
type ReceiptMailer interface {
	SendReceipt(ctx context.Context, receipt domain.Receipt) error
}

// ReceiptRenderer is the PDF collaborator boundary.
type ReceiptRenderer interface {
	Render(receipt domain.Receipt) ([]byte, error)
}
